package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/uniprompt/am"
	"github.com/teranos/uniprompt/cond"
	"github.com/teranos/uniprompt/doc"
	"github.com/teranos/uniprompt/errors"
	"github.com/teranos/uniprompt/resolve"
	"github.com/teranos/uniprompt/vars"
)

// ResolveCmd resolves a document and prints the result as YAML.
var ResolveCmd = &cobra.Command{
	Use:   "resolve <document>",
	Short: "Resolve a universal prompt document",
	Long: `Resolve a universal prompt document: merge imports, evaluate
conditions against the variable context, and substitute placeholders.
The fully resolved document is printed as YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := am.Load()
		if err != nil {
			return err
		}

		docPath := args[0]
		opts, editor, overrides, err := buildRunOptions(cmd, cfg)
		if err != nil {
			return err
		}

		run := func() error {
			return resolveOnce(cmd, docPath, editor, overrides, opts)
		}

		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			if err := run(); err != nil {
				reportError(err)
				return err
			}
			return nil
		}

		if err := run(); err != nil {
			reportError(err)
		}
		watcher, err := am.NewFileWatcher(docPath)
		if err != nil {
			return err
		}
		defer watcher.Stop()
		watcher.OnChange(func() {
			pterm.Info.Printf("%s changed, re-resolving\n", docPath)
			if err := run(); err != nil {
				reportError(err)
			}
		})
		watcher.Start()
		pterm.Info.Printf("watching %s (ctrl-c to stop)\n", docPath)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	ResolveCmd.Flags().StringP("editor", "e", "", "Editor name exposed to conditions and placeholders as EDITOR")
	ResolveCmd.Flags().StringArrayP("var", "V", nil, "Variable override KEY=VALUE (repeatable, highest precedence)")
	ResolveCmd.Flags().Bool("allow-commands", false, "Permit dynamic-variable command execution")
	ResolveCmd.Flags().Bool("strict", false, "Fail on undefined placeholders")
	ResolveCmd.Flags().Bool("env", false, "Substitute ${NAME} tokens from the environment")
	ResolveCmd.Flags().Bool("watch", false, "Re-resolve whenever the document changes")
	ResolveCmd.Flags().Bool("no-builtins", false, "Skip builtin variables (date, project, git)")

	VarsCmd.Flags().StringP("editor", "e", "", "Editor name exposed as EDITOR")
	VarsCmd.Flags().StringArrayP("var", "V", nil, "Variable override KEY=VALUE (repeatable)")
	VarsCmd.Flags().Bool("allow-commands", false, "Permit dynamic-variable command execution")
	VarsCmd.Flags().Bool("no-builtins", false, "Skip builtin variables")
}

func resolveOnce(cmd *cobra.Command, docPath, editor string, overrides map[string]string, opts resolve.Options) error {
	d, err := doc.Load(docPath)
	if err != nil {
		return err
	}
	resolved, err := resolve.Resolve(cmd.Context(), d, filepath.Dir(docPath), editor, overrides, opts)
	if err != nil {
		return err
	}
	out, err := doc.Marshal(resolved)
	if err != nil {
		return err
	}
	if !opts.Strict {
		if missing := vars.UndefinedPlaceholders(string(out), nil); len(missing) > 0 {
			pterm.Warning.Printf("unresolved placeholders: %s\n", strings.Join(missing, ", "))
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

// buildRunOptions merges config-file defaults with command flags.
// Flags win when set.
func buildRunOptions(cmd *cobra.Command, cfg *am.Config) (resolve.Options, string, map[string]string, error) {
	editor, _ := cmd.Flags().GetString("editor")
	if editor == "" {
		editor = cfg.DefaultEditor
	}

	allowCommands := cfg.AllowCommands
	if cmd.Flags().Changed("allow-commands") {
		allowCommands, _ = cmd.Flags().GetBool("allow-commands")
	}
	strict := cfg.Strict
	if cmd.Flags().Changed("strict") {
		strict, _ = cmd.Flags().GetBool("strict")
	}
	envVariables := cfg.EnvVariables
	if cmd.Flags().Changed("env") {
		envVariables, _ = cmd.Flags().GetBool("env")
	}
	noBuiltins, _ := cmd.Flags().GetBool("no-builtins")

	rawVars, _ := cmd.Flags().GetStringArray("var")
	overrides, err := parseOverrides(rawVars)
	if err != nil {
		return resolve.Options{}, "", nil, err
	}

	opts := resolve.Options{
		AllowCommands:   allowCommands,
		CommandTimeout:  time.Duration(cfg.CommandTimeoutSeconds) * time.Second,
		IncludeBuiltins: !noBuiltins,
		Strict:          strict,
		EnvVariables:    envVariables,
		VarsFileName:    cfg.VarsFile,
	}
	return opts, editor, overrides, nil
}

// parseOverrides turns repeated -V KEY=VALUE flags into a map.
func parseOverrides(raw []string) (map[string]string, error) {
	overrides := make(map[string]string, len(raw))
	for _, entry := range raw {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			return nil, errors.Newf("invalid variable override %q (want KEY=VALUE)", entry)
		}
		overrides[key] = value
	}
	return overrides, nil
}

// reportError prints a user-facing error line, using the rich condition
// rendering when available.
func reportError(err error) {
	var condErr *cond.ConditionError
	if errors.As(err, &condErr) {
		fmt.Fprintln(os.Stderr, condErr.Pretty())
		return
	}
	pterm.Error.Println(err.Error())
}
