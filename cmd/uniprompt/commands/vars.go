package commands

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/uniprompt/am"
	"github.com/teranos/uniprompt/doc"
	"github.com/teranos/uniprompt/resolve"
)

// VarsCmd prints the merged variable context for a document, which is
// the fastest way to debug precedence between overrides, the local
// declarations file, document variables and builtins.
var VarsCmd = &cobra.Command{
	Use:   "vars <document>",
	Short: "Show the merged variable context for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := am.Load()
		if err != nil {
			return err
		}

		opts, editor, overrides, err := buildRunOptions(cmd, cfg)
		if err != nil {
			return err
		}

		d, err := doc.Load(args[0])
		if err != nil {
			return err
		}
		variables, err := resolve.Variables(cmd.Context(), d, filepath.Dir(args[0]), editor, overrides, opts)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(variables))
		for name := range variables {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", pterm.LightCyan(name), variables[name])
		}
		return nil
	},
}
