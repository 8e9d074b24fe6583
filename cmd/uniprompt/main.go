package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/uniprompt/cmd/uniprompt/commands"
	"github.com/teranos/uniprompt/logger"
)

var rootCmd = &cobra.Command{
	Use:   "uniprompt",
	Short: "uniprompt - universal prompt document resolver",
	Long: `uniprompt resolves a universal prompt document into its final form:
imports merged, conditions evaluated, variable placeholders substituted.

Available commands:
  resolve - Resolve a document and print the result
  vars    - Show the merged variable context for a document
  version - Show version information

Examples:
  uniprompt resolve project.yaml --editor claude
  uniprompt resolve project.yaml -V FRAMEWORK=FastAPI --allow-commands
  uniprompt vars project.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(verbosity, jsonOutput); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Structured JSON log output")

	rootCmd.AddCommand(commands.ResolveCmd)
	rootCmd.AddCommand(commands.VarsCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
