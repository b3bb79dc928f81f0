// Package commands wires the wonmoa CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seojun-park/wonmoa/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "wonmoa",
		Short:   "Banksalad workbook importer",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newSheetsCommand())

	return rootCmd
}
