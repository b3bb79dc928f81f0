package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seojun-park/wonmoa/internal/domain/import/workbook"
)

func newSheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <workbook>",
		Short: "List the sheet names of an xlsx export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading workbook: %w", err)
			}

			sheets, err := workbook.Sheets(data)
			if err != nil {
				return err
			}
			for _, sheet := range sheets {
				fmt.Fprintln(cmd.OutOrStdout(), sheet)
			}
			return nil
		},
	}
}
