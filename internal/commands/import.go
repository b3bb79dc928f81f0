package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/seojun-park/wonmoa/internal/domain/import/matcher"
	"github.com/seojun-park/wonmoa/internal/domain/import/service"
	"github.com/seojun-park/wonmoa/internal/model"
	"github.com/seojun-park/wonmoa/pkg/config"
)

func newImportCommand() *cobra.Command {
	var accounts []string
	var singleAccount bool
	var user string

	cmd := &cobra.Command{
		Use:   "import <workbook>",
		Short: "Convert a Banksalad export into a normalized transaction ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			userID := uuid.New()
			if user != "" {
				userID, err = uuid.Parse(user)
				if err != nil {
					return fmt.Errorf("parsing user id: %w", err)
				}
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading workbook: %w", err)
			}

			svc := service.NewImportService(newLogger(cfg.Log)).
				WithSheetName(cfg.Import.SheetName).
				WithMatcherConfig(matcher.Config{
					AmountTolerance: decimal.NewFromInt(cfg.Import.AmountTolerance),
					DateWindowDays:  cfg.Import.DateWindowDays,
					HighThreshold:   cfg.Import.HighThreshold,
					MediumThreshold: cfg.Import.MediumThreshold,
					MemoSimilarity:  cfg.Import.MemoSimilarity,
				})

			result, err := svc.Import(cmd.Context(), userID, data, model.Options{
				ExistingAccounts:     accounts,
				RawSingleAccountMode: singleAccount,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringSliceVar(&accounts, "accounts", nil, "user's own account names, for transfer pairing")
	cmd.Flags().BoolVar(&singleAccount, "single-account", false, "treat the export as a single-account dump; disables pairing")
	cmd.Flags().StringVar(&user, "user", "", "user id to stamp on the result (random when omitted)")

	return cmd
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
