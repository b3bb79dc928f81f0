// Package service orchestrates the import pipeline: extract rows from the
// workbook, normalize and classify them, resolve account ownership, pair
// internal transfer legs, assign external IDs and summarize. One invocation
// transforms one workbook buffer into one in-memory result; nothing is
// persisted and nothing leaves the process.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seojun-park/wonmoa/internal/domain/import/externalid"
	"github.com/seojun-park/wonmoa/internal/domain/import/matcher"
	"github.com/seojun-park/wonmoa/internal/domain/import/normalizer"
	"github.com/seojun-park/wonmoa/internal/domain/import/resolver"
	"github.com/seojun-park/wonmoa/internal/domain/import/workbook"
	"github.com/seojun-park/wonmoa/internal/model"
)

// ImportService runs the Banksalad import pipeline.
type ImportService struct {
	extractor *workbook.Extractor
	norm      *normalizer.Normalizer
	match     *matcher.Matcher
	idgen     *externalid.Generator
	logger    *slog.Logger
}

// NewImportService creates a service with the default sheet policy and
// matcher tuning.
func NewImportService(logger *slog.Logger) *ImportService {
	return &ImportService{
		extractor: workbook.NewExtractor(),
		norm:      normalizer.New(),
		match:     matcher.New(matcher.DefaultConfig()),
		idgen:     externalid.NewGenerator(),
		logger:    logger,
	}
}

// WithMatcherConfig overrides the pair-matching tuning.
func (s *ImportService) WithMatcherConfig(cfg matcher.Config) *ImportService {
	s.match = matcher.New(cfg)
	return s
}

// WithSheetName overrides the preferred transaction sheet name.
func (s *ImportService) WithSheetName(name string) *ImportService {
	s.extractor = &workbook.Extractor{SheetName: name}
	return s
}

// Import converts one workbook buffer into a normalized ledger result.
// The only fatal failure is a workbook that cannot be opened or has no
// usable sheet; every row-level problem becomes an issue and processing
// continues. Pair matching runs only after every row is classified, because
// greedy global selection needs the complete candidate set.
func (s *ImportService) Import(ctx context.Context, userID uuid.UUID, fileData []byte, opts model.Options) (*model.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	headers, rows, err := s.extractor.Extract(fileData)
	if err != nil {
		return nil, fmt.Errorf("extracting workbook rows: %w", err)
	}

	items, issues := s.norm.Normalize(headers, rows)

	own := resolver.NewAccountSet(opts.ExistingAccounts)
	issues = append(issues, resolver.New(own, opts.RawSingleAccountMode).Apply(items)...)

	s.idgen.Assign(items)

	var pairs []model.Pair
	if !opts.RawSingleAccountMode {
		var matchIssues []string
		pairs, matchIssues = s.match.Match(items)
		issues = append(issues, matchIssues...)
	}

	result := &model.Result{
		UserID:         userID.String(),
		Items:          items,
		SuspectedPairs: pairs,
		Issues:         issues,
		Summary:        buildSummary(items, pairs, issues),
	}

	s.logger.Info("import finished",
		"user_id", userID,
		"rows", len(rows),
		"items", len(items),
		"pairs", len(pairs),
		"issues", len(issues))

	return result, nil
}

// buildSummary aggregates counts and signed totals per type. All three types
// are always present so consumers can index without existence checks.
func buildSummary(items []*model.Item, pairs []model.Pair, issues []string) model.Summary {
	byType := map[model.TxnType]model.TypeTotals{
		model.TxnIncome:   {Total: decimal.Zero},
		model.TxnExpense:  {Total: decimal.Zero},
		model.TxnTransfer: {Total: decimal.Zero},
	}

	for _, item := range items {
		totals := byType[item.Type]
		totals.Count++
		totals.Total = totals.Total.Add(item.Amount)
		byType[item.Type] = totals
	}

	return model.Summary{
		ByType:     byType,
		ItemCount:  len(items),
		PairCount:  len(pairs),
		IssueCount: len(issues),
	}
}
