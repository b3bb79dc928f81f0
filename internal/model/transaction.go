// Package model defines the ledger entities produced by a Banksalad import:
// normalized transactions, suspected transfer pairs and the per-invocation
// result envelope. Values are built once by the import pipeline and never
// mutated afterwards.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType is the direction of a ledger item.
type TxnType string

const (
	TxnIncome   TxnType = "INCOME"
	TxnExpense  TxnType = "EXPENSE"
	TxnTransfer TxnType = "TRANSFER"
)

// TransferFlow tags which leg of a matched transfer pair an item is.
type TransferFlow string

const (
	FlowOut TransferFlow = "OUT"
	FlowIn  TransferFlow = "IN"
)

// RawRow is one spreadsheet line as loosely-typed cell values. It carries no
// semantics and is discarded after normalization.
type RawRow []string

// Item is a normalized ledger transaction derived from one workbook row.
// Sign convention is fixed per type: EXPENSE amounts are negative, INCOME
// amounts positive, TRANSFER amounts signed by leg direction.
type Item struct {
	Type TxnType `json:"type"`

	OccurredAt   time.Time `json:"occurred_at"`
	OccurredTime string    `json:"occurred_time,omitempty"` // "15:04:05", empty when the export has no time

	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`

	AccountName        string `json:"account_name"`
	CounterAccountName string `json:"counter_account_name,omitempty"`

	CategoryGroupName string `json:"category_group_name,omitempty"`
	CategoryName      string `json:"category_name,omitempty"`
	Memo              string `json:"memo,omitempty"`

	ExternalID   string       `json:"external_id"`
	TransferFlow TransferFlow `json:"transfer_flow,omitempty"`

	// AccountIsOwn reports whether the primary account was resolved to the
	// user's own account set. SameOwner is set only on TRANSFER items whose
	// counter-account also resolved to the user's own set.
	AccountIsOwn bool `json:"account_is_own"`
	SameOwner    bool `json:"same_owner,omitempty"`

	// Row is the 1-indexed source row, kept for issue reporting and for
	// deterministic tie-breaking during pair matching.
	Row int `json:"row"`
}

// ConfidenceLevel buckets a pair score into a coarse grade.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// Confidence records how a suspected pair was scored. Reasons lists one short
// tag per point-awarding signal, in the order the signals were evaluated.
type Confidence struct {
	Level   ConfidenceLevel `json:"level"`
	Score   int             `json:"score"`
	Reasons []string        `json:"reasons"`
}

// Pair is two items believed to be the legs of one transfer between the
// user's own accounts: an outgoing (negative) and an incoming (positive) leg.
type Pair struct {
	Outgoing   *Item      `json:"outgoing"`
	Incoming   *Item      `json:"incoming"`
	Confidence Confidence `json:"confidence"`
}

// TypeTotals aggregates one transaction type.
type TypeTotals struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Summary is a read-only aggregate snapshot built after all items are final.
type Summary struct {
	ByType     map[TxnType]TypeTotals `json:"by_type"`
	ItemCount  int                    `json:"item_count"`
	PairCount  int                    `json:"pair_count"`
	IssueCount int                    `json:"issue_count"`
}

// Result is everything one import invocation produces. The importer has no
// other side effects; persistence is the caller's concern.
type Result struct {
	UserID         string   `json:"user_id"`
	Items          []*Item  `json:"items"`
	SuspectedPairs []Pair   `json:"suspected_pairs"`
	Issues         []string `json:"issues"`
	Summary        Summary  `json:"summary"`
}

// Options configures one import invocation.
type Options struct {
	// ExistingAccounts lists the display names of accounts known to belong
	// to the importing user. Membership checks normalize punctuation,
	// spacing and case, so "신한 은행-123" matches "신한은행123".
	ExistingAccounts []string

	// RawSingleAccountMode disables counter-account resolution entirely.
	// Use it for exports that cover a single account and therefore cannot
	// contain reliable two-sided transfer pairs.
	RawSingleAccountMode bool
}
