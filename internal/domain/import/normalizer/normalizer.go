// Package normalizer maps raw export rows into typed ledger items. It
// classifies each row as INCOME, EXPENSE or TRANSFER, canonicalizes dates,
// times, amounts and currency, and passes category labels and memos through
// verbatim. Rows that cannot be normalized are dropped with an issue; the
// stage is pure and preserves input order.
package normalizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/seojun-park/wonmoa/internal/model"
	"github.com/seojun-park/wonmoa/pkg/money"
)

// transferCategoryGroups are category-group labels Banksalad uses for
// account-to-account movements.
var transferCategoryGroups = map[string]struct{}{
	"이체":    {},
	"내계좌이체": {},
}

// columnMap holds resolved column indices; -1 when the column is absent.
type columnMap struct {
	date           int
	timeOfDay      int
	txnType        int
	categoryGroup  int
	category       int
	memo           int
	amount         int
	currency       int
	account        int
	counterAccount int
}

// Normalizer converts raw rows to ledger items.
type Normalizer struct{}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize maps each raw row to at most one item, collecting an issue for
// every row it drops. Emitted items preserve input row order.
func (n *Normalizer) Normalize(headers []string, rows []model.RawRow) ([]*model.Item, []string) {
	cm := mapColumns(headers)

	items := make([]*model.Item, 0, len(rows))
	var issues []string

	for i, row := range rows {
		rowNum := i + 2 // 1-indexed sheet position, after the header row

		item, issue := n.normalizeRow(cm, row, rowNum)
		if issue != "" {
			issues = append(issues, issue)
			continue
		}
		if item != nil {
			items = append(items, item)
		}
	}
	return items, issues
}

func (n *Normalizer) normalizeRow(cm columnMap, row model.RawRow, rowNum int) (*model.Item, string) {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	dateStr := cell(cm.date)
	if dateStr == "" {
		return nil, fmt.Sprintf("row %d: missing date", rowNum)
	}
	occurredAt, occurredTime, err := parseDate(dateStr)
	if err != nil {
		return nil, fmt.Sprintf("row %d: unparseable date %q", rowNum, dateStr)
	}
	if t := parseTimeOfDay(cell(cm.timeOfDay)); t != "" {
		occurredTime = t
	}

	amountStr := cell(cm.amount)
	amount, currencyHint, err := money.ParseAmount(amountStr)
	if err != nil {
		return nil, fmt.Sprintf("row %d: unparseable amount %q", rowNum, amountStr)
	}
	if amount.IsZero() {
		return nil, fmt.Sprintf("row %d: zero-amount row dropped", rowNum)
	}

	currency := cell(cm.currency)
	if currency == "" {
		currency = currencyHint
	}
	currency = money.CanonicalCode(currency)

	accountName := cell(cm.account)
	counterName := cell(cm.counterAccount)

	txnType := classify(cell(cm.txnType), cell(cm.categoryGroup), accountName, counterName, amount.IsNegative())

	// The sign convention is fixed per type; exports that carry magnitudes
	// next to an explicit type column get their sign corrected here.
	switch txnType {
	case model.TxnExpense:
		amount = amount.Abs().Neg()
	case model.TxnIncome:
		amount = amount.Abs()
	}

	return &model.Item{
		Type:               txnType,
		OccurredAt:         occurredAt,
		OccurredTime:       occurredTime,
		Amount:             amount,
		Currency:           currency,
		AccountName:        accountName,
		CounterAccountName: counterName,
		CategoryGroupName:  cell(cm.categoryGroup),
		CategoryName:       cell(cm.category),
		Memo:               cell(cm.memo),
		Row:                rowNum,
	}, ""
}

// classify decides the transaction type. A row is TRANSFER when the export
// marks it explicitly (type column, transfer category group, or both account
// columns populated); otherwise the amount sign decides.
func classify(typeCell, categoryGroup, account, counter string, negative bool) model.TxnType {
	switch strings.ToLower(typeCell) {
	case "수입", "income":
		return model.TxnIncome
	case "지출", "expense":
		return model.TxnExpense
	case "이체", "transfer":
		return model.TxnTransfer
	}

	if _, ok := transferCategoryGroups[strings.TrimSpace(categoryGroup)]; ok {
		return model.TxnTransfer
	}
	if account != "" && counter != "" {
		return model.TxnTransfer
	}

	if negative {
		return model.TxnExpense
	}
	return model.TxnIncome
}

var dateFormats = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"20060102",
	"2006-01-02 15:04:05",
	"2006.01.02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// parseDate canonicalizes the date cell. When the cell carries a time
// component it is returned alongside, unless a dedicated time column
// overrides it.
func parseDate(s string) (time.Time, string, error) {
	for _, format := range dateFormats {
		t, err := time.Parse(format, s)
		if err != nil {
			continue
		}
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		clock := ""
		if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 {
			clock = t.Format("15:04:05")
		}
		return date, clock, nil
	}
	return time.Time{}, "", fmt.Errorf("unrecognized date format: %s", s)
}

// parseTimeOfDay normalizes a time cell to "15:04:05"; malformed or empty
// cells yield "".
func parseTimeOfDay(s string) string {
	if s == "" {
		return ""
	}
	for _, format := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(format, s); err == nil {
			return t.Format("15:04:05")
		}
	}
	return ""
}

// column keyword tables, Korean first. Concerns are resolved in a fixed
// order and each header column is claimed at most once, so "대분류" wins
// before "소분류" and "상대계좌" before "결제수단".
var columnKeywords = []struct {
	assign   func(*columnMap, int)
	keywords []string
}{
	{func(cm *columnMap, i int) { cm.date = i }, []string{"날짜", "date"}},
	{func(cm *columnMap, i int) { cm.timeOfDay = i }, []string{"시간", "time"}},
	{func(cm *columnMap, i int) { cm.txnType = i }, []string{"타입", "구분", "type"}},
	{func(cm *columnMap, i int) { cm.categoryGroup = i }, []string{"대분류", "category group", "group"}},
	{func(cm *columnMap, i int) { cm.category = i }, []string{"소분류", "category", "subcategory"}},
	{func(cm *columnMap, i int) { cm.memo = i }, []string{"내용", "적요", "memo", "description"}},
	{func(cm *columnMap, i int) { cm.amount = i }, []string{"금액", "amount"}},
	{func(cm *columnMap, i int) { cm.currency = i }, []string{"화폐", "통화", "currency"}},
	{func(cm *columnMap, i int) { cm.counterAccount = i }, []string{"상대계좌", "상대 계좌", "counter account", "to account"}},
	{func(cm *columnMap, i int) { cm.account = i }, []string{"결제수단", "계좌", "자산", "account", "payment method"}},
}

// mapColumns resolves column indices from the header row by keyword.
func mapColumns(headers []string) columnMap {
	cm := columnMap{
		date: -1, timeOfDay: -1, txnType: -1, categoryGroup: -1, category: -1,
		memo: -1, amount: -1, currency: -1, account: -1, counterAccount: -1,
	}

	claimed := make(map[int]bool, len(headers))
	for _, concern := range columnKeywords {
		for i, header := range headers {
			if claimed[i] {
				continue
			}
			h := strings.ToLower(strings.TrimSpace(header))
			if h == "" || !containsAny(h, concern.keywords) {
				continue
			}
			concern.assign(&cm, i)
			claimed[i] = true
			break
		}
	}
	return cm
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
