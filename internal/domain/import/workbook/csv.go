package workbook

import (
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/seojun-park/wonmoa/internal/model"
)

// csvRow is one line of a re-saved export. The duplicated fields let gocsv
// match both the native Korean headers and English re-exports by header name.
type csvRow struct {
	Date   string `csv:"날짜"`
	DateEn string `csv:"date"`

	Time   string `csv:"시간"`
	TimeEn string `csv:"time"`

	Type   string `csv:"타입"`
	TypeEn string `csv:"type"`

	CategoryGroup   string `csv:"대분류"`
	CategoryGroupEn string `csv:"category group"`

	Category   string `csv:"소분류"`
	CategoryEn string `csv:"category"`

	Memo   string `csv:"내용"`
	MemoEn string `csv:"memo"`

	Amount   string `csv:"금액"`
	AmountEn string `csv:"amount"`

	Currency   string `csv:"화폐"`
	CurrencyEn string `csv:"currency"`

	Account   string `csv:"결제수단"`
	AccountEn string `csv:"account"`

	CounterAccount   string `csv:"상대계좌"`
	CounterAccountEn string `csv:"counter account"`
}

// csvHeaders is the canonical column order rows are rewritten into before
// they enter the normalizer, so CSV and xlsx share one column-mapping path.
var csvHeaders = []string{
	"날짜", "시간", "타입", "대분류", "소분류", "내용", "금액", "화폐", "결제수단", "상대계좌",
}

func (e *Extractor) extractCSV(data []byte) ([]string, []model.RawRow, error) {
	var rows []csvRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}

	out := make([]model.RawRow, 0, len(rows))
	for _, row := range rows {
		cells := model.RawRow{
			coalesce(row.Date, row.DateEn),
			coalesce(row.Time, row.TimeEn),
			coalesce(row.Type, row.TypeEn),
			coalesce(row.CategoryGroup, row.CategoryGroupEn),
			coalesce(row.Category, row.CategoryEn),
			coalesce(row.Memo, row.MemoEn),
			coalesce(row.Amount, row.AmountEn),
			coalesce(row.Currency, row.CurrencyEn),
			coalesce(row.Account, row.AccountEn),
			coalesce(row.CounterAccount, row.CounterAccountEn),
		}
		if blankRow(cells) {
			continue
		}
		out = append(out, cells)
	}
	return csvHeaders, out, nil
}

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
