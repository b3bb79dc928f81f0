package normalizer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojun-park/wonmoa/internal/model"
)

var koreanHeaders = []string{
	"날짜", "시간", "타입", "대분류", "소분류", "내용", "금액", "화폐", "결제수단", "상대계좌",
}

func TestNormalizer_Classification(t *testing.T) {
	n := New()

	tests := []struct {
		name     string
		row      model.RawRow
		expected model.TxnType
		amount   string
	}{
		{
			name:     "explicit expense keeps negative sign",
			row:      model.RawRow{"2024-03-01", "09:02:00", "지출", "식비", "카페", "커피", "-4500", "KRW", "체크카드", ""},
			expected: model.TxnExpense,
			amount:   "-4500",
		},
		{
			name:     "expense magnitude is negated",
			row:      model.RawRow{"2024-03-01", "", "지출", "식비", "카페", "커피", "4500", "KRW", "체크카드", ""},
			expected: model.TxnExpense,
			amount:   "-4500",
		},
		{
			name:     "explicit income",
			row:      model.RawRow{"2024-03-02", "", "수입", "급여", "월급", "3월 급여", "2500000", "KRW", "급여통장", ""},
			expected: model.TxnIncome,
			amount:   "2500000",
		},
		{
			name:     "explicit transfer keeps leg sign",
			row:      model.RawRow{"2024-03-01", "", "이체", "이체", "미분류", "", "-50000", "KRW", "입출금통장", "저축예금"},
			expected: model.TxnTransfer,
			amount:   "-50000",
		},
		{
			name:     "transfer by category group",
			row:      model.RawRow{"2024-03-01", "", "", "내계좌이체", "미분류", "", "50000", "KRW", "저축예금", ""},
			expected: model.TxnTransfer,
			amount:   "50000",
		},
		{
			name:     "transfer by both account columns",
			row:      model.RawRow{"2024-03-01", "", "", "미분류", "미분류", "", "-50000", "KRW", "Checking", "Savings"},
			expected: model.TxnTransfer,
			amount:   "-50000",
		},
		{
			name:     "negative amount without type is expense",
			row:      model.RawRow{"2024-03-01", "", "", "쇼핑", "온라인", "책", "-12000", "KRW", "체크카드", ""},
			expected: model.TxnExpense,
			amount:   "-12000",
		},
		{
			name:     "positive amount without type is income",
			row:      model.RawRow{"2024-03-01", "", "", "기타", "환급", "환불", "12000", "KRW", "체크카드", ""},
			expected: model.TxnIncome,
			amount:   "12000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, issues := n.Normalize(koreanHeaders, []model.RawRow{tt.row})
			require.Empty(t, issues)
			require.Len(t, items, 1)
			assert.Equal(t, tt.expected, items[0].Type)
			assert.True(t, items[0].Amount.Equal(decimal.RequireFromString(tt.amount)),
				"got %s, want %s", items[0].Amount, tt.amount)
		})
	}
}

func TestNormalizer_DroppedRows(t *testing.T) {
	n := New()

	t.Run("unparseable amount drops row, others survive", func(t *testing.T) {
		rows := []model.RawRow{
			{"2024-03-01", "", "지출", "식비", "카페", "커피", "abc", "KRW", "체크카드", ""},
			{"2024-03-02", "", "지출", "식비", "카페", "커피", "-4500", "KRW", "체크카드", ""},
		}
		items, issues := n.Normalize(koreanHeaders, rows)
		require.Len(t, items, 1)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "row 2")
		assert.Contains(t, issues[0], `"abc"`)
	})

	t.Run("zero amount drops row", func(t *testing.T) {
		rows := []model.RawRow{
			{"2024-03-01", "", "지출", "식비", "카페", "커피", "0", "KRW", "체크카드", ""},
		}
		items, issues := n.Normalize(koreanHeaders, rows)
		assert.Empty(t, items)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "zero-amount")
	})

	t.Run("unparseable date drops row", func(t *testing.T) {
		rows := []model.RawRow{
			{"not a date", "", "지출", "식비", "카페", "커피", "-4500", "KRW", "체크카드", ""},
		}
		items, issues := n.Normalize(koreanHeaders, rows)
		assert.Empty(t, items)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "unparseable date")
	})
}

func TestNormalizer_DatesAndTimes(t *testing.T) {
	n := New()

	t.Run("dotted date with separate time column", func(t *testing.T) {
		rows := []model.RawRow{
			{"2024.03.01", "09:02:00", "지출", "식비", "카페", "커피", "-4500", "KRW", "체크카드", ""},
		}
		items, issues := n.Normalize(koreanHeaders, rows)
		require.Empty(t, issues)
		require.Len(t, items, 1)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), items[0].OccurredAt)
		assert.Equal(t, "09:02:00", items[0].OccurredTime)
	})

	t.Run("datetime cell carries the clock", func(t *testing.T) {
		rows := []model.RawRow{
			{"2024-03-01 14:30:00", "", "지출", "식비", "카페", "커피", "-4500", "KRW", "체크카드", ""},
		}
		items, issues := n.Normalize(koreanHeaders, rows)
		require.Empty(t, issues)
		require.Len(t, items, 1)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), items[0].OccurredAt)
		assert.Equal(t, "14:30:00", items[0].OccurredTime)
	})

	t.Run("absent time stays empty", func(t *testing.T) {
		rows := []model.RawRow{
			{"2024-03-01", "", "지출", "식비", "카페", "커피", "-4500", "KRW", "체크카드", ""},
		}
		items, _ := n.Normalize(koreanHeaders, rows)
		require.Len(t, items, 1)
		assert.Empty(t, items[0].OccurredTime)
	})
}

func TestNormalizer_CurrencyDefaults(t *testing.T) {
	n := New()

	t.Run("missing currency defaults to KRW", func(t *testing.T) {
		rows := []model.RawRow{
			{"2024-03-01", "", "지출", "식비", "카페", "커피", "-4500", "", "체크카드", ""},
		}
		items, _ := n.Normalize(koreanHeaders, rows)
		require.Len(t, items, 1)
		assert.Equal(t, "KRW", items[0].Currency)
	})

	t.Run("symbol hint wins over default", func(t *testing.T) {
		rows := []model.RawRow{
			{"2024-03-01", "", "지출", "식비", "카페", "커피", "-$45.00", "", "체크카드", ""},
		}
		items, _ := n.Normalize(koreanHeaders, rows)
		require.Len(t, items, 1)
		assert.Equal(t, "USD", items[0].Currency)
	})
}

func TestNormalizer_EnglishHeaders(t *testing.T) {
	headers := []string{
		"date", "time", "type", "category group", "category", "memo",
		"amount", "currency", "account", "counter account",
	}
	rows := []model.RawRow{
		{"2024-03-01", "", "transfer", "이체", "미분류", "to savings", "-50000", "KRW", "Checking", "Savings"},
	}

	items, issues := New().Normalize(headers, rows)
	require.Empty(t, issues)
	require.Len(t, items, 1)
	assert.Equal(t, model.TxnTransfer, items[0].Type)
	assert.Equal(t, "Checking", items[0].AccountName)
	assert.Equal(t, "Savings", items[0].CounterAccountName)
	assert.Equal(t, "to savings", items[0].Memo)
}

func TestNormalizeAccountToken(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"신한 은행-123", "신한은행123"},
		{"신한은행123", "신한은행123"},
		{"Hana Bank (Main)", "hanabankmain"},
		{"급여 하나 통장 (호천)", "급여하나통장호천"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeAccountToken(tt.input), "input %q", tt.input)
	}
}
