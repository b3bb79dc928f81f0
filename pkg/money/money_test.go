package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		hint     string
	}{
		{"plain integer", "50000", "50000", ""},
		{"negative", "-50000", "-50000", ""},
		{"thousands separators", "1,234,567", "1234567", ""},
		{"won symbol", "₩50,000", "50000", "KRW"},
		{"fullwidth won symbol", "￦1,000", "1000", "KRW"},
		{"dollar with decimals", "$1,234.56", "1234.56", "USD"},
		{"euro negative", "-€5.00", "-5", "EUR"},
		{"accounting parentheses", "(4,500)", "-4500", ""},
		{"surrounding whitespace", "  -3,000 ", "-3000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, hint, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assert.True(t, d.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", d, tt.expected)
			assert.Equal(t, tt.hint, hint)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		_, _, err := ParseAmount("abc")
		require.Error(t, err)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, _, err := ParseAmount("   ")
		require.Error(t, err)
	})
}

func TestCanonicalCode(t *testing.T) {
	assert.Equal(t, "KRW", CanonicalCode(""))
	assert.Equal(t, "KRW", CanonicalCode("krw"))
	assert.Equal(t, "USD", CanonicalCode(" usd "))
	assert.Equal(t, "KRW", CanonicalCode("XXXX"))
}

func TestMinorUnits(t *testing.T) {
	t.Run("KRW has no fraction", func(t *testing.T) {
		assert.Equal(t, int64(400000), MinorUnits(decimal.NewFromInt(400000), "KRW"))
	})

	t.Run("USD uses cents", func(t *testing.T) {
		assert.Equal(t, int64(123456), MinorUnits(decimal.RequireFromString("1234.56"), "USD"))
	})

	t.Run("round trips", func(t *testing.T) {
		d := FromMinorUnits(123456, "USD")
		assert.True(t, d.Equal(decimal.RequireFromString("1234.56")))
	})
}
