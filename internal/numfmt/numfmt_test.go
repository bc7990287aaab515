package numfmt

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]string{
		"100.000":       "100000",
		"1.000.000":     "1000000",
		"1.050":         "1050",
		"1.234,56":      "1234.56",
		"2,5":           "2.5",
		"2.5":           "2.5",
		"1050.75":       "1050.75",
		"$ 105.000":     "105000",
		"12%":           "12",
		"-5.000":        "-5000",
		",5":            "0.5",
		"  42  ":        "42",
		"1.234.567,891": "1234567.891",
		"1187.500":      "1187500",
		"1187,5":        "1187.5",
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoErrorf(t, err, "input %q", in)
		assert.Truef(t, decimal.RequireFromString(want).Equal(got), "Parse(%q)=%s want=%s", in, got, want)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "-", ",", "abc", "1,2,3", "12a", "1.2.3,x"} {
		_, err := Parse(in)
		assert.ErrorIsf(t, err, ErrInvalidNumber, "input %q", in)
	}
}

func TestThousands(t *testing.T) {
	assert.Equal(t, "100.000", Thousands(decimal.NewFromInt(100000)))
	assert.Equal(t, "999", Thousands(decimal.NewFromInt(999)))
	assert.Equal(t, "1.234.568", Thousands(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-5.000", Thousands(decimal.NewFromInt(-5000)))
}

func TestMoneyAndPercent(t *testing.T) {
	assert.Equal(t, "$ 105.000,00", Money(decimal.NewFromInt(105000)))
	assert.Equal(t, "$ 0,50", Money(decimal.RequireFromString("0.5")))
	assert.Equal(t, "2,38%", Percent(decimal.RequireFromString("2.375")))
	assert.Equal(t, "5,00%", Percent(decimal.NewFromInt(5)))
}

func TestFormat_BeyondMinorUnits(t *testing.T) {
	assert.Equal(t, "$ 10.000.000.000.000.000,00", Money(decimal.RequireFromString("1e16")))
	assert.Equal(t, "$ 100000000000000000.00", Money(decimal.RequireFromString("1e17")))
	assert.Equal(t, "100000000000000000.00%", Percent(decimal.RequireFromString("1e17")))
	assert.Equal(t, "100000000000000000000", Thousands(decimal.RequireFromString("1e20")))
}

func TestReformat(t *testing.T) {
	assert.Equal(t, "100.000", Reformat("100000"))
	assert.Equal(t, "100.000", Reformat("100.00a0"))
	assert.Equal(t, "", Reformat("abc"))
}
