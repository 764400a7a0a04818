package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFloat(t *testing.T) {
	d, err := FromFloat(1250.5)
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1250.5")))

	_, err = FromFloat(math.NaN())
	assert.ErrorIs(t, err, ErrNotFinite)

	_, err = FromFloat(math.Inf(1))
	assert.ErrorIs(t, err, ErrNotFinite)

	_, err = FromFloat(-0.01)
	assert.ErrorIs(t, err, ErrNegative)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "300", want: "300"},
		{in: "1,250.50", want: "1250.5"},
		{in: "RD$ 2,000", want: "2000"},
		{in: "  0.99 ", want: "0.99"},
		{in: "", wantErr: ErrInvalid},
		{in: "abc", wantErr: ErrInvalid},
		{in: "-5", wantErr: ErrNegative},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"0":           "RD$0.00",
		"5.5":         "RD$5.50",
		"999":         "RD$999.00",
		"1000":        "RD$1,000.00",
		"1234567.891": "RD$1,234,567.89",
		"-1450":       "-RD$1,450.00",
	}

	for in, want := range tests {
		assert.Equal(t, want, Format(decimal.RequireFromString(in)), in)
	}
}
