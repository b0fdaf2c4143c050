package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0.00"},
		{in: "999", want: "999.00"},
		{in: "1000", want: "1,000.00"},
		{in: "1234567.5", want: "1,234,567.50"},
		{in: "-98765.432", want: "-98,765.43"},
		{in: "12.999", want: "13.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "2.50%", Percent(decimal.RequireFromString("2.5")))
	assert.Equal(t, "-1.25%", Percent(decimal.RequireFromString("-1.25")))
}
