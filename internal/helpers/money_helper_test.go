package helpers_test

import (
	"testing"
	"time"

	"github.com/kestrelmotors/dealerdesk-api/internal/constants"
	"github.com/kestrelmotors/dealerdesk-api/internal/helpers"
	"github.com/kestrelmotors/dealerdesk-api/internal/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValue(t *testing.T) {
	assert.True(t, helpers.Value(nil).IsZero())

	d := dec("42.50")
	assert.True(t, helpers.Value(&d).Equal(d))
}

func TestNonNegative(t *testing.T) {
	assert.True(t, helpers.NonNegative(dec("-10")).IsZero())
	assert.True(t, helpers.NonNegative(dec("0")).IsZero())
	assert.True(t, helpers.NonNegative(dec("10")).Equal(dec("10")))
}

func TestNetOfDiscount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		discount *business.Discount
		want     string
	}{
		{"no discount", "100", nil, "100"},
		{"fixed amount", "100", &business.Discount{Type: constants.DiscountTypeFixedAmount, Value: dec("30")}, "70"},
		{"percentage", "200", &business.Discount{Type: constants.DiscountTypePercentage, Value: dec("15")}, "170"},
		{"over-discount clamps at zero", "100", &business.Discount{Type: constants.DiscountTypeFixedAmount, Value: dec("150")}, "0"},
		{"unknown discount type ignored", "100", &business.Discount{Type: "raffle", Value: dec("50")}, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := helpers.NetOfDiscount(dec(tt.amount), tt.discount)
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestSumPayments(t *testing.T) {
	entries := []business.PaymentEntry{
		{Amount: dec("100.25")},
		{Amount: dec("0.75")},
		{Amount: dec("49")},
	}
	assert.True(t, helpers.SumPayments(entries).Equal(dec("150")))
	assert.True(t, helpers.SumPayments(nil).IsZero())
}

func TestFormatGBP(t *testing.T) {
	assert.Equal(t, "£10500.00", helpers.FormatGBP(dec("10500")))
	assert.Equal(t, "£0.50", helpers.FormatGBP(dec("0.5")))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "14/03/2026", helpers.FormatDate(d))
}
