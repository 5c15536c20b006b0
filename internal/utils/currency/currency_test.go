package currency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"crore", 10000000, "₹1.0Cr"},
		{"multiple crores", 25000000, "₹2.5Cr"},
		{"lakh", 500000, "₹5.0L"},
		{"lakh boundary", 100000, "₹1.0L"},
		{"just below crore stays in lakhs", 9999999, "₹100.0L"},
		{"thousands", 50000, "₹50,000"},
		{"small", 999, "₹999"},
		{"zero", 0, "₹0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int64
	}{
		{"int", 50000, 50000},
		{"int64", int64(75000), 75000},
		{"float", 1234.9, 1234},
		{"plain string", "500000", 500000},
		{"rupee string", "₹5,00,000", 500000},
		{"income string", "₹45,000/month", 45000},
		{"garbage defaults to zero", "garbage", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestFormatIncome(t *testing.T) {
	assert.Equal(t, "₹45,000/month", FormatIncome(45000))
	assert.Equal(t, "₹45,000/month", FormatIncome("45000"))
	assert.Equal(t, "₹45,000/month", FormatIncome("₹45,000/month"))
	assert.Equal(t, "", FormatIncome(nil))
	assert.Equal(t, "", FormatIncome("  "))
	// Unparseable strings pass through untouched.
	assert.Equal(t, "varies", FormatIncome("varies"))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-15", FormatDate(ts))
	assert.Equal(t, "2024-03-15", FormatDate("2024-03-15T10:30:00Z"))
	assert.Equal(t, "2024-03-15", FormatDate("2024-03-15"))

	// Documents decoded into bson.M carry BSON datetimes, not time.Time.
	assert.Equal(t, "2024-02-10", FormatDate(primitive.NewDateTimeFromTime(
		time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC))))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1,000", GroupThousands(1000))
	assert.Equal(t, "10,567", GroupThousands(10567))
	assert.Equal(t, "999", GroupThousands(999))
}
