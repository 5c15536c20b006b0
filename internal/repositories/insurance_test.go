package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePremium(t *testing.T) {
	tests := []struct {
		name     string
		coverage string
		want     string
	}{
		{"written-out lakhs", "₹50,00,000", "₹1.0L/year"},
		{"short lakh form", "₹5L", "₹0.1L/year"},
		{"ten lakh", "₹10,00,000", "₹0.2L/year"},
		{"plain number", "500000", "₹0.1L/year"},
		{"garbage", "call me", "N/A"},
		{"empty", "", "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, derivePremium(tt.coverage))
		})
	}
}
