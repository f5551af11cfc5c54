package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"Zero", 0, "$0.00"},
		{"Small", 42.5, "$42.50"},
		{"Thousands", 1500, "$1,500.00"},
		{"Millions", 1234567.89, "$1,234,567.89"},
		{"Negative", -999.9, "-$999.90"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCurrency("$", tt.amount))
		})
	}
}
