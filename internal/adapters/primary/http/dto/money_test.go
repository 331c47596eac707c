package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{123456.78, "$123,456.78"},
		{1234.5, "$1,234.50"},
		{999.994, "$999.99"},
		{1000000, "$1,000,000.00"},
		{-2500.1, "-$2,500.10"},
		{9.3e18, "$9,300,000,000,000,000,000.00"},
		{1e21, "$1,000,000,000,000,000,000,000.00"},
		{-0.001, "$0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.in))
	}
}

func TestFormatPrice_NonFinite(t *testing.T) {
	assert.Equal(t, "n/a", FormatPrice(math.NaN()))
	assert.Equal(t, "n/a", FormatPrice(math.Inf(1)))
}
