package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{"already round", 125.00, 125.00},
		{"rounds up", 14.926, 14.93},
		{"truncating tail", 9.9999, 10.00},
		{"small fraction down", 0.014, 0.01},
		{"negative", -3.336, -3.34},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundCurrency(tt.amount), 1e-9)
		})
	}
}
