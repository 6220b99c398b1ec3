package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatorPreview(t *testing.T) {
	calc := NewCalculator(1.0, 1.5)

	tests := []struct {
		name            string
		amount          float64
		expectedGross   float64
		expectedNet     float64
		expectedCanDraw bool
	}{
		{
			name:            "boundary amount is withdrawable",
			amount:          10,
			expectedGross:   10,
			expectedNet:     8.5,
			expectedCanDraw: true,
		},
		{
			name:            "below the floor is not withdrawable",
			amount:          9,
			expectedGross:   9,
			expectedNet:     7.5,
			expectedCanDraw: false,
		},
		{
			name:            "comfortable amount",
			amount:          100,
			expectedGross:   100,
			expectedNet:     98.5,
			expectedCanDraw: true,
		},
		{
			name:            "zero amount",
			amount:          0,
			expectedGross:   0,
			expectedNet:     -1.5,
			expectedCanDraw: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := calc.Preview(tt.amount)
			assert.Equal(t, tt.amount, p.AmountRequested)
			assert.Equal(t, tt.expectedGross, p.AmountGross)
			assert.Equal(t, 1.5, p.NetworkFee)
			assert.Equal(t, tt.expectedNet, p.AmountNet)
			assert.Equal(t, tt.expectedCanDraw, p.CanWithdraw)
		})
	}
}

func TestCalculatorPreviewWithRate(t *testing.T) {
	// 90 RUB per USDT
	calc := NewCalculator(1.0/90.0, 1.5)

	p := calc.Preview(900)
	assert.Equal(t, 10.0, p.AmountGross)
	assert.Equal(t, 8.5, p.AmountNet)
	assert.True(t, p.CanWithdraw)

	p = calc.Preview(450)
	assert.Equal(t, 5.0, p.AmountGross)
	assert.False(t, p.CanWithdraw)
}

func TestApproxQuickAmount(t *testing.T) {
	assert.Equal(t, 900.0, ApproxQuickAmount("RUB", 10))
	assert.Equal(t, 10.0, ApproxQuickAmount("USD", 10))
	// unknown currency falls back to 1:1
	assert.Equal(t, 25.0, ApproxQuickAmount("XXX", 25))
}
