package fees

// Approximate exchange rates for rendering preset "quick amount" buttons
// in the user's balance currency. Display convenience only: submissions
// and fee figures always come from Calculator.Preview, never from this
// table.
var quickAmountRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"RUB": 90.0,
	"UAH": 41.0,
	"KZT": 480.0,
}

// ApproxQuickAmount converts a payout-currency preset into the balance
// currency for button labels. Unknown currencies fall back to 1:1.
func ApproxQuickAmount(balanceCurrency string, payoutAmount float64) float64 {
	rate, ok := quickAmountRates[balanceCurrency]
	if !ok {
		rate = 1.0
	}
	return round2(payoutAmount * rate)
}
