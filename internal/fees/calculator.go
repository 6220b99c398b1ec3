package fees

import (
	"math"

	"github.com/settlement-service/pkg/models"
)

// Practical payout minimums for the USDT network: a request is not
// withdrawable when the net figure lands below NetFloor or the gross
// equivalent below GrossFloor.
const (
	NetFloor   = 8.5
	GrossFloor = 10.0
)

// Calculator converts a requested balance-currency amount into payout
// figures. Rate and fee come from service configuration; the calculator
// itself holds no mutable state.
type Calculator struct {
	Rate       float64 // balance currency -> payout currency
	NetworkFee float64 // flat fee, payout currency
}

func NewCalculator(rate, networkFee float64) Calculator {
	return Calculator{Rate: rate, NetworkFee: networkFee}
}

func (c Calculator) Preview(amount float64) models.WithdrawalPreview {
	gross := round2(amount * c.Rate)
	net := round2(gross - c.NetworkFee)

	return models.WithdrawalPreview{
		AmountRequested: amount,
		AmountGross:     gross,
		NetworkFee:      c.NetworkFee,
		AmountNet:       net,
		CanWithdraw:     net >= NetFloor && gross >= GrossFloor,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
