package fees

import (
	"fmt"
	"math"
	"strings"

	"github.com/settlement-service/pkg/models"
)

// ValidationError is a local, pre-submission failure. It never blocks a
// retry and is never logged remotely.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const (
	CodeAmountRequired      = "amount_required"
	CodeBelowMinimum        = "below_minimum"
	CodeAboveMaximum        = "above_maximum"
	CodeInsufficientFunds   = "insufficient_funds"
	CodeBelowNetFloor       = "below_net_floor"
	CodeDestinationRequired = "destination_required"
	CodeStalePreview        = "stale_preview"
)

// Engine guards withdrawal submissions. The checks run in a fixed order
// and stop at the first failure so the user always sees the most
// fundamental problem first.
type Engine struct {
	Calc      Calculator
	MinAmount float64
	MaxAmount float64 // 0 means "defaults to balance"
}

func NewEngine(calc Calculator, minAmount, maxAmount float64) *Engine {
	return &Engine{Calc: calc, MinAmount: minAmount, MaxAmount: maxAmount}
}

// Preview computes fresh payout figures for the amount. Callers must
// throw away any earlier preview once the amount changes; Validate
// enforces that by matching AmountRequested.
func (e *Engine) Preview(amount float64) models.WithdrawalPreview {
	return e.Calc.Preview(amount)
}

// ValidateSubmission checks an amount/destination pair against the
// balance and limits, in this exact order: amount present, minimum,
// maximum, funds, net floor, destination. preview may be nil when no
// preview round-trip has completed yet; the net-floor check then runs
// against a freshly computed one.
func (e *Engine) ValidateSubmission(amount, balance float64, currency string, preview *models.WithdrawalPreview, destination string) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &ValidationError{Code: CodeAmountRequired, Message: "enter an amount"}
	}
	if amount < e.MinAmount {
		return &ValidationError{
			Code:    CodeBelowMinimum,
			Message: fmt.Sprintf("minimum withdrawal is %.2f %s", e.MinAmount, currency),
		}
	}
	maxAmount := e.MaxAmount
	if maxAmount == 0 {
		maxAmount = balance
	}
	if amount > maxAmount {
		return &ValidationError{
			Code:    CodeAboveMaximum,
			Message: fmt.Sprintf("maximum withdrawal is %.2f %s", maxAmount, currency),
		}
	}
	if amount > balance {
		return &ValidationError{Code: CodeInsufficientFunds, Message: "insufficient funds"}
	}

	if preview != nil && preview.AmountRequested != amount {
		// a preview computed for a since-edited amount must never pass
		// validation for the new one
		return &ValidationError{Code: CodeStalePreview, Message: "payout preview is out of date, try again"}
	}
	if preview == nil {
		p := e.Calc.Preview(amount)
		preview = &p
	}
	if !preview.CanWithdraw {
		return &ValidationError{
			Code:    CodeBelowNetFloor,
			Message: fmt.Sprintf("amount too small after fees, net payout must be at least %.2f", NetFloor),
		}
	}

	if strings.TrimSpace(destination) == "" {
		return &ValidationError{Code: CodeDestinationRequired, Message: "enter destination details"}
	}
	return nil
}
