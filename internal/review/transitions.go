package review

import (
	"errors"

	"github.com/settlement-service/pkg/models"
)

// ErrIllegalTransition is the client-side mirror of the server refusing
// an action on stale state: the item is left as-is and the caller
// resyncs from the server.
var ErrIllegalTransition = errors.New("action not allowed in current status")

type WithdrawalAction string

const (
	ActionApprove  WithdrawalAction = "approve"
	ActionReject   WithdrawalAction = "reject"
	ActionComplete WithdrawalAction = "complete"
)

// Once approved, a withdrawal can only complete: there is no reject path
// out of PROCESSING. COMPLETED and REJECTED are terminal.
var withdrawalNext = map[models.WithdrawalStatus]map[WithdrawalAction]models.WithdrawalStatus{
	models.WithdrawalPending: {
		ActionApprove: models.WithdrawalProcessing,
		ActionReject:  models.WithdrawalRejected,
	},
	models.WithdrawalProcessing: {
		ActionComplete: models.WithdrawalCompleted,
	},
	models.WithdrawalCompleted: {},
	models.WithdrawalRejected:  {},
}

func NextWithdrawalStatus(current models.WithdrawalStatus, action WithdrawalAction) (models.WithdrawalStatus, error) {
	next, ok := withdrawalNext[current][action]
	if !ok {
		return "", ErrIllegalTransition
	}
	return next, nil
}

// WithdrawalActions lists the actions an operator may take on an item in
// the given status, in display order.
func WithdrawalActions(current models.WithdrawalStatus) []WithdrawalAction {
	switch current {
	case models.WithdrawalPending:
		return []WithdrawalAction{ActionApprove, ActionReject}
	case models.WithdrawalProcessing:
		return []WithdrawalAction{ActionComplete}
	case models.WithdrawalCompleted, models.WithdrawalRejected:
		return nil
	}
	return nil
}

// ResolveTicketStatus maps an open ticket and the reviewer's verdict to
// the next status. Tickets only ever resolve out of OPEN.
func ResolveTicketStatus(current models.TicketStatus, approve bool) (models.TicketStatus, error) {
	if current != models.TicketOpen {
		return "", ErrIllegalTransition
	}
	if approve {
		return models.TicketApproved, nil
	}
	return models.TicketRejected, nil
}
