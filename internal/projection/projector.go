package projection

import (
	"time"

	"github.com/settlement-service/pkg/models"
)

// Gateways that expose a verification endpoint. Orders paid through
// anything else cannot be checked and show a static message instead.
var verifiableGateways = map[string]bool{
	"cryptopay": true,
}

func IsVerifiableGateway(gateway string) bool {
	return verifiableGateways[gateway]
}

// Projection is the UI-facing view of a raw order status at a given instant.
type Projection struct {
	DisplayStatus   models.OrderStatus `json:"display_status"`
	StatusMessage   string             `json:"status_message"`
	IsExpired       bool               `json:"is_expired"`
	CanPay          bool               `json:"can_pay"`
	CanCheckPayment bool               `json:"can_check_payment"`
}

var statusMessages = map[models.OrderStatus]string{
	models.OrderPending:   "awaiting payment",
	models.OrderPrepaid:   "payment received, fulfillment pending",
	models.OrderPaid:      "payment confirmed",
	models.OrderPartial:   "partially delivered",
	models.OrderDelivered: "delivered",
	models.OrderCancelled: "cancelled",
	models.OrderRefunded:  "refunded",
	models.OrderExpired:   "payment window elapsed",
	models.OrderFailed:    "payment failed",
}

// Project derives presentational state from a raw order status. It is a
// pure function of (order, now): the caller passes a single now per
// evaluation pass so every decision inside one projection agrees on the
// time. An order that is still pending server-side but past its deadline
// is treated as expired: it stays visible but loses its pay action, so
// the user can see why the payment did not go through.
func Project(order models.Order, now time.Time) Projection {
	isExpired := order.Deadline != nil && order.Deadline.Before(now)

	displayStatus := order.Status
	message := statusMessages[order.Status]
	if order.Status == models.OrderPending && isExpired {
		displayStatus = models.OrderExpired
		message = statusMessages[models.OrderExpired]
	}

	canPay := order.Status == models.OrderPending &&
		order.PaymentURL != "" &&
		!isExpired

	canCheck := order.PaymentID != "" && IsVerifiableGateway(order.PaymentGateway)

	return Projection{
		DisplayStatus:   displayStatus,
		StatusMessage:   message,
		IsExpired:       isExpired,
		CanPay:          canPay,
		CanCheckPayment: canCheck,
	}
}
