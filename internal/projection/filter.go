package projection

import (
	"time"

	"github.com/settlement-service/pkg/models"
)

type Tab string

const (
	TabAll    Tab = "all"
	TabActive Tab = "active"
	TabLog    Tab = "log"
)

func ParseTab(s string) (Tab, bool) {
	switch Tab(s) {
	case TabAll, TabActive, TabLog:
		return Tab(s), true
	case "":
		return TabAll, true
	}
	return "", false
}

// suppressed reports whether an order is dropped from every list view:
// cancelled and expired checkouts carry no further user action, and a
// pending order past its deadline is the same thing the server has not
// caught up on yet. The detail view still renders such orders (see
// Project); only the lists hide them.
func suppressed(order models.Order, now time.Time) bool {
	switch order.Status {
	case models.OrderCancelled, models.OrderExpired:
		return true
	case models.OrderPending:
		return order.Deadline != nil && order.Deadline.Before(now)
	}
	return false
}

// FilterOrders produces the tab's view of the order set. It never mutates
// the input and never talks to the server.
func FilterOrders(orders []models.Order, tab Tab, now time.Time) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if suppressed(order, now) {
			continue
		}
		switch tab {
		case TabActive:
			switch order.Status {
			case models.OrderPending, models.OrderPaid, models.OrderPrepaid, models.OrderPartial:
				out = append(out, order)
			}
		case TabLog:
			switch order.Status {
			case models.OrderDelivered, models.OrderRefunded:
				out = append(out, order)
			}
		default:
			out = append(out, order)
		}
	}
	return out
}
