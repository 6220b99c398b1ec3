package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settlement-service/pkg/models"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestProject(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		order    models.Order
		expected Projection
	}{
		{
			name: "pending with future deadline is payable",
			order: models.Order{
				ID:             "ord-1",
				Status:         models.OrderPending,
				Deadline:       ts("2024-06-02T00:00:00Z"),
				PaymentURL:     "https://pay.example/inv-1",
				PaymentID:      "inv-1",
				PaymentGateway: "cryptopay",
			},
			expected: Projection{
				DisplayStatus:   models.OrderPending,
				StatusMessage:   "awaiting payment",
				IsExpired:       false,
				CanPay:          true,
				CanCheckPayment: true,
			},
		},
		{
			name: "pending past deadline is derived-expired, visible but not payable",
			order: models.Order{
				ID:             "ord-2",
				Status:         models.OrderPending,
				Deadline:       ts("2024-01-01T00:00:00Z"),
				PaymentURL:     "https://pay.example/inv-2",
				PaymentID:      "inv-2",
				PaymentGateway: "cryptopay",
			},
			expected: Projection{
				DisplayStatus:   models.OrderExpired,
				StatusMessage:   "payment window elapsed",
				IsExpired:       true,
				CanPay:          false,
				CanCheckPayment: true,
			},
		},
		{
			name: "pending without payment url cannot pay",
			order: models.Order{
				ID:       "ord-3",
				Status:   models.OrderPending,
				Deadline: ts("2024-06-02T00:00:00Z"),
			},
			expected: Projection{
				DisplayStatus: models.OrderPending,
				StatusMessage: "awaiting payment",
			},
		},
		{
			name: "unverifiable gateway cannot check payment",
			order: models.Order{
				ID:             "ord-4",
				Status:         models.OrderPending,
				PaymentURL:     "https://pay.example/inv-4",
				PaymentID:      "inv-4",
				PaymentGateway: "banktransfer",
			},
			expected: Projection{
				DisplayStatus: models.OrderPending,
				StatusMessage: "awaiting payment",
				CanPay:        true,
			},
		},
		{
			name: "prepaid is distinct from pending",
			order: models.Order{
				ID:     "ord-5",
				Status: models.OrderPrepaid,
			},
			expected: Projection{
				DisplayStatus: models.OrderPrepaid,
				StatusMessage: "payment received, fulfillment pending",
			},
		},
		{
			name: "cancelled never exposes pay action",
			order: models.Order{
				ID:         "ord-6",
				Status:     models.OrderCancelled,
				PaymentURL: "https://pay.example/inv-6",
			},
			expected: Projection{
				DisplayStatus: models.OrderCancelled,
				StatusMessage: "cancelled",
			},
		},
		{
			name: "delivered order with no deadline",
			order: models.Order{
				ID:     "ord-7",
				Status: models.OrderDelivered,
			},
			expected: Projection{
				DisplayStatus: models.OrderDelivered,
				StatusMessage: "delivered",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.order, now)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestProjectIsPure(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	order := models.Order{
		ID:             "ord-1",
		Status:         models.OrderPending,
		Deadline:       ts("2024-01-01T00:00:00Z"),
		PaymentID:      "inv-1",
		PaymentGateway: "cryptopay",
	}

	first := Project(order, now)
	second := Project(order, now)
	require.Equal(t, first, second)
}

func TestProjectDeadlineBoundary(t *testing.T) {
	deadline := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	order := models.Order{
		ID:       "ord-1",
		Status:   models.OrderPending,
		Deadline: &deadline,
	}

	// exactly at the deadline the order is still live
	assert.False(t, Project(order, deadline).IsExpired)
	assert.True(t, Project(order, deadline.Add(time.Second)).IsExpired)
}
