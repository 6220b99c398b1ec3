package models

import "time"

// OrderStatus is the server-owned raw order status. Clients never set it,
// they only derive presentational state from it.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPrepaid   OrderStatus = "prepaid"
	OrderPaid      OrderStatus = "paid"
	OrderPartial   OrderStatus = "partial"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
	OrderExpired   OrderStatus = "expired"
	OrderFailed    OrderStatus = "failed"
)

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "PENDING"
	WithdrawalProcessing WithdrawalStatus = "PROCESSING"
	WithdrawalCompleted  WithdrawalStatus = "COMPLETED"
	WithdrawalRejected   WithdrawalStatus = "REJECTED"
)

type TicketStatus string

const (
	TicketOpen     TicketStatus = "OPEN"
	TicketApproved TicketStatus = "APPROVED"
	TicketRejected TicketStatus = "REJECTED"
	TicketClosed   TicketStatus = "CLOSED"
)

type IssueType string

const (
	IssueReplacement IssueType = "replacement"
	IssueRefund      IssueType = "refund"
	IssueTechnical   IssueType = "technical_issue"
	IssueGeneral     IssueType = "general"
)

type OrderItem struct {
	ID               string `json:"id"`
	ProductName      string `json:"product_name"`
	CanRequestRefund bool   `json:"can_request_refund"`
}

type Order struct {
	ID             string      `json:"id"`
	UserID         int         `json:"user_id"`
	Status         OrderStatus `json:"status"`
	Total          float64     `json:"total"`
	Currency       string      `json:"currency"`
	PaymentGateway string      `json:"payment_gateway,omitempty"`
	PaymentID      string      `json:"payment_id,omitempty"`
	PaymentURL     string      `json:"payment_url,omitempty"`
	Deadline       *time.Time  `json:"deadline,omitempty"`
	Items          []OrderItem `json:"items"`
	CreatedAt      time.Time   `json:"created_at"`
}

type WithdrawalRequest struct {
	ID              string           `json:"id"`
	UserID          int              `json:"user_id"`
	Amount          float64          `json:"amount"`
	BalanceCurrency string           `json:"balance_currency"`
	AmountToPay     float64          `json:"amount_to_pay"`
	Status          WithdrawalStatus `json:"status"`
	PaymentDetails  string           `json:"payment_details"`
	AdminComment    string           `json:"admin_comment,omitempty"`
	ProcessedAt     *time.Time       `json:"processed_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// WithdrawalPreview is ephemeral: recomputed on every amount change and
// never persisted. AmountRequested ties the figures back to the amount
// they were computed for.
type WithdrawalPreview struct {
	AmountRequested float64 `json:"amount_requested"`
	AmountGross     float64 `json:"amount_gross"`
	NetworkFee      float64 `json:"network_fee"`
	AmountNet       float64 `json:"amount_net"`
	CanWithdraw     bool    `json:"can_withdraw"`
}

type SupportTicket struct {
	ID           string       `json:"id"`
	UserID       int          `json:"user_id"`
	Status       TicketStatus `json:"status"`
	IssueType    IssueType    `json:"issue_type"`
	Message      string       `json:"message"`
	Credentials  string       `json:"credentials,omitempty"`
	OrderID      string       `json:"order_id,omitempty"`
	ItemID       string       `json:"item_id,omitempty"`
	AdminComment string       `json:"admin_comment,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

type Balance struct {
	Current  float64 `json:"current"`
	Currency string  `json:"currency"`
}

type User struct {
	ID       int    `json:"id"`
	Login    string `json:"login"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type Withdraw struct {
	Amount         float64 `json:"amount"`
	Method         string  `json:"method"`
	PaymentDetails string  `json:"payment_details"`
}
