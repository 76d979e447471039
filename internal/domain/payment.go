package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Payment records money received for an order.
type Payment struct {
	ID            int64
	OrderID       int64
	OrderNumber   string
	TransactionID string
	PaymentMethod string
	Amount        decimal.Decimal
	Status        PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPayment builds a completed payment for order.
func NewPayment(order *Order, transactionID, method string, amount decimal.Decimal) (*Payment, error) {
	now := time.Now()
	p := &Payment{
		OrderID:       order.ID,
		OrderNumber:   order.OrderID,
		TransactionID: strings.TrimSpace(transactionID),
		PaymentMethod: strings.TrimSpace(method),
		Amount:        amount,
		Status:        PaymentStatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := ValidatePaymentFields(p.TransactionID, p.PaymentMethod, amount); err != nil {
		return nil, err
	}
	return p, nil
}

// ValidatePaymentFields checks the caller-supplied payment details.
func ValidatePaymentFields(transactionID, method string, amount decimal.Decimal) error {
	var errs ValidationErrors

	if transactionID == "" {
		errs.Add("transaction_id", "transaction id is required")
	} else if len(transactionID) > 100 {
		errs.Add("transaction_id", "transaction id must not exceed 100 characters")
	}

	if method == "" {
		errs.Add("payment_method", "payment method is required")
	} else if len(method) > 20 {
		errs.Add("payment_method", "payment method must not exceed 20 characters")
	}

	if !amount.IsPositive() {
		errs.Add("amount", "amount must be greater than 0")
	} else if !amount.Equal(amount.Truncate(2)) {
		errs.Add("amount", "amount must have at most 2 decimal places")
	}

	return errs.Err()
}
