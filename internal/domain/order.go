package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Order is a placed customer order. Money fields are snapshots taken at
// creation and never recomputed.
type Order struct {
	ID                  int64
	OrderID             string
	CustomerName        string
	TableNumber         int
	PhoneNumber         string
	Email               string
	PaymentMethod       PaymentMethod
	SpecialInstructions string
	Subtotal            decimal.Decimal
	Tax                 decimal.Decimal
	DeliveryCharge      decimal.Decimal
	TotalAmount         decimal.Decimal
	Status              Status
	PaymentStatus       PaymentStatus
	Items               []OrderItem
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OrderItem is one line of an order. Price is the menu price at order time.
type OrderItem struct {
	ID         int64
	OrderID    int64
	MenuItemID int64
	MenuItem   *MenuItem
	Quantity   int
	Price      decimal.Decimal
	CreatedAt  time.Time
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// StatusLog is one entry of an order's lifecycle history.
type StatusLog struct {
	ID        int64
	OrderID   int64
	Status    Status
	ChangedBy string
	ChangedAt time.Time
}

// Customer holds the identity fields supplied with a new order.
type Customer struct {
	Name                string
	TableNumber         int
	PhoneNumber         string
	Email               string
	SpecialInstructions string
}

// NewOrder validates the customer input and sets the initial lifecycle state.
// Totals stay zero until PriceFrom resolves the menu; the caller assigns
// OrderID before persisting.
func NewOrder(customer Customer, method PaymentMethod, items []OrderItem) (*Order, error) {
	now := time.Now()
	order := &Order{
		CustomerName:        strings.TrimSpace(customer.Name),
		TableNumber:         customer.TableNumber,
		PhoneNumber:         strings.TrimSpace(customer.PhoneNumber),
		Email:               strings.TrimSpace(customer.Email),
		PaymentMethod:       method,
		SpecialInstructions: strings.TrimSpace(customer.SpecialInstructions),
		Items:               items,
		Status:              StatusPending,
		PaymentStatus:       PaymentStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate applies the placement rules.
func (o *Order) Validate() error {
	var errs ValidationErrors

	if o.CustomerName == "" {
		errs.Add("customer_name", "customer name is required")
	} else if len(o.CustomerName) > 100 {
		errs.Add("customer_name", "customer name must not exceed 100 characters")
	}

	if o.TableNumber < 1 {
		errs.Add("table_number", "table number must be a positive integer")
	}

	if o.PhoneNumber == "" {
		errs.Add("phone_number", "phone number is required")
	} else if len(o.PhoneNumber) > 15 {
		errs.Add("phone_number", "phone number must not exceed 15 characters")
	}

	if o.Email != "" {
		if _, err := mail.ParseAddress(o.Email); err != nil {
			errs.Add("email", "enter a valid email address")
		}
	}

	if !o.PaymentMethod.Valid() {
		errs.Add("payment_method", "payment method must be one of: online, cod")
	}

	if len(o.Items) == 0 {
		errs.Add("items", "order must contain at least 1 item")
	}

	for i, item := range o.Items {
		if item.MenuItemID < 1 {
			errs.Add(fmt.Sprintf("items[%d].menu_item_id", i), "menu item id is required")
		}
		if item.Quantity < 1 {
			errs.Add(fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1")
		}
	}

	return errs.Err()
}

// PriceFrom snapshots each line's price from menu and computes the totals.
// Any unresolved menu item fails the whole order. Availability only filters
// menu listings; it does not block ordering.
func (o *Order) PriceFrom(menu map[int64]*MenuItem) error {
	for i := range o.Items {
		item, ok := menu[o.Items[i].MenuItemID]
		if !ok {
			return ErrMenuItemNotFound
		}
		o.Items[i].MenuItem = item
		o.Items[i].Price = item.Price
	}

	o.ApplyTotals(CalculateTotals(o.Items))
	return nil
}

func (o *Order) ApplyTotals(t Totals) {
	o.Subtotal = t.Subtotal
	o.Tax = t.Tax
	o.DeliveryCharge = t.DeliveryCharge
	o.TotalAmount = t.Total
}

// TransitionTo moves the order along the lifecycle graph.
func (o *Order) TransitionTo(newStatus Status) error {
	if !o.CanTransitionTo(newStatus) {
		return ErrInvalidStatusTransition
	}

	o.Status = newStatus
	o.UpdatedAt = time.Now()
	return nil
}

// CanTransitionTo checks if the order can transition to the new status
func (o *Order) CanTransitionTo(newStatus Status) bool {
	for _, s := range validTransitions[o.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// ConfirmPayment marks the order paid. The amount must match the order total
// exactly. A pending order moves to confirmed; an order staff already moved on
// keeps its status, and a cancelled order cannot be paid.
func (o *Order) ConfirmPayment(amount decimal.Decimal) error {
	if o.PaymentStatus == PaymentStatusCompleted {
		return ErrOrderAlreadyPaid
	}
	if o.Status == StatusCancelled {
		return ErrInvalidStatusTransition
	}
	if !amount.Equal(o.TotalAmount) {
		return ErrPaymentAmountMismatch(o.TotalAmount)
	}
	if o.Status == StatusPending {
		if err := o.TransitionTo(StatusConfirmed); err != nil {
			return err
		}
	}

	o.PaymentStatus = PaymentStatusCompleted
	o.UpdatedAt = time.Now()
	return nil
}

// ErrPaymentAmountMismatch reports a payment that does not cover the order total.
func ErrPaymentAmountMismatch(expected decimal.Decimal) error {
	return NewValidationError("amount", fmt.Sprintf("amount must equal the order total %s", expected.StringFixed(2)))
}

// GenerateOrderID returns ORD-YYYYMMDD-XXXXXX with the UTC date of now and six
// random upper-case hex characters.
func GenerateOrderID(now time.Time) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate order id: %w", err)
	}

	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix), nil
}
