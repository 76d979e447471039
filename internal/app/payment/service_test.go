package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/YelzhanWeb/restaurant/internal/apptest"
	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
	"github.com/shopspring/decimal"
)

type fixture struct {
	store *apptest.Store
	pub   *apptest.Publisher
	svc   *Service
	order *domain.Order
}

// The seeded order costs 200 + 10 tax + 50 delivery = 260.
func newFixture() *fixture {
	store := apptest.NewStore()
	pub := &apptest.Publisher{}
	id := store.AddMenuItem("Plov", domain.CategoryMainCourse, "200", true)
	return &fixture{
		store: store,
		pub:   pub,
		svc:   NewService(store.Payments(), pub, apptest.Logger()),
		order: store.AddOrder(id),
	}
}

func (f *fixture) pay(txID, amount string) (*interfaces.PaymentResult, error) {
	return f.svc.ProcessPayment(context.Background(), interfaces.ProcessPaymentCommand{
		OrderID:       f.order.OrderID,
		TransactionID: txID,
		PaymentMethod: "card",
		Amount:        decimal.RequireFromString(amount),
	})
}

func TestProcessPayment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.pay("TX-1", "260.00")
	if err != nil {
		t.Fatalf("ProcessPayment() error = %v", err)
	}
	if result.Replayed {
		t.Errorf("first payment marked as replay")
	}
	if result.Payment.Status != domain.PaymentStatusCompleted || result.Payment.OrderNumber != f.order.OrderID {
		t.Errorf("payment = %+v", result.Payment)
	}

	order, err := f.store.Orders().FindByOrderID(ctx, f.order.OrderID)
	if err != nil {
		t.Fatal(err)
	}
	if order.Status != domain.StatusConfirmed || order.PaymentStatus != domain.PaymentStatusCompleted {
		t.Errorf("order state = %s/%s, want confirmed/completed", order.Status, order.PaymentStatus)
	}

	byOrder, err := f.svc.PaymentByOrder(ctx, f.order.OrderID)
	if err != nil || byOrder.ID != result.Payment.ID {
		t.Errorf("PaymentByOrder() = %+v, %v", byOrder, err)
	}
	if _, err := f.svc.GetPayment(ctx, result.Payment.ID); err != nil {
		t.Errorf("GetPayment() error = %v", err)
	}

	if len(f.pub.Payments) != 1 || f.pub.Payments[0].Amount != "260.00" {
		t.Errorf("published payments = %+v", f.pub.Payments)
	}
	if len(f.pub.Statuses) != 1 || f.pub.Statuses[0].NewStatus != domain.StatusConfirmed {
		t.Errorf("published statuses = %+v", f.pub.Statuses)
	}

	history, err := f.store.Orders().StatusHistory(ctx, f.order.OrderID)
	if err != nil {
		t.Fatal(err)
	}
	last := history[len(history)-1]
	if last.Status != domain.StatusConfirmed || last.ChangedBy != "payment" {
		t.Errorf("last history entry = %+v, want confirmed by payment", last)
	}
}

func TestProcessPayment_Replay(t *testing.T) {
	f := newFixture()

	first, err := f.pay("TX-1", "260")
	if err != nil {
		t.Fatal(err)
	}
	again, err := f.pay("TX-1", "260.00")
	if err != nil {
		t.Fatalf("replay error = %v", err)
	}
	if !again.Replayed || again.Payment.ID != first.Payment.ID {
		t.Errorf("replay = %+v, want stored payment %d", again, first.Payment.ID)
	}

	payments, _ := f.svc.ListPayments(context.Background())
	if len(payments) != 1 {
		t.Errorf("stored %d payments, want 1", len(payments))
	}
	if len(f.pub.Payments) != 1 {
		t.Errorf("replay was published again")
	}

	if _, err := f.pay("TX-1", "100"); !errors.Is(err, domain.ErrDuplicateTransaction) {
		t.Errorf("reused transaction with other amount error = %v", err)
	}
	if _, err := f.pay("TX-2", "260"); !errors.Is(err, domain.ErrOrderAlreadyPaid) {
		t.Errorf("second payment error = %v, want ErrOrderAlreadyPaid", err)
	}
}

func TestProcessPayment_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		orderID string
		txID    string
		amount  string
		wantErr func(error) bool
	}{
		{name: "amount below total", txID: "TX-1", amount: "259.99", wantErr: domain.IsValidation},
		{name: "amount above total", txID: "TX-1", amount: "300", wantErr: domain.IsValidation},
		{name: "zero amount", txID: "TX-1", amount: "0", wantErr: domain.IsValidation},
		{name: "missing transaction", txID: "", amount: "260", wantErr: domain.IsValidation},
		{
			name:    "unknown order",
			orderID: "ORD-20240101-ABCDEF",
			txID:    "TX-1",
			amount:  "260",
			wantErr: func(err error) bool { return errors.Is(err, domain.ErrOrderNotFound) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			cmd := interfaces.ProcessPaymentCommand{
				OrderID:       f.order.OrderID,
				TransactionID: tt.txID,
				PaymentMethod: "card",
				Amount:        decimal.RequireFromString(tt.amount),
			}
			if tt.orderID != "" {
				cmd.OrderID = tt.orderID
			}

			if _, err := f.svc.ProcessPayment(context.Background(), cmd); !tt.wantErr(err) {
				t.Errorf("ProcessPayment() error = %v", err)
			}

			order, _ := f.store.Orders().FindByOrderID(context.Background(), f.order.OrderID)
			if order.PaymentStatus != domain.PaymentStatusPending || order.Status != domain.StatusPending {
				t.Errorf("rejected payment changed order to %s/%s", order.Status, order.PaymentStatus)
			}
			if payments, _ := f.svc.ListPayments(context.Background()); len(payments) != 0 {
				t.Errorf("rejected payment was stored")
			}
		})
	}
}

func TestProcessPayment_CancelledOrder(t *testing.T) {
	f := newFixture()
	_, err := f.store.Orders().Mutate(context.Background(), f.order.OrderID, func(o *domain.Order) error {
		return o.TransitionTo(domain.StatusCancelled)
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.pay("TX-1", "260"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("ProcessPayment(cancelled) error = %v, want conflict", err)
	}
}

func TestProcessPayment_OrderAlreadyInService(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, next := range []domain.Status{domain.StatusConfirmed, domain.StatusPreparing} {
		_, err := f.store.Orders().Mutate(ctx, f.order.OrderID, func(o *domain.Order) error {
			return o.TransitionTo(next)
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	result, err := f.pay("TX-COD", "260.00")
	if err != nil {
		t.Fatalf("ProcessPayment(preparing) error = %v", err)
	}
	if result.Payment.Status != domain.PaymentStatusCompleted {
		t.Errorf("payment status = %s, want completed", result.Payment.Status)
	}

	order, err := f.store.Orders().FindByOrderID(ctx, f.order.OrderID)
	if err != nil {
		t.Fatal(err)
	}
	if order.Status != domain.StatusPreparing || order.PaymentStatus != domain.PaymentStatusCompleted {
		t.Errorf("order state = %s/%s, want preparing/completed", order.Status, order.PaymentStatus)
	}
	if len(f.pub.Payments) != 1 {
		t.Errorf("published %d payment events, want 1", len(f.pub.Payments))
	}
	if len(f.pub.Statuses) != 0 {
		t.Errorf("published status change for unchanged status: %+v", f.pub.Statuses)
	}
}
