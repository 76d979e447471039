package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

const paymentSelect = `
	SELECT p.id, p.order_id, o.order_id, p.transaction_id, p.payment_method, p.amount, p.status, p.created_at, p.updated_at
	FROM payments p
	JOIN orders o ON o.id = p.order_id
`

type paymentRepository struct {
	db DB
}

func NewPaymentRepository(db DB) interfaces.PaymentRepository {
	return &paymentRepository{db: db}
}

func scanPayment(row Row) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.OrderNumber, &p.TransactionID, &p.PaymentMethod, &p.Amount, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Record locks the order, lets build decide the outcome, then writes the
// payment and the new order state in the same transaction.
func (r *paymentRepository) Record(ctx context.Context, orderID string, build interfaces.PaymentBuilder) (*domain.Payment, *domain.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// 1. Блокировка заказа
	order, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		return nil, nil, err
	}

	// 2. Доменная проверка и построение платежа
	before := order.Status
	payment, err := build(order)
	if err != nil {
		return nil, nil, err
	}

	// 3. Запись платежа
	query := `
		INSERT INTO payments (order_id, transaction_id, payment_method, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		order.ID, payment.TransactionID, payment.PaymentMethod, payment.Amount, payment.Status, payment.CreatedAt, payment.UpdatedAt,
	).Scan(&payment.ID)
	if isUniqueViolation(err, constraintTransactionID) {
		return nil, nil, domain.ErrDuplicateTransaction
	}
	if isUniqueViolation(err, constraintPaymentOrder) {
		return nil, nil, domain.ErrOrderAlreadyPaid
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	// 4. Обновление статуса заказа
	if err := saveOrderState(ctx, tx, order, before); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit payment: %w", err)
	}
	return payment, order, nil
}

func (r *paymentRepository) findOne(ctx context.Context, where string, arg any) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, paymentSelect+` WHERE `+where, arg))
	if isNoRows(err) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	return p, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.findOne(ctx, `p.id = $1`, id)
}

func (r *paymentRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	return r.findOne(ctx, `o.order_id = $1`, orderID)
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	return r.findOne(ctx, `p.transaction_id = $1`, transactionID)
}

func (r *paymentRepository) List(ctx context.Context) ([]*domain.Payment, error) {
	rows, err := r.db.Query(ctx, paymentSelect+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
