package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

const orderColumns = `id, order_id, customer_name, table_number, phone_number, email, payment_method,
	special_instructions, subtotal, tax, delivery_charge, total_amount, status, payment_status,
	created_at, updated_at`

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

// querier is satisfied by both DB and Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
}

func scanOrder(row Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.OrderID, &o.CustomerName, &o.TableNumber, &o.PhoneNumber, &o.Email, &o.PaymentMethod,
		&o.SpecialInstructions, &o.Subtotal, &o.Tax, &o.DeliveryCharge, &o.TotalAmount, &o.Status, &o.PaymentStatus,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (order_id, customer_name, table_number, phone_number, email, payment_method,
		                    special_instructions, subtotal, tax, delivery_charge, total_amount,
		                    status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		order.OrderID, order.CustomerName, order.TableNumber, order.PhoneNumber, order.Email, order.PaymentMethod,
		order.SpecialInstructions, order.Subtotal, order.Tax, order.DeliveryCharge, order.TotalAmount,
		order.Status, order.PaymentStatus, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if isUniqueViolation(err, constraintOrderID) {
		return domain.ErrDuplicateOrderID
	}
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		itemQuery := `
			INSERT INTO order_items (order_id, menu_item_id, quantity, price, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		item := &order.Items[i]
		item.CreatedAt = order.CreatedAt
		err = tx.QueryRow(ctx, itemQuery, order.ID, item.MenuItemID, item.Quantity, item.Price, item.CreatedAt).Scan(&item.ID)
		if isForeignKeyViolation(err, constraintItemMenu) {
			return domain.ErrMenuItemNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
		item.OrderID = order.ID
	}

	if err := logStatus(ctx, tx, order.ID, order.Status, interfaces.Actor(ctx)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID))
	if isNoRows(err) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if err := loadItems(ctx, r.db, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, filter interfaces.OrderFilter) ([]*domain.Order, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		where = append(where, fmt.Sprintf("created_at < $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := loadItems(ctx, r.db, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems fills Items for every order with one query.
func loadItems(ctx context.Context, q querier, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Order, len(orders))
	ids := make([]int64, len(orders))
	for i, o := range orders {
		byID[o.ID] = o
		ids[i] = o.ID
	}

	query := `
		SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.price, oi.created_at,
		       m.name, m.description, m.category, m.price, m.is_available
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var menu domain.MenuItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.Price, &item.CreatedAt,
			&menu.Name, &menu.Description, &menu.Category, &menu.Price, &menu.IsAvailable)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		menu.ID = item.MenuItemID
		item.MenuItem = &menu

		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *orderRepository) Mutate(ctx context.Context, orderID string, fn interfaces.OrderMutation) (*domain.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	before := order.Status
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := saveOrderState(ctx, tx, order, before); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order update: %w", err)
	}
	return order, nil
}

// lockOrder loads the order and its items, holding a row lock until the
// transaction ends.
func lockOrder(ctx context.Context, tx Tx, orderID string) (*domain.Order, error) {
	order, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1 FOR UPDATE`, orderID))
	if isNoRows(err) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	if err := loadItems(ctx, tx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// saveOrderState persists the mutable lifecycle fields and logs a status change.
func saveOrderState(ctx context.Context, tx Tx, order *domain.Order, before domain.Status) error {
	order.UpdatedAt = time.Now()
	_, err := tx.Exec(ctx, `UPDATE orders SET status = $1, payment_status = $2, updated_at = $3 WHERE id = $4`,
		order.Status, order.PaymentStatus, order.UpdatedAt, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if order.Status != before {
		return logStatus(ctx, tx, order.ID, order.Status, interfaces.Actor(ctx))
	}
	return nil
}

func logStatus(ctx context.Context, q querier, orderID int64, status domain.Status, changedBy string) error {
	query := `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := q.Exec(ctx, query, orderID, status, changedBy, time.Now()); err != nil {
		return fmt.Errorf("failed to log status: %w", err)
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, orderID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) StatusHistory(ctx context.Context, orderID string) ([]*domain.StatusLog, error) {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT id FROM orders WHERE order_id = $1`, orderID).Scan(&id)
	if isNoRows(err) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	query := `
		SELECT id, order_id, status, changed_by, changed_at
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	var logs []*domain.StatusLog
	for rows.Next() {
		var entry domain.StatusLog
		if err := rows.Scan(&entry.ID, &entry.OrderID, &entry.Status, &entry.ChangedBy, &entry.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status log: %w", err)
		}
		logs = append(logs, &entry)
	}
	return logs, rows.Err()
}
