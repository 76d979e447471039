package interfaces

import (
	"context"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/shopspring/decimal"
)

// Интерфейсы Репозиториев (Adapter/Postgres)
type MenuRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	FindByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	// FindByIDs returns the items that exist; missing ids are simply absent from the map.
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.MenuItem, error)
	List(ctx context.Context, filter MenuFilter) ([]*domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id int64) error
}

type MenuFilter struct {
	Available *bool
	Category  *domain.Category
}

// OrderMutation changes a locked order inside the repository transaction.
// Returning an error rolls the transaction back.
type OrderMutation func(order *domain.Order) error

type OrderRepository interface {
	// Create writes the order and all of its items in one transaction.
	// A clash on order_id returns domain.ErrDuplicateOrderID.
	Create(ctx context.Context, order *domain.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	// List returns orders newest first.
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	// Mutate locks the order row, applies fn and persists status fields.
	// A status change is appended to the history under Actor(ctx).
	Mutate(ctx context.Context, orderID string, fn OrderMutation) (*domain.Order, error)
	Delete(ctx context.Context, orderID string) error
	// StatusHistory returns the lifecycle entries oldest first.
	StatusHistory(ctx context.Context, orderID string) ([]*domain.StatusLog, error)
}

type OrderFilter struct {
	Status      *domain.Status
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PaymentBuilder validates a locked order, moves it to its paid state and
// returns the payment to insert.
type PaymentBuilder func(order *domain.Order) (*domain.Payment, error)

type PaymentRepository interface {
	// Record inserts the payment and updates the order atomically.
	// A clash on transaction_id returns domain.ErrDuplicateTransaction.
	Record(ctx context.Context, orderID string, build PaymentBuilder) (*domain.Payment, *domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
	List(ctx context.Context) ([]*domain.Payment, error)
}

type ReportRepository interface {
	CountOrders(ctx context.Context, from, to *time.Time) (int, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	PopularItems(ctx context.Context, limit int) ([]domain.PopularItem, error)
	MenuStats(ctx context.Context) (*domain.MenuStats, error)
}

type UserRepository interface {
	// Create returns domain.ErrUsernameTaken when the username exists.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// HealthChecker is satisfied by the database pool.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
