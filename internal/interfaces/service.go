package interfaces

import (
	"context"

	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/shopspring/decimal"
)

// Команды для сервисов
type CreateMenuItemCommand struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	IsAvailable *bool
}

// UpdateMenuItemCommand carries only the fields being changed. A full
// replacement sets every field.
type UpdateMenuItemCommand struct {
	Name        *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
	IsAvailable *bool
}

type CreateOrderCommand struct {
	CustomerName        string
	TableNumber         int
	PhoneNumber         string
	Email               string
	PaymentMethod       string
	SpecialInstructions string
	Items               []CreateOrderItemCommand
}

type CreateOrderItemCommand struct {
	MenuItemID int64
	Quantity   int
}

type ProcessPaymentCommand struct {
	OrderID       string
	TransactionID string
	PaymentMethod string
	Amount        decimal.Decimal
}

type AdminOrdersQuery struct {
	Status string
	Date   string // YYYY-MM-DD in the reporting timezone
}

// Ответы сервисов
type StatusChange struct {
	OrderID   string
	OldStatus domain.Status
	NewStatus domain.Status
}

type PaymentResult struct {
	Payment *domain.Payment
	// Replayed is set when the transaction was already recorded and nothing changed.
	Replayed bool
}

type AuthResult struct {
	User   *domain.User
	Tokens domain.TokenPair
}

// Интерфейсы Сервисов (Business Logic)
type MenuService interface {
	CreateItem(ctx context.Context, cmd CreateMenuItemCommand) (*domain.MenuItem, error)
	GetItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	ListItems(ctx context.Context, filter MenuFilter) ([]*domain.MenuItem, error)
	ItemsByCategory(ctx context.Context) (map[domain.Category][]*domain.MenuItem, error)
	UpdateItem(ctx context.Context, id int64, cmd UpdateMenuItemCommand) (*domain.MenuItem, error)
	DeleteItem(ctx context.Context, id int64) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
}

type TrackingService interface {
	TrackOrder(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*StatusChange, error)
	History(ctx context.Context, orderID string) ([]*domain.StatusLog, error)
}

type PaymentService interface {
	ProcessPayment(ctx context.Context, cmd ProcessPaymentCommand) (*PaymentResult, error)
	GetPayment(ctx context.Context, id int64) (*domain.Payment, error)
	PaymentByOrder(ctx context.Context, orderID string) (*domain.Payment, error)
	ListPayments(ctx context.Context) ([]*domain.Payment, error)
}

type AdminService interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	Orders(ctx context.Context, query AdminOrdersQuery) ([]*domain.Order, error)
	MenuStats(ctx context.Context) (*domain.MenuStats, error)
}

type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Authenticate(ctx context.Context, accessToken string) (*domain.TokenClaims, error)
}

// TokenIssuer signs and verifies bearer tokens (Adapter/Token).
type TokenIssuer interface {
	IssuePair(user *domain.User) (domain.TokenPair, error)
	IssueAccess(user *domain.User) (string, error)
	Parse(raw string, kind domain.TokenKind) (*domain.TokenClaims, error)
}
