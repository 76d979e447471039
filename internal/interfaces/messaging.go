package interfaces

import (
	"context"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/domain"
)

// Routing keys on the events exchange.
const (
	RoutingOrderCreated       = "order.created"
	RoutingOrderStatusChanged = "order.status_changed"
	RoutingPaymentCompleted   = "payment.completed"
)

// Сообщения RabbitMQ
type OrderMessage struct {
	OrderID       string               `json:"order_id"`
	CustomerName  string               `json:"customer_name"`
	TableNumber   int                  `json:"table_number"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	ItemCount     int                  `json:"item_count"`
	TotalAmount   string               `json:"total_amount"`
	Status        domain.Status        `json:"status"`
	Timestamp     time.Time            `json:"timestamp"`
}

type StatusUpdateMessage struct {
	OrderID   string        `json:"order_id"`
	OldStatus domain.Status `json:"old_status"`
	NewStatus domain.Status `json:"new_status"`
	ChangedBy string        `json:"changed_by"`
	Timestamp time.Time     `json:"timestamp"`
}

type PaymentMessage struct {
	OrderID       string    `json:"order_id"`
	TransactionID string    `json:"transaction_id"`
	PaymentMethod string    `json:"payment_method"`
	Amount        string    `json:"amount"`
	Timestamp     time.Time `json:"timestamp"`
}

// Интерфейсы Messaging (Adapter/RabbitMQ)
type MessagePublisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderMessage) error
	PublishStatusUpdate(ctx context.Context, msg StatusUpdateMessage) error
	PublishPayment(ctx context.Context, msg PaymentMessage) error
}

type MessageConsumer interface {
	ConsumeNotifications(ctx context.Context, handler NotificationHandler) error
}

type NotificationHandler func(ctx context.Context, routingKey string, body []byte) error
