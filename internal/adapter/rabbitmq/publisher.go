package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/interfaces"
	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher struct {
	conn     Connection
	exchange string
}

// NewPublisher sends every event to one durable topic exchange, keyed by
// event type.
func NewPublisher(conn Connection, exchange string) interfaces.MessagePublisher {
	return &publisher{conn: conn, exchange: exchange}
}

func (p *publisher) PublishOrderCreated(ctx context.Context, msg interfaces.OrderMessage) error {
	return p.publish(ctx, interfaces.RoutingOrderCreated, msg)
}

func (p *publisher) PublishStatusUpdate(ctx context.Context, msg interfaces.StatusUpdateMessage) error {
	return p.publish(ctx, interfaces.RoutingOrderStatusChanged, msg)
}

func (p *publisher) PublishPayment(ctx context.Context, msg interfaces.PaymentMessage) error {
	return p.publish(ctx, interfaces.RoutingPaymentCompleted, msg)
}

func (p *publisher) publish(ctx context.Context, routingKey string, msg any) error {
	// Брокер перезапускался: переподключаемся перед отправкой
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to publish %s: %w", routingKey, err)
		}
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := declareExchange(ch, p.exchange); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	return nil
}

func declareExchange(ch Channel, name string) error {
	if err := ch.ExchangeDeclare(name, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	return nil
}

// NopPublisher drops every event. It is used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(context.Context, interfaces.OrderMessage) error { return nil }
func (NopPublisher) PublishStatusUpdate(context.Context, interfaces.StatusUpdateMessage) error { return nil }
func (NopPublisher) PublishPayment(context.Context, interfaces.PaymentMessage) error { return nil }
