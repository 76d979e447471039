package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

type consumer struct {
	conn           Connection
	exchange       string
	logger         logger.Logger
	reconnectDelay time.Duration
}

func NewConsumer(conn Connection, exchange string, logger logger.Logger) interfaces.MessageConsumer {
	return &consumer{
		conn:           conn,
		exchange:       exchange,
		logger:         logger,
		reconnectDelay: 5 * time.Second,
	}
}

// ConsumeNotifications receives every event on the exchange through a
// temporary exclusive queue until ctx is cancelled, reconnecting after broker
// failures.
func (c *consumer) ConsumeNotifications(ctx context.Context, handler interfaces.NotificationHandler) error {
	for {
		err := c.consumeNotifications(ctx, handler)

		// Контекст отменен: выходим
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		c.logger.Error("consumer_disconnected", fmt.Sprintf("Notifications consumer disconnected, reconnecting in %v", c.reconnectDelay), "", nil, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.reconnectDelay):
		}

		if c.conn.IsClosed() {
			if err := c.conn.Reconnect(); err != nil {
				c.logger.Error("rabbitmq_reconnect_failed", "Failed to reconnect to RabbitMQ", "", nil, err)
			}
		}
	}
}

func (c *consumer) consumeNotifications(ctx context.Context, handler interfaces.NotificationHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	// Отслеживаем закрытие канала
	closeChan := ch.NotifyClose()

	if err := declareExchange(ch, c.exchange); err != nil {
		return err
	}

	// Временная эксклюзивная очередь
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "#", c.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.Info("consumer_started", "Listening for notifications", "", map[string]interface{}{
		"exchange": c.exchange,
		"queue":    q.Name,
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return fmt.Errorf("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}

			// Ошибки обработки уведомлений не останавливают потребителя
			if err := handler(ctx, msg.RoutingKey, msg.Body); err != nil {
				c.logger.Error("notification_failed", "Failed to handle notification", "", map[string]interface{}{"routing_key": msg.RoutingKey}, err)
			}
		}
	}
}
