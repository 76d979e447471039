package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

// NotificationHandler prints a one-line summary of every restaurant event.
type NotificationHandler struct {
	logger logger.Logger
	out    io.Writer
}

func NewNotificationHandler(logger logger.Logger, out io.Writer) *NotificationHandler {
	return &NotificationHandler{
		logger: logger,
		out:    out,
	}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, routingKey string, body []byte) error {
	line, orderID, err := describe(routingKey, body)
	if err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse notification", "", map[string]interface{}{"routing_key": routingKey}, err)
		return err
	}

	h.logger.Debug("notification_received", fmt.Sprintf("Received %s for order %s", routingKey, orderID), orderID, map[string]interface{}{
		"order_id":    orderID,
		"routing_key": routingKey,
	})

	_, err = fmt.Fprintln(h.out, line)
	return err
}

func describe(routingKey string, body []byte) (line, orderID string, err error) {
	switch routingKey {
	case interfaces.RoutingOrderCreated:
		var msg interfaces.OrderMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return "", "", err
		}
		return fmt.Sprintf("New order %s for %s at table %d: %d item(s), total %s (%s)",
			msg.OrderID, msg.CustomerName, msg.TableNumber, msg.ItemCount, msg.TotalAmount, msg.PaymentMethod), msg.OrderID, nil

	case interfaces.RoutingOrderStatusChanged:
		var msg interfaces.StatusUpdateMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return "", "", err
		}
		return fmt.Sprintf("Notification for order %s: Status changed from '%s' to '%s' by %s",
			msg.OrderID, msg.OldStatus, msg.NewStatus, msg.ChangedBy), msg.OrderID, nil

	case interfaces.RoutingPaymentCompleted:
		var msg interfaces.PaymentMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return "", "", err
		}
		return fmt.Sprintf("Payment %s received for order %s: %s via %s",
			msg.TransactionID, msg.OrderID, msg.Amount, msg.PaymentMethod), msg.OrderID, nil
	}

	return "", "", fmt.Errorf("unknown routing key %q", routingKey)
}
