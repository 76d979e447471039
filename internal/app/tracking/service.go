package tracking

import (
	"context"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

type Service struct {
	orderRepo interfaces.OrderRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
}

func NewService(orderRepo interfaces.OrderRepository, publisher interfaces.MessagePublisher, logger logger.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) TrackOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orderRepo.FindByOrderID(ctx, orderID)
}

func (s *Service) History(ctx context.Context, orderID string) ([]*domain.StatusLog, error) {
	return s.orderRepo.StatusHistory(ctx, orderID)
}

// UpdateStatus moves an order along the lifecycle graph and notifies
// subscribers. Unknown statuses are validation errors, disallowed moves are
// conflicts.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*interfaces.StatusChange, error) {
	reqID := logger.RequestID(ctx)

	// 1. Проверка статуса до обращения к БД
	newStatus, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	// 2. Переход под блокировкой строки заказа
	var oldStatus domain.Status
	order, err := s.orderRepo.Mutate(ctx, orderID, func(o *domain.Order) error {
		oldStatus = o.Status
		return o.TransitionTo(newStatus)
	})
	if err != nil {
		s.logger.Debug("status_update_rejected", "Status update rejected", reqID, map[string]interface{}{
			"order_id":   orderID,
			"new_status": newStatus,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("order_status_updated", "Order status updated", reqID, map[string]interface{}{
		"order_id":   order.OrderID,
		"old_status": oldStatus,
		"new_status": order.Status,
	})

	// 3. Уведомление; ошибка брокера не отменяет переход
	msg := interfaces.StatusUpdateMessage{
		OrderID:   order.OrderID,
		OldStatus: oldStatus,
		NewStatus: order.Status,
		ChangedBy: interfaces.Actor(ctx),
		Timestamp: time.Now(),
	}
	if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish status update", reqID, map[string]interface{}{"order_id": order.OrderID}, err)
	}

	return &interfaces.StatusChange{
		OrderID:   order.OrderID,
		OldStatus: oldStatus,
		NewStatus: order.Status,
	}, nil
}
