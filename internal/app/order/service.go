package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

// maxOrderIDAttempts bounds regeneration when a random order id collides.
const maxOrderIDAttempts = 5

type Service struct {
	repo       interfaces.OrderRepository
	menu       interfaces.MenuRepository
	publisher  interfaces.MessagePublisher
	logger     logger.Logger
	newOrderID func(time.Time) (string, error)
}

func NewService(repo interfaces.OrderRepository, menu interfaces.MenuRepository, publisher interfaces.MessagePublisher, logger logger.Logger) *Service {
	return &Service{
		repo:       repo,
		menu:       menu,
		publisher:  publisher,
		logger:     logger,
		newOrderID: domain.GenerateOrderID,
	}
}

func (s *Service) CreateOrder(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
	reqID := logger.RequestID(ctx)

	// 1. Преобразование команд в доменные модели
	items := make([]domain.OrderItem, len(cmd.Items))
	ids := make([]int64, len(cmd.Items))
	for i, item := range cmd.Items {
		items[i] = domain.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		}
		ids[i] = item.MenuItemID
	}

	customer := domain.Customer{
		Name:                cmd.CustomerName,
		TableNumber:         cmd.TableNumber,
		PhoneNumber:         cmd.PhoneNumber,
		Email:               cmd.Email,
		SpecialInstructions: cmd.SpecialInstructions,
	}

	// 2. Валидация до любых расчетов
	order, err := domain.NewOrder(customer, domain.PaymentMethod(cmd.PaymentMethod), items)
	if err != nil {
		s.logger.Debug("validation_failed", "Order validation failed", reqID, map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	// 3. Цены берутся из меню в момент заказа
	menu, err := s.menu.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve menu items: %w", err)
	}
	if err := order.PriceFrom(menu); err != nil {
		s.logger.Debug("pricing_failed", "Order references unknown or unavailable menu items", reqID, map[string]interface{}{"menu_item_ids": ids})
		return nil, err
	}

	// 4. Сохранение заказа и позиций одной транзакцией
	if err := s.persist(ctx, order); err != nil {
		s.logger.Error("db_transaction_failed", "Failed to create order", reqID, nil, err)
		return nil, err
	}

	s.logger.Info("order_created", "Order created", reqID, map[string]interface{}{
		"order_id":     order.OrderID,
		"total_amount": order.TotalAmount.StringFixed(2),
	})

	// 5. Публикация события; ошибка брокера не отменяет заказ
	msg := interfaces.OrderMessage{
		OrderID:       order.OrderID,
		CustomerName:  order.CustomerName,
		TableNumber:   order.TableNumber,
		PaymentMethod: order.PaymentMethod,
		ItemCount:     len(order.Items),
		TotalAmount:   order.TotalAmount.StringFixed(2),
		Status:        order.Status,
		Timestamp:     order.CreatedAt,
	}
	if err := s.publisher.PublishOrderCreated(ctx, msg); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish order", reqID, map[string]interface{}{"order_id": order.OrderID}, err)
	}

	return order, nil
}

// persist assigns a fresh order id and retries while it collides.
func (s *Service) persist(ctx context.Context, order *domain.Order) error {
	for attempt := 1; ; attempt++ {
		id, err := s.newOrderID(order.CreatedAt)
		if err != nil {
			return err
		}
		order.OrderID = id

		err = s.repo.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateOrderID) || attempt == maxOrderIDAttempts {
			return err
		}

		s.logger.Debug("order_id_collision", "Generated order id already exists, retrying", logger.RequestID(ctx), map[string]interface{}{
			"order_id": id,
			"attempt":  attempt,
		})
	}
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.FindByOrderID(ctx, orderID)
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx, interfaces.OrderFilter{})
}

func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return err
	}

	s.logger.Info("order_deleted", "Order deleted", logger.RequestID(ctx), map[string]interface{}{"order_id": orderID})
	return nil
}
