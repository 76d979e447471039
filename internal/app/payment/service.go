package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

// paymentActor is recorded as the author of the confirmation status change.
const paymentActor = "payment"

type Service struct {
	repo      interfaces.PaymentRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
}

func NewService(repo interfaces.PaymentRepository, publisher interfaces.MessagePublisher, logger logger.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ProcessPayment records a payment for an unpaid order and confirms it.
// Resubmitting the same transaction for the same order and amount returns the
// stored payment unchanged.
func (s *Service) ProcessPayment(ctx context.Context, cmd interfaces.ProcessPaymentCommand) (*interfaces.PaymentResult, error) {
	reqID := logger.RequestID(ctx)

	// 1. Валидация входных полей
	orderID := strings.TrimSpace(cmd.OrderID)
	txID := strings.TrimSpace(cmd.TransactionID)
	method := strings.TrimSpace(cmd.PaymentMethod)

	var errs domain.ValidationErrors
	if orderID == "" {
		errs.Add("order_id", "order id is required")
	}
	if err := domain.ValidatePaymentFields(txID, method, cmd.Amount); err != nil {
		var fieldErrs domain.ValidationErrors
		if errors.As(err, &fieldErrs) {
			errs = append(errs, fieldErrs...)
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	// 2. Повторная отправка той же транзакции
	if result, err := s.replay(ctx, orderID, txID, cmd); result != nil || err != nil {
		return result, err
	}

	// 3. Платеж и подтверждение заказа в одной транзакции
	var oldStatus domain.Status
	payment, order, err := s.repo.Record(interfaces.WithActor(ctx, paymentActor), orderID, func(o *domain.Order) (*domain.Payment, error) {
		oldStatus = o.Status
		if err := o.ConfirmPayment(cmd.Amount); err != nil {
			return nil, err
		}
		return domain.NewPayment(o, txID, method, cmd.Amount)
	})
	if errors.Is(err, domain.ErrDuplicateTransaction) {
		// Параллельный запрос с тем же transaction_id успел первым
		if result, rerr := s.replay(ctx, orderID, txID, cmd); result != nil || rerr != nil {
			return result, rerr
		}
	}
	if err != nil {
		s.logger.Debug("payment_rejected", "Payment rejected", reqID, map[string]interface{}{
			"order_id":       orderID,
			"transaction_id": txID,
			"error":          err.Error(),
		})
		return nil, err
	}

	s.logger.Info("payment_recorded", "Payment recorded", reqID, map[string]interface{}{
		"order_id":       order.OrderID,
		"transaction_id": payment.TransactionID,
		"amount":         payment.Amount.StringFixed(2),
	})

	// 4. События; ошибки брокера только логируются
	now := time.Now()
	if err := s.publisher.PublishPayment(ctx, interfaces.PaymentMessage{
		OrderID:       order.OrderID,
		TransactionID: payment.TransactionID,
		PaymentMethod: payment.PaymentMethod,
		Amount:        payment.Amount.StringFixed(2),
		Timestamp:     now,
	}); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish payment", reqID, map[string]interface{}{"order_id": order.OrderID}, err)
	}
	if order.Status == oldStatus {
		return &interfaces.PaymentResult{Payment: payment}, nil
	}
	if err := s.publisher.PublishStatusUpdate(ctx, interfaces.StatusUpdateMessage{
		OrderID:   order.OrderID,
		OldStatus: oldStatus,
		NewStatus: order.Status,
		ChangedBy: paymentActor,
		Timestamp: now,
	}); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish status update", reqID, map[string]interface{}{"order_id": order.OrderID}, err)
	}

	return &interfaces.PaymentResult{Payment: payment}, nil
}

// replay returns (nil, nil) when txID is unknown.
func (s *Service) replay(ctx context.Context, orderID, txID string, cmd interfaces.ProcessPaymentCommand) (*interfaces.PaymentResult, error) {
	existing, err := s.repo.FindByTransactionID(ctx, txID)
	if errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if existing.OrderNumber != orderID || !existing.Amount.Equal(cmd.Amount) {
		return nil, domain.ErrDuplicateTransaction
	}

	s.logger.Debug("payment_replayed", "Payment already recorded", logger.RequestID(ctx), map[string]interface{}{
		"order_id":       orderID,
		"transaction_id": txID,
	})
	return &interfaces.PaymentResult{Payment: existing, Replayed: true}, nil
}

func (s *Service) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) PaymentByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	return s.repo.FindByOrderID(ctx, orderID)
}

func (s *Service) ListPayments(ctx context.Context) ([]*domain.Payment, error) {
	return s.repo.List(ctx)
}
