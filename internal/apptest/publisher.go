package apptest

import (
	"context"
	"sync"

	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

// Publisher records every message it is asked to send. When Err is set the
// message is still recorded and Err is returned.
type Publisher struct {
	mu sync.Mutex

	Orders   []interfaces.OrderMessage
	Statuses []interfaces.StatusUpdateMessage
	Payments []interfaces.PaymentMessage
	Err      error
}

var _ interfaces.MessagePublisher = (*Publisher)(nil)

func (p *Publisher) PublishOrderCreated(_ context.Context, msg interfaces.OrderMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Orders = append(p.Orders, msg)
	return p.Err
}

func (p *Publisher) PublishStatusUpdate(_ context.Context, msg interfaces.StatusUpdateMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Statuses = append(p.Statuses, msg)
	return p.Err
}

func (p *Publisher) PublishPayment(_ context.Context, msg interfaces.PaymentMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Payments = append(p.Payments, msg)
	return p.Err
}
