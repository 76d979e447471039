// Package apptest provides in-memory implementations of the repository and
// messaging ports for service and handler tests.
package apptest

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
	"github.com/shopspring/decimal"
)

// Logger discards everything below error level.
func Logger() logger.Logger {
	return logger.NewWithWriter("test", "error", io.Discard)
}

// Store keeps every table in memory. Values are copied in and out so callers
// cannot mutate stored rows, the way a database would behave.
type Store struct {
	mu sync.Mutex

	menu     map[int64]domain.MenuItem
	orders   map[string]*domain.Order
	payments []domain.Payment
	users    map[string]domain.User
	history  map[string][]domain.StatusLog

	nextMenuID    int64
	nextOrderID   int64
	nextItemID    int64
	nextPaymentID int64
	nextUserID    int64

	// CreateOrderErr, when set, is returned by the next order inserts in turn.
	CreateOrderErr []error
}

func NewStore() *Store {
	return &Store{
		menu:    make(map[int64]domain.MenuItem),
		orders:  make(map[string]*domain.Order),
		users:   make(map[string]domain.User),
		history: make(map[string][]domain.StatusLog),
	}
}

func (s *Store) Menu() interfaces.MenuRepository       { return menuRepo{s} }
func (s *Store) Orders() interfaces.OrderRepository     { return orderRepo{s} }
func (s *Store) Payments() interfaces.PaymentRepository { return paymentRepo{s} }
func (s *Store) Reports() interfaces.ReportRepository   { return reportRepo{s} }
func (s *Store) Users() interfaces.UserRepository       { return userRepo{s} }

// AddMenuItem seeds the catalog and returns the stored id.
func (s *Store) AddMenuItem(name string, category domain.Category, price string, available bool) int64 {
	item := &domain.MenuItem{
		Name:        name,
		Category:    category,
		Price:       decimal.RequireFromString(price),
		IsAvailable: available,
	}
	_ = s.Menu().Create(context.Background(), item)
	return item.ID
}

// OrderCount returns how many orders are stored.
func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// UserCount returns how many users are stored.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// SetOrderCreatedAt backdates an order for report tests.
func (s *Store) SetOrderCreatedAt(orderID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[orderID]; ok {
		o.CreatedAt = at
	}
}

func copyOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Items = make([]domain.OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	for i := range c.Items {
		if c.Items[i].MenuItem != nil {
			m := *c.Items[i].MenuItem
			c.Items[i].MenuItem = &m
		}
	}
	return &c
}

// --- menu ---

type menuRepo struct{ s *Store }

func (r menuRepo) Create(_ context.Context, item *domain.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextMenuID++
	item.ID = r.s.nextMenuID
	r.s.menu[item.ID] = *item
	return nil
}

func (r menuRepo) FindByID(_ context.Context, id int64) (*domain.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.menu[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	return &item, nil
}

func (r menuRepo) FindByIDs(_ context.Context, ids []int64) (map[int64]*domain.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make(map[int64]*domain.MenuItem)
	for _, id := range ids {
		if item, ok := r.s.menu[id]; ok {
			out[id] = &item
		}
	}
	return out, nil
}

func (r menuRepo) List(_ context.Context, filter interfaces.MenuFilter) ([]*domain.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.MenuItem
	for _, item := range r.s.menu {
		if filter.Available != nil && item.IsAvailable != *filter.Available {
			continue
		}
		if filter.Category != nil && item.Category != *filter.Category {
			continue
		}
		item := item
		out = append(out, &item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r menuRepo) Update(_ context.Context, item *domain.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.menu[item.ID]; !ok {
		return domain.ErrMenuItemNotFound
	}
	r.s.menu[item.ID] = *item
	return nil
}

func (r menuRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.menu[id]; !ok {
		return domain.ErrMenuItemNotFound
	}
	for _, o := range r.s.orders {
		for _, line := range o.Items {
			if line.MenuItemID == id {
				return domain.ErrMenuItemInUse
			}
		}
	}
	delete(r.s.menu, id)
	return nil
}

// --- orders ---

type orderRepo struct{ s *Store }

func (r orderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.CreateOrderErr) > 0 {
		err := r.s.CreateOrderErr[0]
		r.s.CreateOrderErr = r.s.CreateOrderErr[1:]
		if err != nil {
			return err
		}
	}
	if _, exists := r.s.orders[order.OrderID]; exists {
		return domain.ErrDuplicateOrderID
	}
	for _, line := range order.Items {
		if _, ok := r.s.menu[line.MenuItemID]; !ok {
			return domain.ErrMenuItemNotFound
		}
	}

	r.s.nextOrderID++
	order.ID = r.s.nextOrderID
	for i := range order.Items {
		r.s.nextItemID++
		order.Items[i].ID = r.s.nextItemID
		order.Items[i].OrderID = order.ID
	}
	r.s.orders[order.OrderID] = copyOrder(order)
	r.s.logStatus(order, interfaces.Actor(ctx))
	return nil
}

// logStatus must be called with mu held.
func (s *Store) logStatus(o *domain.Order, changedBy string) {
	s.history[o.OrderID] = append(s.history[o.OrderID], domain.StatusLog{
		ID:        int64(len(s.history[o.OrderID]) + 1),
		OrderID:   o.ID,
		Status:    o.Status,
		ChangedBy: changedBy,
		ChangedAt: time.Now(),
	})
}

func (r orderRepo) FindByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (r orderRepo) List(_ context.Context, filter interfaces.OrderFilter) ([]*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Order
	for _, o := range r.s.orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.CreatedFrom != nil && o.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && !o.CreatedAt.Before(*filter.CreatedTo) {
			continue
		}
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r orderRepo) Mutate(ctx context.Context, orderID string, fn interfaces.OrderMutation) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	working := copyOrder(stored)
	if err := fn(working); err != nil {
		return nil, err
	}
	r.s.orders[orderID] = copyOrder(working)
	if working.Status != stored.Status {
		r.s.logStatus(working, interfaces.Actor(ctx))
	}
	return working, nil
}

func (r orderRepo) Delete(_ context.Context, orderID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[orderID]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.s.orders, orderID)
	delete(r.s.history, orderID)
	return nil
}

func (r orderRepo) StatusHistory(_ context.Context, orderID string) ([]*domain.StatusLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[orderID]; !ok {
		return nil, domain.ErrOrderNotFound
	}
	out := make([]*domain.StatusLog, len(r.s.history[orderID]))
	for i := range r.s.history[orderID] {
		entry := r.s.history[orderID][i]
		out[i] = &entry
	}
	return out, nil
}

// --- payments ---

type paymentRepo struct{ s *Store }

func (r paymentRepo) Record(ctx context.Context, orderID string, build interfaces.PaymentBuilder) (*domain.Payment, *domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.orders[orderID]
	if !ok {
		return nil, nil, domain.ErrOrderNotFound
	}
	working := copyOrder(stored)
	payment, err := build(working)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range r.s.payments {
		if p.TransactionID == payment.TransactionID {
			return nil, nil, domain.ErrDuplicateTransaction
		}
	}

	r.s.nextPaymentID++
	payment.ID = r.s.nextPaymentID
	r.s.payments = append(r.s.payments, *payment)
	r.s.orders[orderID] = copyOrder(working)
	if working.Status != stored.Status {
		r.s.logStatus(working, interfaces.Actor(ctx))
	}
	return payment, working, nil
}

func (r paymentRepo) find(match func(domain.Payment) bool) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.payments {
		if match(p) {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (r paymentRepo) FindByID(_ context.Context, id int64) (*domain.Payment, error) {
	return r.find(func(p domain.Payment) bool { return p.ID == id })
}

func (r paymentRepo) FindByOrderID(_ context.Context, orderID string) (*domain.Payment, error) {
	return r.find(func(p domain.Payment) bool { return p.OrderNumber == orderID })
}

func (r paymentRepo) FindByTransactionID(_ context.Context, transactionID string) (*domain.Payment, error) {
	return r.find(func(p domain.Payment) bool { return p.TransactionID == transactionID })
}

func (r paymentRepo) List(_ context.Context) ([]*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Payment, 0, len(r.s.payments))
	for i := len(r.s.payments) - 1; i >= 0; i-- {
		p := r.s.payments[i]
		out = append(out, &p)
	}
	return out, nil
}

// --- reports ---

type reportRepo struct{ s *Store }

func (r reportRepo) CountOrders(_ context.Context, from, to *time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := 0
	for _, o := range r.s.orders {
		if from != nil && o.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && !o.CreatedAt.Before(*to) {
			continue
		}
		n++
	}
	return n, nil
}

func (r reportRepo) TotalRevenue(_ context.Context) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sum := decimal.Zero
	for _, o := range r.s.orders {
		sum = sum.Add(o.TotalAmount)
	}
	return sum, nil
}

func (r reportRepo) PopularItems(_ context.Context, limit int) ([]domain.PopularItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[int64]int)
	for _, o := range r.s.orders {
		for _, line := range o.Items {
			counts[line.MenuItemID]++
		}
	}

	out := make([]domain.PopularItem, 0, len(counts))
	for id, n := range counts {
		out = append(out, domain.PopularItem{MenuItemID: id, Name: r.s.menu[id].Name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r reportRepo) MenuStats(_ context.Context) (*domain.MenuStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stats := &domain.MenuStats{}
	byCategory := make(map[domain.Category]int)
	for _, item := range r.s.menu {
		stats.TotalItems++
		if item.IsAvailable {
			stats.AvailableItems++
		}
		byCategory[item.Category]++
	}
	stats.UnavailableItems = stats.TotalItems - stats.AvailableItems

	for category, n := range byCategory {
		stats.ItemsByCategory = append(stats.ItemsByCategory, domain.CategoryCount{Category: category, Count: n})
	}
	sort.Slice(stats.ItemsByCategory, func(i, j int) bool {
		return stats.ItemsByCategory[i].Category < stats.ItemsByCategory[j].Category
	})
	return stats, nil
}

// --- users ---

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := user.Username
	if _, exists := r.s.users[key]; exists {
		return domain.ErrUsernameTaken
	}
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	r.s.users[key] = *user
	return nil
}

func (r userRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r userRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r userRepo) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for key, u := range r.s.users {
		if u.ID == id {
			u.LastLogin = &at
			r.s.users[key] = u
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// SetUserActive toggles an account for login tests.
func (s *Store) SetUserActive(username string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := username
	if u, ok := s.users[key]; ok {
		u.IsActive = active
		s.users[key] = u
	}
}

// AddOrder places a pending order with one of each menu item and returns it.
// It panics on failure since it only seeds fixtures.
func (s *Store) AddOrder(menuItemIDs ...int64) *domain.Order {
	ctx := context.Background()

	items := make([]domain.OrderItem, len(menuItemIDs))
	for i, id := range menuItemIDs {
		items[i] = domain.OrderItem{MenuItemID: id, Quantity: 1}
	}
	order, err := domain.NewOrder(domain.Customer{Name: "Guest", TableNumber: 1, PhoneNumber: "+77000000000"}, domain.PaymentMethodOnline, items)
	if err != nil {
		panic(err)
	}
	menu, _ := s.Menu().FindByIDs(ctx, menuItemIDs)
	if err := order.PriceFrom(menu); err != nil {
		panic(err)
	}
	if order.OrderID, err = domain.GenerateOrderID(order.CreatedAt); err != nil {
		panic(err)
	}
	if err := s.Orders().Create(ctx, order); err != nil {
		panic(err)
	}
	return order
}
