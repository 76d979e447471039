package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

// popularItemsLimit is how many items the dashboard ranks.
const popularItemsLimit = 5

type Service struct {
	reports  interfaces.ReportRepository
	orders   interfaces.OrderRepository
	location *time.Location
	logger   logger.Logger
	now      func() time.Time
}

// NewService reports calendar days in loc.
func NewService(reports interfaces.ReportRepository, orders interfaces.OrderRepository, loc *time.Location, logger logger.Logger) *Service {
	return &Service{
		reports:  reports,
		orders:   orders,
		location: loc,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	total, err := s.reports.CountOrders(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	from, to := s.dayBounds(s.now())
	today, err := s.reports.CountOrders(ctx, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's orders: %w", err)
	}

	revenue, err := s.reports.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	popular, err := s.reports.PopularItems(ctx, popularItemsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank menu items: %w", err)
	}

	s.logger.Debug("dashboard_built", "Dashboard computed", logger.RequestID(ctx), map[string]interface{}{
		"total_orders": total,
		"today_orders": today,
	})

	return &domain.Dashboard{
		TotalOrders:  total,
		TodayOrders:  today,
		TotalRevenue: revenue,
		PopularItems: popular,
	}, nil
}

// Orders lists orders newest first, optionally narrowed to one status and one
// calendar day in the reporting timezone.
func (s *Service) Orders(ctx context.Context, query interfaces.AdminOrdersQuery) ([]*domain.Order, error) {
	var filter interfaces.OrderFilter
	var errs domain.ValidationErrors

	if status := strings.TrimSpace(query.Status); status != "" {
		parsed, err := domain.ParseStatus(status)
		if err != nil {
			errs.Add("status", fmt.Sprintf("unknown status %q", status))
		} else {
			filter.Status = &parsed
		}
	}

	if date := strings.TrimSpace(query.Date); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, s.location)
		if err != nil {
			errs.Add("date", "date must be formatted as YYYY-MM-DD")
		} else {
			from, to := s.dayBounds(day)
			filter.CreatedFrom, filter.CreatedTo = &from, &to
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return s.orders.List(ctx, filter)
}

func (s *Service) MenuStats(ctx context.Context) (*domain.MenuStats, error) {
	return s.reports.MenuStats(ctx)
}

// dayBounds returns [midnight, next midnight) of t's day in the reporting zone.
func (s *Service) dayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(s.location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	return start, start.AddDate(0, 0, 1)
}
