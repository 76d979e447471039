package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
	"github.com/shopspring/decimal"
)

type reportRepository struct {
	db DB
}

func NewReportRepository(db DB) interfaces.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountOrders(ctx context.Context, from, to *time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2)
	`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (r *reportRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM orders`).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}

// PopularItems ranks menu items by the number of order lines that reference
// them. Ties are broken by name.
func (r *reportRepository) PopularItems(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.name, COUNT(oi.id) AS order_count
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		GROUP BY m.id, m.name
		ORDER BY order_count DESC, m.name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank menu items: %w", err)
	}
	defer rows.Close()

	items := []domain.PopularItem{}
	for rows.Next() {
		var item domain.PopularItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Count); err != nil {
			return nil, fmt.Errorf("failed to scan popular item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *reportRepository) MenuStats(ctx context.Context) (*domain.MenuStats, error) {
	stats := &domain.MenuStats{ItemsByCategory: []domain.CategoryCount{}}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_available), COUNT(*) FILTER (WHERE NOT is_available)
		FROM menu_items
	`).Scan(&stats.TotalItems, &stats.AvailableItems, &stats.UnavailableItems)
	if err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT category, COUNT(*) FROM menu_items GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to group menu items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		stats.ItemsByCategory = append(stats.ItemsByCategory, c)
	}
	return stats, rows.Err()
}
