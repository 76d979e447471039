package admin

import (
	"context"
	"testing"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/apptest"
	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
	"github.com/shopspring/decimal"
)

func almaty(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Almaty")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func TestDashboard(t *testing.T) {
	loc := almaty(t)
	store := apptest.NewStore()
	svc := NewService(store.Reports(), store.Orders(), loc, apptest.Logger())

	// 10:00 local on 2024-05-20.
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, loc)
	svc.now = func() time.Time { return now }

	names := []string{"Plov", "Lagman", "Manti", "Samsa", "Kuyrdak", "Baursak"}
	ids := make([]int64, len(names))
	for i, n := range names {
		ids[i] = store.AddMenuItem(n, domain.CategoryMainCourse, "100", true)
	}

	// Plov appears in 3 orders, Lagman in 2, the rest once.
	orders := []*domain.Order{
		store.AddOrder(ids[0], ids[1]),
		store.AddOrder(ids[0], ids[1], ids[2]),
		store.AddOrder(ids[0], ids[3], ids[4], ids[5]),
	}
	// Local midnight-ish today, late yesterday, and well inside today.
	store.SetOrderCreatedAt(orders[0].OrderID, time.Date(2024, 5, 20, 0, 5, 0, 0, loc))
	store.SetOrderCreatedAt(orders[1].OrderID, time.Date(2024, 5, 19, 23, 55, 0, 0, loc))
	store.SetOrderCreatedAt(orders[2].OrderID, now.Add(-time.Hour))

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if d.TotalOrders != 3 || d.TodayOrders != 2 {
		t.Errorf("orders total/today = %d/%d, want 3/2", d.TotalOrders, d.TodayOrders)
	}

	var want decimal.Decimal
	for _, o := range orders {
		want = want.Add(o.TotalAmount)
	}
	if !d.TotalRevenue.Equal(want) {
		t.Errorf("revenue = %s, want %s", d.TotalRevenue, want)
	}

	if len(d.PopularItems) != popularItemsLimit {
		t.Fatalf("popular items = %d, want %d", len(d.PopularItems), popularItemsLimit)
	}
	if d.PopularItems[0].Name != "Plov" || d.PopularItems[0].Count != 3 {
		t.Errorf("top item = %+v, want Plov x3", d.PopularItems[0])
	}
	if d.PopularItems[1].Name != "Lagman" {
		t.Errorf("second item = %+v, want Lagman", d.PopularItems[1])
	}
	// Ties on one order line are broken alphabetically.
	if d.PopularItems[2].Name != "Baursak" {
		t.Errorf("third item = %+v, want Baursak", d.PopularItems[2])
	}
}

func TestOrders_Filters(t *testing.T) {
	loc := almaty(t)
	store := apptest.NewStore()
	svc := NewService(store.Reports(), store.Orders(), loc, apptest.Logger())
	id := store.AddMenuItem("Plov", domain.CategoryMainCourse, "100", true)

	a := store.AddOrder(id)
	b := store.AddOrder(id)
	store.SetOrderCreatedAt(a.OrderID, time.Date(2024, 5, 20, 1, 0, 0, 0, loc))
	store.SetOrderCreatedAt(b.OrderID, time.Date(2024, 5, 21, 1, 0, 0, 0, loc))
	if _, err := store.Orders().Mutate(context.Background(), b.OrderID, func(o *domain.Order) error {
		return o.TransitionTo(domain.StatusCancelled)
	}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		query interfaces.AdminOrdersQuery
		want  []string
	}{
		{name: "no filter newest first", want: []string{b.OrderID, a.OrderID}},
		{name: "by status", query: interfaces.AdminOrdersQuery{Status: "cancelled"}, want: []string{b.OrderID}},
		{name: "by local date", query: interfaces.AdminOrdersQuery{Date: "2024-05-20"}, want: []string{a.OrderID}},
		{name: "both", query: interfaces.AdminOrdersQuery{Status: "pending", Date: "2024-05-21"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Orders(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Orders() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Orders() returned %d orders, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].OrderID != tt.want[i] {
					t.Errorf("order %d = %s, want %s", i, got[i].OrderID, tt.want[i])
				}
			}
		})
	}

	for _, q := range []interfaces.AdminOrdersQuery{{Status: "shipped"}, {Date: "20-05-2024"}} {
		if _, err := svc.Orders(context.Background(), q); !domain.IsValidation(err) {
			t.Errorf("Orders(%+v) error = %v, want validation error", q, err)
		}
	}
}

func TestMenuStats(t *testing.T) {
	store := apptest.NewStore()
	svc := NewService(store.Reports(), store.Orders(), time.UTC, apptest.Logger())
	store.AddMenuItem("Plov", domain.CategoryMainCourse, "100", true)
	store.AddMenuItem("Kumis", domain.CategoryBeverage, "50", false)
	store.AddMenuItem("Tea", domain.CategoryBeverage, "20", true)

	stats, err := svc.MenuStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalItems != 3 || stats.AvailableItems != 2 || stats.UnavailableItems != 1 {
		t.Errorf("stats = %+v", stats)
	}
	counts := map[domain.Category]int{}
	for _, c := range stats.ItemsByCategory {
		counts[c.Category] = c.Count
	}
	if counts[domain.CategoryBeverage] != 2 || counts[domain.CategoryMainCourse] != 1 {
		t.Errorf("by category = %+v", stats.ItemsByCategory)
	}
}
