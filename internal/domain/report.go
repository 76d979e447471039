package domain

import "github.com/shopspring/decimal"

// PopularItem is a menu item ranked by how many order lines reference it.
type PopularItem struct {
	MenuItemID int64
	Name       string
	Count      int
}

type Dashboard struct {
	TotalOrders  int
	TodayOrders  int
	TotalRevenue decimal.Decimal
	PopularItems []PopularItem
}

type CategoryCount struct {
	Category Category
	Count    int
}

type MenuStats struct {
	TotalItems       int
	AvailableItems   int
	UnavailableItems int
	ItemsByCategory  []CategoryCount
}
