package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryAppetizer  Category = "appetizer"
	CategoryMainCourse Category = "main_course"
	CategoryDessert    Category = "dessert"
	CategoryBeverage   Category = "beverage"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MaxPrice bounds a menu price to what fits in NUMERIC(10,2).
var MaxPrice = decimal.RequireFromString("99999999.99")

// MenuItem is a catalog entry. Orders copy its price at placement time.
type MenuItem struct {
	ID          int64
	Name        string
	Description string
	Category    Category
	Price       decimal.Decimal
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewMenuItem(name, description string, category Category, price decimal.Decimal, available bool) (*MenuItem, error) {
	now := time.Now()
	item := &MenuItem{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Category:    category,
		Price:       price,
		IsAvailable: available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func (m *MenuItem) Validate() error {
	var errs ValidationErrors

	if m.Name == "" {
		errs.Add("name", "name is required")
	} else if len(m.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}

	if !m.Category.Valid() {
		errs.Add("category", "category must be one of: appetizer, main_course, dessert, beverage")
	}

	if m.Price.IsNegative() {
		errs.Add("price", "price must not be negative")
	} else if m.Price.GreaterThan(MaxPrice) {
		errs.Add("price", "price must not exceed 99999999.99")
	} else if !m.Price.Equal(m.Price.Truncate(2)) {
		errs.Add("price", "price must have at most 2 decimal places")
	}

	return errs.Err()
}
