package http

import (
	"time"

	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/shopspring/decimal"
)

// Запросы

type menuItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"is_available"`
}

type createOrderRequest struct {
	CustomerName        string             `json:"customer_name"`
	TableNumber         int                `json:"table_number"`
	PhoneNumber         string             `json:"phone_number"`
	Email               string             `json:"email"`
	PaymentMethod       string             `json:"payment_method"`
	SpecialInstructions string             `json:"special_instructions"`
	Items               []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type processPaymentRequest struct {
	OrderID       string          `json:"order_id"`
	TransactionID string          `json:"transaction_id"`
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Ответы

type menuItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type menuItemRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type orderItemResponse struct {
	ID        int64        `json:"id"`
	MenuItem  *menuItemRef `json:"menu_item"`
	Quantity  int          `json:"quantity"`
	Price     string       `json:"price"`
	LineTotal string       `json:"line_total"`
}

type orderResponse struct {
	ID                  int64               `json:"id"`
	OrderID             string              `json:"order_id"`
	CustomerName        string              `json:"customer_name"`
	TableNumber         int                 `json:"table_number"`
	PhoneNumber         string              `json:"phone_number"`
	Email               string              `json:"email"`
	PaymentMethod       string              `json:"payment_method"`
	SpecialInstructions string              `json:"special_instructions"`
	Items               []orderItemResponse `json:"items"`
	Subtotal            string              `json:"subtotal"`
	Tax                 string              `json:"tax"`
	DeliveryCharge      string              `json:"delivery_charge"`
	TotalAmount         string              `json:"total_amount"`
	Status              string              `json:"status"`
	PaymentStatus       string              `json:"payment_status"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

type statusUpdateResponse struct {
	Message   string `json:"message"`
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

type statusLogResponse struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type paymentResponse struct {
	ID            int64     `json:"id"`
	Order         string    `json:"order"`
	TransactionID string    `json:"transaction_id"`
	PaymentMethod string    `json:"payment_method"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type popularItemResponse struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	OrderCount int    `json:"order_count"`
}

type dashboardResponse struct {
	TotalOrders  int                   `json:"total_orders"`
	TodayOrders  int                   `json:"today_orders"`
	TotalRevenue string                `json:"total_revenue"`
	PopularItems []popularItemResponse `json:"popular_items"`
}

type categoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type menuStatsResponse struct {
	TotalItems       int                     `json:"total_items"`
	AvailableItems   int                     `json:"available_items"`
	UnavailableItems int                     `json:"unavailable_items"`
	ItemsByCategory  []categoryCountResponse `json:"items_by_category"`
}

type userResponse struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	IsActive   bool       `json:"is_active"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`
}

type authResponse struct {
	User  userResponse     `json:"user"`
	Token domain.TokenPair `json:"token"`
}

type accessResponse struct {
	Access string `json:"access"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toMenuItemResponse(item *domain.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    string(item.Category),
		Price:       money(item.Price),
		IsAvailable: item.IsAvailable,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toMenuItemResponses(items []*domain.MenuItem) []menuItemResponse {
	resp := make([]menuItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toMenuItemResponse(item))
	}
	return resp
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		line := orderItemResponse{
			ID:        item.ID,
			Quantity:  item.Quantity,
			Price:     money(item.Price),
			LineTotal: money(item.LineTotal()),
		}
		if item.MenuItem != nil {
			line.MenuItem = &menuItemRef{
				ID:       item.MenuItem.ID,
				Name:     item.MenuItem.Name,
				Category: string(item.MenuItem.Category),
			}
		} else {
			line.MenuItem = &menuItemRef{ID: item.MenuItemID}
		}
		items = append(items, line)
	}

	return orderResponse{
		ID:                  o.ID,
		OrderID:             o.OrderID,
		CustomerName:        o.CustomerName,
		TableNumber:         o.TableNumber,
		PhoneNumber:         o.PhoneNumber,
		Email:               o.Email,
		PaymentMethod:       string(o.PaymentMethod),
		SpecialInstructions: o.SpecialInstructions,
		Items:               items,
		Subtotal:            money(o.Subtotal),
		Tax:                 money(o.Tax),
		DeliveryCharge:      money(o.DeliveryCharge),
		TotalAmount:         money(o.TotalAmount),
		Status:              string(o.Status),
		PaymentStatus:       string(o.PaymentStatus),
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func toOrderResponses(orders []*domain.Order) []orderResponse {
	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		Order:         p.OrderNumber,
		TransactionID: p.TransactionID,
		PaymentMethod: p.PaymentMethod,
		Amount:        money(p.Amount),
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		IsActive:   u.IsActive,
		DateJoined: u.DateJoined,
		LastLogin:  u.LastLogin,
	}
}
