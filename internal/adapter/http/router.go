package http

import (
	"net/http"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

// Services groups the ports the API is built over.
type Services struct {
	Menu     interfaces.MenuService
	Orders   interfaces.OrderService
	Tracking interfaces.TrackingService
	Payments interfaces.PaymentService
	Admin    interfaces.AdminService
	Auth     interfaces.AuthService
	Health   interfaces.HealthChecker
}

// NewRouter registers every route and wraps the mux in the request id,
// logging and recovery middleware.
func NewRouter(svc Services, log logger.Logger) http.Handler {
	menu := NewMenuHandler(svc.Menu, log)
	orders := NewOrderHandler(svc.Orders, log)
	tracking := NewTrackingHandler(svc.Tracking, log)
	payments := NewPaymentHandler(svc.Payments, log)
	admin := NewAdminHandler(svc.Admin, log)
	auth := NewAuthHandler(svc.Auth, log)
	health := NewHealthHandler(svc.Health, log)

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return RequireAuth(svc.Auth, log, h)
	}

	mux := http.NewServeMux()

	// Меню
	mux.HandleFunc("GET /menu-items/{$}", menu.List)
	mux.HandleFunc("POST /menu-items/{$}", protected(menu.Create))
	mux.HandleFunc("GET /menu-items/available/{$}", menu.Available)
	mux.HandleFunc("GET /menu-items/by_category/{$}", menu.ByCategory)
	mux.HandleFunc("GET /menu-items/{id}/{$}", menu.Get)
	mux.HandleFunc("PUT /menu-items/{id}/{$}", protected(menu.Replace))
	mux.HandleFunc("PATCH /menu-items/{id}/{$}", protected(menu.Update))
	mux.HandleFunc("DELETE /menu-items/{id}/{$}", protected(menu.Delete))

	// Заказы
	mux.HandleFunc("POST /orders/{$}", orders.CreateOrder)
	mux.HandleFunc("GET /orders/{$}", orders.ListOrders)
	mux.HandleFunc("GET /orders/{order_id}/{$}", orders.GetOrder)
	mux.HandleFunc("DELETE /orders/{order_id}/{$}", protected(orders.DeleteOrder))
	mux.HandleFunc("PATCH /orders/{order_id}/update_status/{$}", protected(tracking.UpdateStatus))
	mux.HandleFunc("GET /orders/{order_id}/track/{$}", tracking.TrackOrder)
	mux.HandleFunc("GET /orders/{order_id}/history/{$}", tracking.History)

	// Платежи
	mux.HandleFunc("POST /payments/process_payment/{$}", payments.ProcessPayment)
	mux.HandleFunc("GET /payments/{$}", payments.ListPayments)
	mux.HandleFunc("GET /payments/by_order/{$}", payments.ByOrder)
	mux.HandleFunc("GET /payments/{id}/{$}", payments.GetPayment)

	// Админка
	mux.HandleFunc("GET /admin/dashboard/{$}", protected(admin.Dashboard))
	mux.HandleFunc("GET /admin/orders/{$}", protected(admin.Orders))
	mux.HandleFunc("GET /admin/menu-stats/{$}", protected(admin.MenuStats))

	// Аутентификация
	mux.HandleFunc("POST /register/{$}", auth.Register)
	mux.HandleFunc("POST /login/{$}", auth.Login)
	mux.HandleFunc("POST /token/refresh/{$}", auth.Refresh)

	mux.HandleFunc("GET /health", health.Health)

	var handler http.Handler = mux
	handler = LoggingMiddleware(log)(handler)
	handler = RecoveryMiddleware(log)(handler)
	handler = RequestIDMiddleware(handler)
	return handler
}
