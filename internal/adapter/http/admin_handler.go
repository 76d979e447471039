package http

import (
	"net/http"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

type AdminHandler struct {
	service interfaces.AdminService
	logger  logger.Logger
}

func NewAdminHandler(service interfaces.AdminService, logger logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Dashboard(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	popular := make([]popularItemResponse, 0, len(d.PopularItems))
	for _, p := range d.PopularItems {
		popular = append(popular, popularItemResponse{
			MenuItemID: p.MenuItemID,
			Name:       p.Name,
			OrderCount: p.Count,
		})
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		TotalOrders:  d.TotalOrders,
		TodayOrders:  d.TodayOrders,
		TotalRevenue: money(d.TotalRevenue),
		PopularItems: popular,
	})
}

// Orders supports ?status= and ?date=YYYY-MM-DD.
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders, err := h.service.Orders(r.Context(), interfaces.AdminOrdersQuery{
		Status: q.Get("status"),
		Date:   q.Get("date"),
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *AdminHandler) MenuStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.MenuStats(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	byCategory := make([]categoryCountResponse, 0, len(stats.ItemsByCategory))
	for _, c := range stats.ItemsByCategory {
		byCategory = append(byCategory, categoryCountResponse{Category: string(c.Category), Count: c.Count})
	}

	writeJSON(w, http.StatusOK, menuStatsResponse{
		TotalItems:       stats.TotalItems,
		AvailableItems:   stats.AvailableItems,
		UnavailableItems: stats.UnavailableItems,
		ItemsByCategory:  byCategory,
	})
}
