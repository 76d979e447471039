package http

import (
	"net/http"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

type TrackingHandler struct {
	service interfaces.TrackingService
	logger  logger.Logger
}

func NewTrackingHandler(service interfaces.TrackingService, logger logger.Logger) *TrackingHandler {
	return &TrackingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *TrackingHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.TrackOrder(r.Context(), r.PathValue("order_id"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *TrackingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	change, err := h.service.UpdateStatus(r.Context(), r.PathValue("order_id"), req.Status)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, statusUpdateResponse{
		Message:   "Order status updated successfully",
		OrderID:   change.OrderID,
		OldStatus: string(change.OldStatus),
		NewStatus: string(change.NewStatus),
	})
}

func (h *TrackingHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.History(r.Context(), r.PathValue("order_id"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	resp := make([]statusLogResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, statusLogResponse{
			Status:    string(e.Status),
			ChangedBy: e.ChangedBy,
			ChangedAt: e.ChangedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
