package http

import (
	"net/http"
	"strconv"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

type MenuHandler struct {
	service interfaces.MenuService
	logger  logger.Logger
}

func NewMenuHandler(service interfaces.MenuService, logger logger.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// List supports ?category= and ?is_available= filters.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter interfaces.MenuFilter
	var errs domain.ValidationErrors

	q := r.URL.Query()
	if v := q.Get("category"); v != "" {
		category := domain.Category(v)
		filter.Category = &category
	}
	if v := q.Get("is_available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			errs.Add("is_available", "is_available must be true or false")
		} else {
			filter.Available = &available
		}
	}
	if err := errs.Err(); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	items, err := h.service.ListItems(r.Context(), filter)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponses(items))
}

func (h *MenuHandler) Available(w http.ResponseWriter, r *http.Request) {
	available := true
	items, err := h.service.ListItems(r.Context(), interfaces.MenuFilter{Available: &available})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponses(items))
}

func (h *MenuHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.service.ItemsByCategory(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	resp := make(map[string][]menuItemResponse, len(grouped))
	for category, items := range grouped {
		resp[string(category)] = toMenuItemResponses(items)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	cmd := interfaces.CreateMenuItemCommand{IsAvailable: req.IsAvailable}
	if req.Name != nil {
		cmd.Name = *req.Name
	}
	if req.Description != nil {
		cmd.Description = *req.Description
	}
	if req.Category != nil {
		cmd.Category = *req.Category
	}
	if req.Price == nil {
		respondError(w, r, h.logger, domain.NewValidationError("price", "price is required"))
		return
	}
	cmd.Price = *req.Price

	item, err := h.service.CreateItem(r.Context(), cmd)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMenuItemResponse(item))
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := menuItemID(r)
	if !ok {
		respondError(w, r, h.logger, domain.ErrMenuItemNotFound)
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// Replace is a full update: name, category and price are required,
// description defaults to empty and is_available to true.
func (h *MenuHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := menuItemID(r)
	if !ok {
		respondError(w, r, h.logger, domain.ErrMenuItemNotFound)
		return
	}

	var req menuItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var errs domain.ValidationErrors
	if req.Name == nil {
		errs.Add("name", "name is required")
	}
	if req.Category == nil {
		errs.Add("category", "category is required")
	}
	if req.Price == nil {
		errs.Add("price", "price is required")
	}
	if err := errs.Err(); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	h.update(w, r, id, interfaces.UpdateMenuItemCommand{
		Name:        req.Name,
		Description: &description,
		Category:    req.Category,
		Price:       req.Price,
		IsAvailable: &available,
	})
}

// Update applies only the fields present in the body.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := menuItemID(r)
	if !ok {
		respondError(w, r, h.logger, domain.ErrMenuItemNotFound)
		return
	}

	var req menuItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	h.update(w, r, id, interfaces.UpdateMenuItemCommand{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	})
}

func (h *MenuHandler) update(w http.ResponseWriter, r *http.Request, id int64, cmd interfaces.UpdateMenuItemCommand) {
	item, err := h.service.UpdateItem(r.Context(), id, cmd)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := menuItemID(r)
	if !ok {
		respondError(w, r, h.logger, domain.ErrMenuItemNotFound)
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func menuItemID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
