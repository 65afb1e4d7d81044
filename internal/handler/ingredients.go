package handler

import (
	"net/http"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IngredientsHandler struct{ svc service.IngredientService }

func NewIngredientsHandler(svc service.IngredientService) *IngredientsHandler {
	return &IngredientsHandler{svc: svc}
}

func (h *IngredientsHandler) Create(c *gin.Context) {
	var req dto.CreateIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

func (h *IngredientsHandler) List(c *gin.Context) {
	var filter dto.IngredientFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), userID(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *IngredientsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *IngredientsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), userID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *IngredientsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Movements lists the stock audit trail, optionally scoped to one ingredient.
func (h *IngredientsHandler) Movements(c *gin.Context) {
	filter := repository.StockMovementFilter{Type: c.Query("type")}
	if raw := c.Query("ingredient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			fail(c, service.ErrNotFound)
			return
		}
		filter.IngredientID = &id
	}

	movements, total, err := h.svc.Movements(c.Request.Context(), userID(c), filter)
	if err != nil {
		fail(c, err)
		return
	}

	type movementResponse struct {
		ID           string `json:"id"`
		IngredientID string `json:"ingredient_id"`
		Type         string `json:"type"`
		Quantity     string `json:"quantity"`
		StockBefore  string `json:"stock_before"`
		StockAfter   string `json:"stock_after"`
		Reason       string `json:"reason"`
		ReferenceID  *string `json:"reference_id"`
		CreatedAt    string `json:"created_at"`
	}
	items := make([]movementResponse, 0, len(movements))
	for i := range movements {
		m := &movements[i]
		item := movementResponse{
			ID:           m.ID.String(),
			IngredientID: m.IngredientID.String(),
			Type:         m.Type,
			Quantity:     m.Quantity.String(),
			StockBefore:  m.StockBefore.String(),
			StockAfter:   m.StockAfter.String(),
			Reason:       m.Reason,
			CreatedAt:    m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if m.ReferenceID != nil {
			ref := m.ReferenceID.String()
			item.ReferenceID = &ref
		}
		items = append(items, item)
	}
	respond(c, http.StatusOK, gin.H{"items": items, "total": total})
}
