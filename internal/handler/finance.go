package handler

import (
	"net/http"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/service"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct{ svc service.FinanceService }

func NewFinanceHandler(svc service.FinanceService) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

func (h *FinanceHandler) Create(c *gin.Context) {
	var req dto.CreateFinancialRecordRequest
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

func (h *FinanceHandler) List(c *gin.Context) {
	var filter dto.FinanceFilter
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

func (h *FinanceHandler) Delete(c *gin.Context) {
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
