package handler

import (
	"net/http"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/service"

	"github.com/gin-gonic/gin"
)

type RecommendationsHandler struct{ svc service.RecommendationService }

func NewRecommendationsHandler(svc service.RecommendationService) *RecommendationsHandler {
	return &RecommendationsHandler{svc: svc}
}

func (h *RecommendationsHandler) List(c *gin.Context) {
	includeImplemented := c.Query("include_implemented") == "true"
	resp, err := h.svc.List(c.Request.Context(), userID(c), includeImplemented)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *RecommendationsHandler) Implement(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Implement(c.Request.Context(), userID(c), id); err != nil {
		fail(c, err)
		return
	}
	respondMsg(c, http.StatusOK, gin.H{"implemented": true}, "Recommendation marked as implemented")
}
