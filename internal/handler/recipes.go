package handler

import (
	"net/http"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/service"

	"github.com/gin-gonic/gin"
)

type RecipesHandler struct {
	svc service.RecipeService
	ai  service.AIService
}

func NewRecipesHandler(svc service.RecipeService, ai service.AIService) *RecipesHandler {
	return &RecipesHandler{svc: svc, ai: ai}
}

func (h *RecipesHandler) Create(c *gin.Context) {
	var req dto.CreateRecipeRequest
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

func (h *RecipesHandler) List(c *gin.Context) {
	var filter dto.RecipeFilter
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

func (h *RecipesHandler) Get(c *gin.Context) {
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

func (h *RecipesHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateRecipeRequest
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

func (h *RecipesHandler) Delete(c *gin.Context) {
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

// Generate drafts a recipe from a free-text prompt via the AI upstream.
// Nothing is saved; the client reviews and POSTs the draft as a new recipe.
func (h *RecipesHandler) Generate(c *gin.Context) {
	var req dto.GenerateRecipeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ai.GenerateRecipe(c.Request.Context(), userID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}
