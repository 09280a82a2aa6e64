package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foodgram-backend/internal/domains/ingredient/service"
	"foodgram-backend/internal/shared/response"
)

type IngredientHandler struct {
	service service.ServiceInterface
}

func NewIngredientHandler(s service.ServiceInterface) *IngredientHandler {
	return &IngredientHandler{service: s}
}

// List searches ingredients by name prefix
// GET /api/ingredients?name=
func (h *IngredientHandler) List(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Get returns single ingredient
// GET /api/ingredients/:id
func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}
