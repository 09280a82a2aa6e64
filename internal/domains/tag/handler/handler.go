package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foodgram-backend/internal/domains/tag/service"
	"foodgram-backend/internal/shared/response"
)

type TagHandler struct {
	service service.ServiceInterface
}

func NewTagHandler(s service.ServiceInterface) *TagHandler {
	return &TagHandler{service: s}
}

// List GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tags)
}

// Get GET /api/tags/:id
func (h *TagHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tag ID")
		return
	}

	tag, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tag)
}
