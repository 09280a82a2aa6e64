package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/domains/recipe/service"
	"foodgram-backend/internal/shared/paging"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/viewer"
)

const shoppingListFilename = "shoplist.txt"

// RecipeHandler xử lý recipe CRUD, favorites, shopping cart
type RecipeHandler struct {
	recipes     service.RecipeServiceInterface
	relations   service.RelationServiceInterface
	pageSize    int
	maxPageSize int
}

func NewRecipeHandler(recipes service.RecipeServiceInterface, relations service.RelationServiceInterface, pageSize, maxPageSize int) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		relations:   relations,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// ========================================
// RECIPE CRUD
// ========================================

// List GET /api/recipes?author=&tags=&tags=&is_favorited=&is_in_shopping_cart=&page=&limit=
func (h *RecipeHandler) List(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	p := paging.FromQuery(c, h.pageSize, h.maxPageSize)

	recipes, total, err := h.recipes.List(c.Request.Context(), viewer.FromGin(c), filter, p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, recipes, p.Meta(total))
}

// Get GET /api/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), viewer.FromGin(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, recipe)
}

// Create POST /api/recipes
// Field "author" trong body bị bỏ qua, author luôn là user hiện tại
func (h *RecipeHandler) Create(c *gin.Context) {
	var req model.RecipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), viewer.FromGin(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/api/recipes/"+recipe.ID.String())
	response.Success(c, http.StatusCreated, recipe)
}

// Update PATCH /api/recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	var req model.RecipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), viewer.FromGin(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, recipe)
}

// Delete DELETE /api/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), viewer.FromGin(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

// ========================================
// FAVORITES / SHOPPING CART
// ========================================

// AddFavorite POST /api/recipes/:id/favorite
func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addRelation(c, model.RelationFavorite)
}

// RemoveFavorite DELETE /api/recipes/:id/favorite
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, model.RelationFavorite)
}

// AddToCart POST /api/recipes/:id/shopping_cart
func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addRelation(c, model.RelationShoppingCart)
}

// RemoveFromCart DELETE /api/recipes/:id/shopping_cart
func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, model.RelationShoppingCart)
}

// DownloadShoppingCart GET /api/recipes/download_shopping_cart
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	lines, err := h.relations.ShoppingList(c.Request.Context(), viewer.FromGin(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	var body strings.Builder
	for _, line := range lines {
		body.WriteString(line)
		body.WriteByte('\n')
	}

	c.Header("Content-Disposition", `attachment; filename="`+shoppingListFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body.String()))
}

func (h *RecipeHandler) addRelation(c *gin.Context, rel model.Relation) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	short, err := h.relations.Add(c.Request.Context(), viewer.FromGin(c), rel, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, short)
}

func (h *RecipeHandler) removeRelation(c *gin.Context, rel model.Relation) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	if err := h.relations.Remove(c.Request.Context(), viewer.FromGin(c), rel, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

// ========================================
// HELPERS
// ========================================

func parseRecipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid recipe ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseListFilter: tags lặp lại (?tags=a&tags=b), cờ nhận 1/0/true/false
func parseListFilter(c *gin.Context) (model.ListFilter, bool) {
	var filter model.ListFilter

	if raw := c.Query("author"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid author ID")
			return filter, false
		}
		filter.AuthorID = &id
	}

	for _, slug := range c.QueryArray("tags") {
		if slug = strings.TrimSpace(slug); slug != "" {
			filter.TagSlugs = append(filter.TagSlugs, slug)
		}
	}

	var ok bool
	if filter.IsFavorited, ok = parseFlag(c, "is_favorited"); !ok {
		return filter, false
	}
	if filter.IsInShoppingCart, ok = parseFlag(c, "is_in_shopping_cart"); !ok {
		return filter, false
	}
	return filter, true
}

func parseFlag(c *gin.Context, name string) (bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		response.BadRequest(c, "Invalid value for "+name)
		return false, false
	}
	return v, true
}
