package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodgram-backend/internal/domains/recipe/model"
	tagmodel "foodgram-backend/internal/domains/tag/model"
	usermodel "foodgram-backend/internal/domains/user/model"
)

type relationKey struct {
	rel    model.Relation
	user   uuid.UUID
	recipe uuid.UUID
}

type catalogIngredient struct {
	name string
	unit string
}

// memoryRepository giữ recipes và các bảng junction trong map,
// cùng ràng buộc unique như schema Postgres
type memoryRepository struct {
	recipes     map[uuid.UUID]*model.Recipe
	ingredients map[uuid.UUID][]model.IngredientAmount
	tags        map[uuid.UUID][]uuid.UUID
	relations   map[relationKey]bool

	catalog map[uuid.UUID]catalogIngredient
	tagSet  map[uuid.UUID]*tagmodel.Tag

	writes int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		recipes:     map[uuid.UUID]*model.Recipe{},
		ingredients: map[uuid.UUID][]model.IngredientAmount{},
		tags:        map[uuid.UUID][]uuid.UUID{},
		relations:   map[relationKey]bool{},
		catalog:     map[uuid.UUID]catalogIngredient{},
		tagSet:      map[uuid.UUID]*tagmodel.Tag{},
	}
}

func (r *memoryRepository) addIngredient(name, unit string) uuid.UUID {
	id := uuid.New()
	r.catalog[id] = catalogIngredient{name: name, unit: unit}
	return id
}

func (r *memoryRepository) addTag(slug string) uuid.UUID {
	id := uuid.New()
	r.tagSet[id] = &tagmodel.Tag{ID: id, Name: slug, Color: tagmodel.ColorGreen, Slug: slug}
	return id
}

// addRecipe seed trực tiếp, không qua service
func (r *memoryRepository) addRecipe(author uuid.UUID, name string, items map[uuid.UUID]string, tagIDs ...uuid.UUID) *model.Recipe {
	rec := &model.Recipe{ID: uuid.New(), AuthorID: author, Name: name, CookingTime: 10, ImageKey: "recipes/seed.jpg"}
	r.recipes[rec.ID] = rec
	for id, amount := range items {
		r.ingredients[rec.ID] = append(r.ingredients[rec.ID], model.IngredientAmount{ID: id, Amount: decimal.RequireFromString(amount)})
	}
	r.tags[rec.ID] = tagIDs
	return rec
}

func (r *memoryRepository) ExistingIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	found := map[uuid.UUID]bool{}
	for _, id := range ids {
		if _, ok := r.catalog[id]; ok {
			found[id] = true
		}
	}
	return found, nil
}

type tagChecker struct{ repo *memoryRepository }

func (c tagChecker) ExistingIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	found := map[uuid.UUID]bool{}
	for _, id := range ids {
		if _, ok := c.repo.tagSet[id]; ok {
			found[id] = true
		}
	}
	return found, nil
}

func (r *memoryRepository) Create(_ context.Context, rec *model.Recipe, ingredients []model.IngredientAmount, tagIDs []uuid.UUID) error {
	r.writes++
	copied := *rec
	r.recipes[rec.ID] = &copied
	r.ingredients[rec.ID] = append([]model.IngredientAmount(nil), ingredients...)
	r.tags[rec.ID] = append([]uuid.UUID(nil), tagIDs...)
	return nil
}

func (r *memoryRepository) Update(_ context.Context, rec *model.Recipe, ingredients []model.IngredientAmount, tagIDs []uuid.UUID) error {
	if _, ok := r.recipes[rec.ID]; !ok {
		return model.ErrRecipeNotFound
	}
	r.writes++
	copied := *rec
	r.recipes[rec.ID] = &copied
	r.ingredients[rec.ID] = append([]model.IngredientAmount(nil), ingredients...)
	r.tags[rec.ID] = append([]uuid.UUID(nil), tagIDs...)
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.recipes[id]; !ok {
		return model.ErrRecipeNotFound
	}
	r.writes++
	delete(r.recipes, id)
	delete(r.ingredients, id)
	delete(r.tags, id)
	for k := range r.relations {
		if k.recipe == id {
			delete(r.relations, k)
		}
	}
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, model.ErrRecipeNotFound
	}
	copied := *rec
	return &copied, nil
}

func (r *memoryRepository) List(_ context.Context, filter model.ListFilter, offset, limit int) ([]*model.Recipe, int, error) {
	var matched []*model.Recipe
	for _, rec := range r.recipes {
		if filter.AuthorID != nil && rec.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.ViewerID != nil && filter.IsFavorited && !r.relations[relationKey{model.RelationFavorite, *filter.ViewerID, rec.ID}] {
			continue
		}
		if filter.ViewerID != nil && filter.IsInShoppingCart && !r.relations[relationKey{model.RelationShoppingCart, *filter.ViewerID, rec.ID}] {
			continue
		}
		matched = append(matched, rec)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	if offset >= total {
		return []*model.Recipe{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *memoryRepository) IngredientsFor(_ context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]model.RecipeIngredient, error) {
	out := map[uuid.UUID][]model.RecipeIngredient{}
	for _, id := range recipeIDs {
		for _, item := range r.ingredients[id] {
			c := r.catalog[item.ID]
			out[id] = append(out[id], model.RecipeIngredient{IngredientID: item.ID, Name: c.name, MeasurementUnit: c.unit, Amount: item.Amount})
		}
	}
	return out, nil
}

func (r *memoryRepository) TagsFor(_ context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]*tagmodel.Tag, error) {
	out := map[uuid.UUID][]*tagmodel.Tag{}
	for _, id := range recipeIDs {
		for _, tagID := range r.tags[id] {
			out[id] = append(out[id], r.tagSet[tagID])
		}
	}
	return out, nil
}

func (r *memoryRepository) RelationSet(_ context.Context, rel model.Relation, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := map[uuid.UUID]bool{}
	for _, id := range recipeIDs {
		if r.relations[relationKey{rel, userID, id}] {
			set[id] = true
		}
	}
	return set, nil
}

func (r *memoryRepository) RelationExists(_ context.Context, rel model.Relation, userID, recipeID uuid.UUID) (bool, error) {
	return r.relations[relationKey{rel, userID, recipeID}], nil
}

func (r *memoryRepository) AddRelation(_ context.Context, rel model.Relation, userID, recipeID uuid.UUID) error {
	key := relationKey{rel, userID, recipeID}
	if r.relations[key] {
		return model.ErrRelationExists
	}
	r.relations[key] = true
	return nil
}

func (r *memoryRepository) RemoveRelation(_ context.Context, rel model.Relation, userID, recipeID uuid.UUID) error {
	key := relationKey{rel, userID, recipeID}
	if !r.relations[key] {
		return model.ErrRelationNotFound
	}
	delete(r.relations, key)
	return nil
}

func (r *memoryRepository) CartLines(_ context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	lines := []model.CartLine{}
	for key := range r.relations {
		if key.rel != model.RelationShoppingCart || key.user != userID {
			continue
		}
		for _, item := range r.ingredients[key.recipe] {
			c := r.catalog[item.ID]
			lines = append(lines, model.CartLine{Name: c.name, MeasurementUnit: c.unit, Amount: item.Amount})
		}
	}
	return lines, nil
}

// ========================================
// AUTHORS
// ========================================

type memoryAuthors struct {
	users   map[uuid.UUID]*usermodel.User
	follows map[uuid.UUID]map[uuid.UUID]bool
}

func newMemoryAuthors(users ...*usermodel.User) *memoryAuthors {
	a := &memoryAuthors{users: map[uuid.UUID]*usermodel.User{}, follows: map[uuid.UUID]map[uuid.UUID]bool{}}
	for _, u := range users {
		a.users[u.ID] = u
	}
	return a
}

func (a *memoryAuthors) follow(user, author uuid.UUID) {
	if a.follows[user] == nil {
		a.follows[user] = map[uuid.UUID]bool{}
	}
	a.follows[user][author] = true
}

func (a *memoryAuthors) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*usermodel.User, error) {
	out := map[uuid.UUID]*usermodel.User{}
	for _, id := range ids {
		if u, ok := a.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (a *memoryAuthors) FollowingSet(_ context.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := map[uuid.UUID]bool{}
	for _, id := range authorIDs {
		if a.follows[userID][id] {
			set[id] = true
		}
	}
	return set, nil
}
