package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodgram-backend/internal/domains/recipe/model"
	usermodel "foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/paging"
	"foodgram-backend/internal/shared/viewer"
)

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockImageStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

// stubDecoder chấp nhận mọi chuỗi bắt đầu bằng "data:image/"
type stubDecoder struct{}

func (stubDecoder) PrepareDataURI(value string) ([]byte, error) {
	if !strings.HasPrefix(value, "data:image/") {
		return nil, errors.New("invalid image: malformed data uri")
	}
	return []byte("jpeg"), nil
}

type fixture struct {
	repo    *memoryRepository
	authors *memoryAuthors
	store   *mockImageStore
	svc     RecipeServiceInterface

	chef   *usermodel.User
	guest  *usermodel.User
	flour  uuid.UUID
	eggs   uuid.UUID
	dinner uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:  newMemoryRepository(),
		store: new(mockImageStore),
		chef:  &usermodel.User{ID: uuid.New(), Username: "chef", Email: "chef@example.com"},
		guest: &usermodel.User{ID: uuid.New(), Username: "guest", Email: "guest@example.com"},
	}
	f.authors = newMemoryAuthors(f.chef, f.guest)
	f.flour = f.repo.addIngredient("мука", "г")
	f.eggs = f.repo.addIngredient("яйца", "шт.")
	f.dinner = f.repo.addTag("dinner")
	f.svc = NewRecipeService(f.repo, f.repo, tagChecker{f.repo}, f.authors, stubDecoder{}, f.store, decimal.NewFromInt(1))
	return f
}

func ptr[T any](v T) *T {
	return &v
}

func (f *fixture) createRequest() model.RecipeWriteRequest {
	return model.RecipeWriteRequest{
		Ingredients: []model.IngredientAmount{
			{ID: f.flour, Amount: decimal.NewFromInt(200)},
			{ID: f.eggs, Amount: decimal.NewFromInt(2)},
		},
		Tags:        []uuid.UUID{f.dinner},
		Image:       ptr("data:image/png;base64,AAAA"),
		Name:        ptr("Блины"),
		Text:        ptr("Смешать и пожарить"),
		CookingTime: ptr(30),
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	f.store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "recipes/") && strings.HasSuffix(key, ".jpg")
	}), []byte("jpeg"), "image/jpeg").Return("http://minio/foodgram/recipes/x.jpg", nil).Once()

	resp, err := f.svc.Create(context.Background(), viewer.ForUser(f.chef.ID), f.createRequest())
	require.NoError(t, err)

	assert.Equal(t, "Блины", resp.Name)
	assert.Equal(t, f.chef.ID, resp.Author.ID)
	assert.Equal(t, "chef", resp.Author.Username)
	assert.Equal(t, "http://minio/foodgram/recipes/x.jpg", resp.Image)
	assert.Len(t, resp.Ingredients, 2)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "dinner", resp.Tags[0].Slug)
	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	f.store.AssertExpectations(t)
}

func TestCreate_ValidationLeavesNoTrace(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture, r *model.RecipeWriteRequest)
		field  string
	}{
		{
			name: "duplicate ingredient",
			mutate: func(f *fixture, r *model.RecipeWriteRequest) {
				r.Ingredients = append(r.Ingredients, model.IngredientAmount{ID: f.flour, Amount: decimal.NewFromInt(5)})
			},
			field: "ingredients",
		},
		{
			name: "amount below minimum",
			mutate: func(f *fixture, r *model.RecipeWriteRequest) {
				r.Ingredients[0].Amount = decimal.RequireFromString("0.5")
			},
			field: "ingredients",
		},
		{
			name: "unknown ingredient",
			mutate: func(f *fixture, r *model.RecipeWriteRequest) {
				r.Ingredients[0].ID = uuid.New()
			},
			field: "ingredients",
		},
		{
			name: "unknown tag",
			mutate: func(f *fixture, r *model.RecipeWriteRequest) {
				r.Tags = []uuid.UUID{uuid.New()}
			},
			field: "tags",
		},
		{
			name: "zero cooking time",
			mutate: func(f *fixture, r *model.RecipeWriteRequest) {
				r.CookingTime = ptr(0)
			},
			field: "cooking_time",
		},
		{
			name: "missing image",
			mutate: func(f *fixture, r *model.RecipeWriteRequest) {
				r.Image = nil
			},
			field: "image",
		},
		{
			name: "broken image",
			mutate: func(f *fixture, r *model.RecipeWriteRequest) {
				r.Image = ptr("not-an-image")
			},
			field: "image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.createRequest()
			tt.mutate(f, &req)

			_, err := f.svc.Create(context.Background(), viewer.ForUser(f.chef.ID), req)

			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.KindInvalidRequest, appErr.Kind)
			assert.Contains(t, appErr.Fields, tt.field)
			assert.Zero(t, f.repo.writes)
			f.store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_RequiresAuthentication(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), viewer.Anonymous(), f.createRequest())
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestUpdate_ReplacesIngredientsAndTags(t *testing.T) {
	f := newFixture(t)
	rec := f.repo.addRecipe(f.chef.ID, "Омлет", map[uuid.UUID]string{f.eggs: "3", f.flour: "10"}, f.dinner)
	breakfast := f.repo.addTag("breakfast")

	resp, err := f.svc.Update(context.Background(), viewer.ForUser(f.chef.ID), rec.ID, model.RecipeWriteRequest{
		Ingredients: []model.IngredientAmount{{ID: f.eggs, Amount: decimal.NewFromInt(4)}},
		Tags:        []uuid.UUID{breakfast},
		CookingTime: ptr(15),
	})
	require.NoError(t, err)

	assert.Equal(t, "Омлет", resp.Name)
	assert.Equal(t, 15, resp.CookingTime)
	require.Len(t, resp.Ingredients, 1)
	assert.True(t, resp.Ingredients[0].Amount.Equal(decimal.NewFromInt(4)))
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "breakfast", resp.Tags[0].Slug)
	f.store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_DuplicateIngredientKeepsStoredRecipe(t *testing.T) {
	f := newFixture(t)
	rec := f.repo.addRecipe(f.chef.ID, "Омлет", map[uuid.UUID]string{f.eggs: "3"}, f.dinner)

	_, err := f.svc.Update(context.Background(), viewer.ForUser(f.chef.ID), rec.ID, model.RecipeWriteRequest{
		Ingredients: []model.IngredientAmount{
			{ID: f.eggs, Amount: decimal.NewFromInt(1)},
			{ID: f.eggs, Amount: decimal.NewFromInt(2)},
		},
		Tags: []uuid.UUID{f.dinner},
	})
	assert.Equal(t, apperror.KindInvalidRequest, apperror.KindOf(err))
	assert.Zero(t, f.repo.writes)
	require.Len(t, f.repo.ingredients[rec.ID], 1)
	assert.True(t, f.repo.ingredients[rec.ID][0].Amount.Equal(decimal.NewFromInt(3)))
}

func TestUpdate_OnlyAuthor(t *testing.T) {
	f := newFixture(t)
	rec := f.repo.addRecipe(f.chef.ID, "Омлет", map[uuid.UUID]string{f.eggs: "3"}, f.dinner)

	_, err := f.svc.Update(context.Background(), viewer.ForUser(f.guest.ID), rec.ID, f.createRequest())
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = f.svc.Update(context.Background(), viewer.ForUser(f.chef.ID), uuid.New(), f.createRequest())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	assert.Zero(t, f.repo.writes)
}

func TestUpdate_NewImageReplacesOld(t *testing.T) {
	f := newFixture(t)
	rec := f.repo.addRecipe(f.chef.ID, "Омлет", map[uuid.UUID]string{f.eggs: "3"}, f.dinner)
	f.store.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").Return("http://minio/new.jpg", nil).Once()
	f.store.On("Delete", mock.Anything, "recipes/seed.jpg").Return(nil).Once()

	resp, err := f.svc.Update(context.Background(), viewer.ForUser(f.chef.ID), rec.ID, f.createRequest())
	require.NoError(t, err)
	assert.Equal(t, "http://minio/new.jpg", resp.Image)
	f.store.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	rec := f.repo.addRecipe(f.chef.ID, "Омлет", map[uuid.UUID]string{f.eggs: "3"}, f.dinner)
	f.store.On("DeleteByPrefix", mock.Anything, "recipes/"+rec.ID.String()+"/").Return(errors.New("minio down")).Once()

	err := f.svc.Delete(context.Background(), viewer.ForUser(f.guest.ID), rec.ID)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	require.NoError(t, f.svc.Delete(context.Background(), viewer.ForUser(f.chef.ID), rec.ID))
	assert.NotContains(t, f.repo.recipes, rec.ID)
	f.store.AssertExpectations(t)
}

func TestGet_FlagsFollowViewer(t *testing.T) {
	f := newFixture(t)
	rec := f.repo.addRecipe(f.chef.ID, "Омлет", map[uuid.UUID]string{f.eggs: "3"}, f.dinner)
	f.repo.relations[relationKey{model.RelationFavorite, f.guest.ID, rec.ID}] = true
	f.authors.follow(f.guest.ID, f.chef.ID)

	anon, err := f.svc.Get(context.Background(), viewer.Anonymous(), rec.ID)
	require.NoError(t, err)
	assert.False(t, anon.IsFavorited)
	assert.False(t, anon.IsInShoppingCart)
	assert.False(t, anon.Author.IsSubscribed)

	asGuest, err := f.svc.Get(context.Background(), viewer.ForUser(f.guest.ID), rec.ID)
	require.NoError(t, err)
	assert.True(t, asGuest.IsFavorited)
	assert.False(t, asGuest.IsInShoppingCart)
	assert.True(t, asGuest.Author.IsSubscribed)

	_, err = f.svc.Get(context.Background(), viewer.Anonymous(), uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestList_FavoritedFilterIgnoredForAnonymous(t *testing.T) {
	f := newFixture(t)
	liked := f.repo.addRecipe(f.chef.ID, "Блины", map[uuid.UUID]string{f.flour: "100"}, f.dinner)
	f.repo.addRecipe(f.chef.ID, "Омлет", map[uuid.UUID]string{f.eggs: "3"}, f.dinner)
	f.repo.relations[relationKey{model.RelationFavorite, f.guest.ID, liked.ID}] = true
	f.repo.relations[relationKey{model.RelationShoppingCart, f.guest.ID, liked.ID}] = true
	f.authors.follow(f.guest.ID, f.chef.ID)

	filter := model.ListFilter{IsFavorited: true}
	page := paging.Params{Page: 1, Limit: 10}

	all, total, err := f.svc.List(context.Background(), viewer.Anonymous(), filter, page)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, all, 2)
	for _, item := range all {
		assert.False(t, item.IsFavorited, item.Name)
		assert.False(t, item.IsInShoppingCart, item.Name)
		assert.False(t, item.Author.IsSubscribed, item.Name)
	}

	mine, total, err := f.svc.List(context.Background(), viewer.ForUser(f.guest.ID), filter, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, mine, 1)
	assert.Equal(t, liked.ID, mine[0].ID)
	assert.True(t, mine[0].IsFavorited)
}
