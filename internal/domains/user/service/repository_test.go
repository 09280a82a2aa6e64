package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/shared"
)

type followKey struct {
	user, author uuid.UUID
}

// memoryRepository giữ đúng ràng buộc unique của users/follows
type memoryRepository struct {
	users   map[uuid.UUID]*model.User
	follows map[followKey]time.Time
	recipes map[uuid.UUID][]shared.ShortRecipe
	clock   time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users:   map[uuid.UUID]*model.User{},
		follows: map[followKey]time.Time{},
		recipes: map[uuid.UUID][]shared.ShortRecipe{},
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memoryRepository) addUser(username string) *model.User {
	u := &model.User{ID: uuid.New(), Email: username + "@example.com", Username: username, FirstName: "F", LastName: "L"}
	r.users[u.ID] = u
	return u
}

func (r *memoryRepository) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return model.ErrEmailAlreadyExists
		}
		if existing.Username == u.Username {
			return model.ErrUsernameExists
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, model.ErrUserNotFound
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *memoryRepository) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.User, error) {
	out := map[uuid.UUID]*model.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (r *memoryRepository) List(_ context.Context, offset, limit int) ([]*model.User, int, error) {
	all := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	return window(all, offset, limit), len(all), nil
}

func (r *memoryRepository) CreateFollow(_ context.Context, userID, authorID uuid.UUID) error {
	key := followKey{userID, authorID}
	if _, ok := r.follows[key]; ok {
		return model.ErrAlreadyFollowing
	}
	r.clock = r.clock.Add(time.Second)
	r.follows[key] = r.clock
	return nil
}

func (r *memoryRepository) DeleteFollow(_ context.Context, userID, authorID uuid.UUID) (bool, error) {
	key := followKey{userID, authorID}
	_, ok := r.follows[key]
	delete(r.follows, key)
	return ok, nil
}

func (r *memoryRepository) IsFollowing(_ context.Context, userID, authorID uuid.UUID) (bool, error) {
	_, ok := r.follows[followKey{userID, authorID}]
	return ok, nil
}

func (r *memoryRepository) FollowingSet(_ context.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := map[uuid.UUID]bool{}
	for _, id := range authorIDs {
		if _, ok := r.follows[followKey{userID, id}]; ok {
			set[id] = true
		}
	}
	return set, nil
}

func (r *memoryRepository) ListFollowing(_ context.Context, userID uuid.UUID, offset, limit int) ([]*model.User, int, error) {
	type entry struct {
		user *model.User
		at   time.Time
	}
	var entries []entry
	for k, at := range r.follows {
		if k.user == userID {
			entries = append(entries, entry{r.users[k.author], at})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].at.After(entries[j].at) })

	users := make([]*model.User, 0, len(entries))
	for _, e := range entries {
		users = append(users, e.user)
	}
	return window(users, offset, limit), len(users), nil
}

func (r *memoryRepository) RecipesByAuthors(_ context.Context, authorIDs []uuid.UUID, limit *int) (map[uuid.UUID]model.AuthorRecipes, error) {
	out := map[uuid.UUID]model.AuthorRecipes{}
	for _, id := range authorIDs {
		recipes := r.recipes[id]
		if len(recipes) == 0 {
			continue
		}
		shown := recipes
		if limit != nil && *limit < len(shown) {
			shown = shown[:*limit]
		}
		out[id] = model.AuthorRecipes{Recipes: shown, Total: len(recipes)}
	}
	return out, nil
}

func window(users []*model.User, offset, limit int) []*model.User {
	if offset >= len(users) {
		return []*model.User{}
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end]
}
