package model

import "foodgram-backend/internal/shared"

// ToResponse build UserResponse; isSubscribed đã được tính theo viewer
func (u *User) ToResponse(isSubscribed bool) UserResponse {
	return UserResponse{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

// ToSubscription build SubscriptionResponse. Recipes nil được đổi thành slice rỗng
// để JSON luôn là [] thay vì null.
func (u *User) ToSubscription(isSubscribed bool, recipes AuthorRecipes) SubscriptionResponse {
	items := recipes.Recipes
	if items == nil {
		items = []shared.ShortRecipe{}
	}
	return SubscriptionResponse{
		UserResponse: u.ToResponse(isSubscribed),
		Recipes:      items,
		RecipesCount: recipes.Total,
	}
}
