package shared

import "github.com/google/uuid"

// ShortRecipe là dạng rút gọn của recipe (để tránh import cycle giữa user và recipe domain).
// Dùng cho favorite/shopping cart response và danh sách recipe trong subscription.
type ShortRecipe struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}
