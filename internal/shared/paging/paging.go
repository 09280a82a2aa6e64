package paging

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/shared/response"
)

// Params là page/limit đã chuẩn hoá (page bắt đầu từ 1)
type Params struct {
	Page  int
	Limit int
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta build response meta cho tổng total bản ghi
func (p Params) Meta(total int) *response.Meta {
	return &response.Meta{Page: p.Page, Limit: p.Limit, Total: total}
}

// FromQuery đọc ?page=&limit=; giá trị sai rơi về mặc định, limit bị chặn ở maxLimit
func FromQuery(c *gin.Context, defaultLimit, maxLimit int) Params {
	p := Params{Page: 1, Limit: defaultLimit}

	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}
