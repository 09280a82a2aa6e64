package paging

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/recipes?"+query, nil)
	return c
}

func TestFromQuery(t *testing.T) {
	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: 6}},
		{"page=3&limit=10", Params{Page: 3, Limit: 10}},
		{"page=-1&limit=abc", Params{Page: 1, Limit: 6}},
		{"limit=1000", Params{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, FromQuery(contextWithQuery(tt.query), 6, 100))
		})
	}
}

func TestOffsetAndMeta(t *testing.T) {
	p := Params{Page: 3, Limit: 10}

	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 42, p.Meta(42).Total)
}
