package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchQuery_UsesLowerNameIndex(t *testing.T) {
	assert.Contains(t, searchQuery, "lower(name) LIKE lower($1) || '%'")
	assert.NotContains(t, searchQuery, "ILIKE")
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"мука":    "мука",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
		"":        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, escapeLike(in), in)
	}
}
