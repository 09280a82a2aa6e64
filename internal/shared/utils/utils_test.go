package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "zavtrak", GenerateSlug("Завтрак"))
	assert.Equal(t, "uzhin-na-dvoih", GenerateSlug("Ужин  на двоих!"))
	assert.Equal(t, "lunch-2", GenerateSlug("  Lunch #2 "))
}

func TestWhereBuilder(t *testing.T) {
	var w WhereBuilder
	assert.Equal(t, "", w.SQL())

	w.Add("r.author_id = ?", "a")
	w.Add("EXISTS (SELECT 1 FROM favorites f WHERE f.user_id = ?)", "u")
	limit := w.Arg(10)

	assert.Equal(t, "WHERE r.author_id = $1 AND EXISTS (SELECT 1 FROM favorites f WHERE f.user_id = $2)", w.SQL())
	assert.Equal(t, "$3", limit)
	assert.Equal(t, []any{"a", "u", 10}, w.Args())
}
