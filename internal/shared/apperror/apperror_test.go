package apperror

import (
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFound("RCP001", "recipe not found", nil))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrConflict))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Conflict("FAV001", "already in favorites", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "already in favorites: duplicate key", err.Error())
}

func TestFromValidation(t *testing.T) {
	type payload struct {
		Name string
		Time int
	}
	p := payload{}
	verr := validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required.Error("name is required")),
		validation.Field(&p.Time, validation.Min(1).Error("too short")),
	)
	require.Error(t, verr)

	err := FromValidation("RCP_VALIDATION", verr)

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindInvalidRequest, appErr.Kind)
	assert.Equal(t, "name is required", appErr.Fields["Name"])
}

func TestFromValidation_Nil(t *testing.T) {
	assert.NoError(t, FromValidation("X", nil))
}
