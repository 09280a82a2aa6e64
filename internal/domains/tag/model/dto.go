package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"foodgram-backend/internal/shared/utils"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// SeedTag là một dòng của tags.json; slug rỗng sẽ được sinh từ name
type SeedTag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func (s SeedTag) Normalize() SeedTag {
	out := SeedTag{
		Name:  strings.TrimSpace(s.Name),
		Color: strings.ToUpper(strings.TrimSpace(s.Color)),
		Slug:  strings.TrimSpace(s.Slug),
	}
	if out.Slug == "" {
		out.Slug = utils.GenerateSlug(out.Name)
	}
	return out
}

func (s SeedTag) Validate() error {
	colors := make([]interface{}, len(Colors))
	for i, c := range Colors {
		colors[i] = c
	}
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&s.Color, validation.Required, validation.In(colors...).Error("color must be one of the palette values")),
		validation.Field(&s.Slug, validation.Required, validation.Length(1, MaxNameLength), validation.Match(slugPattern)),
	)
}
