package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SeedIngredient là một dòng của file ingredients.json
//
//	[{"name": "абрикосовое варенье", "measurement_unit": "г"}, ...]
type SeedIngredient struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func (s SeedIngredient) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&s.MeasurementUnit, validation.Required, validation.RuneLength(1, MaxUnitLength)),
	)
}

// Normalize trim khoảng trắng hai đầu
func (s SeedIngredient) Normalize() SeedIngredient {
	return SeedIngredient{
		Name:            strings.TrimSpace(s.Name),
		MeasurementUnit: strings.TrimSpace(s.MeasurementUnit),
	}
}
