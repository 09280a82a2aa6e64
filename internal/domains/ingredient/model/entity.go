package model

import "github.com/google/uuid"

const (
	MaxNameLength = 256
	MaxUnitLength = 14
)

// Ingredient là nguyên liệu dùng chung; name+unit không bắt buộc unique
type Ingredient struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}
