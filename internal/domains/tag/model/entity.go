package model

import "github.com/google/uuid"

const MaxNameLength = 200

// Palette cho phép của Tag.Color
const (
	ColorPink   = "#FF69B4"
	ColorSalmon = "#FA8072"
	ColorGreen  = "#32CD32"
	ColorBlue   = "#87CEFA"
	ColorSand   = "#F4A460"
)

var Colors = []string{ColorPink, ColorSalmon, ColorGreen, ColorBlue, ColorSand}

// Tag: name, color và slug đều unique
type Tag struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}
