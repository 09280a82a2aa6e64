package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"foodgram-backend/internal/domains/recipe/model"
)

type shoppingKey struct {
	name string
	unit string
}

// AggregateShoppingList gộp các dòng theo (name, unit), cộng amount và
// trả mỗi nhóm một dòng "name - amount unit", sắp xếp theo name rồi unit.
// Cart rỗng → slice rỗng.
func AggregateShoppingList(lines []model.CartLine) []string {
	totals := make(map[shoppingKey]decimal.Decimal, len(lines))
	for _, line := range lines {
		key := shoppingKey{name: line.Name, unit: line.MeasurementUnit}
		totals[key] = totals[key].Add(line.Amount)
	}

	keys := make([]shoppingKey, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].unit < keys[j].unit
	})

	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, fmt.Sprintf("%s - %s %s", key.name, totals[key].String(), key.unit))
	}
	return out
}
