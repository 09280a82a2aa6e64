package utils

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatHyphens = regexp.MustCompile(`-+`)
)

// GenerateSlug: "Завтрак с яйцом" → "zavtrak-s-yaicom"
func GenerateSlug(input string) string {
	// Step 1: transliterate Cyrillic sang ASCII
	ascii := Transliterate(strings.ToLower(input))

	// Step 2: spaces → hyphens, bỏ ký tự đặc biệt
	hyphenated := strings.ReplaceAll(ascii, " ", "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")

	// Step 3: gộp hyphen liên tiếp, trim hai đầu
	normalized := repeatHyphens.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "i", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Transliterate đổi chữ Cyrillic thường sang Latin, ký tự khác giữ nguyên
func Transliterate(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if repl, ok := cyrillic[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
