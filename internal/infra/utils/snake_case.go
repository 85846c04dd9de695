package utils

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts a camelCase or PascalCase string to snake_case.
// Sort keys arrive from API clients in camelCase and have to match the
// snake_case column names in the database.
//
// Examples:
//   - "camelCase" -> "camel_case"
//   - "PascalCase" -> "pascal_case"
//   - "XMLHttpRequest" -> "xml_http_request"
//   - "snake_case" -> "snake_case" (unchanged)
func ToSnakeCase(s string) string {
	if s == "" {
		return s
	}

	var result strings.Builder
	result.Grow(len(s) + len(s)/2)

	runes := []rune(s)
	for i, r := range runes {
		if i == 0 {
			result.WriteRune(unicode.ToLower(r))
			continue
		}

		if unicode.IsUpper(r) {
			// "camelCase" -> "camel_case"
			if unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) {
				result.WriteRune('_')
			} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				// "XMLHttpRequest" -> "xml_http_request"
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
