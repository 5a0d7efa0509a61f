package pkg

import (
	"strconv"
	"strings"
)

// ParseKilos parses a free-text weight value like "72.5kg", " 80 Kg " or
// "65". The "kg" suffix is optional and case-insensitive. Unparseable
// values are reported as an error so chart builders can skip them while
// raw/tabular views keep showing the original text.
func ParseKilos(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if strings.HasSuffix(strings.ToLower(trimmed), "kg") {
		trimmed = strings.TrimSpace(trimmed[:len(trimmed)-2])
	}
	return strconv.ParseFloat(trimmed, 64)
}

// ParseOptionalFloat parses numeric free-text fields where the empty string
// means "not provided" (distinct from zero).
func ParseOptionalFloat(value string) (_ float64, provided bool, err error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, true, err
	}
	return parsed, true, nil
}
