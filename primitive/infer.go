package primitive

import (
	"strconv"
	"strings"
)

// Infer applies the lexical typing rules for INI values, where every
// raw value is textually a string:
//   - case-insensitive "true"/"false" is a bool
//   - all digits is an integer
//   - all digits after replacing commas with dots and removing exactly
//     one dot is a float (a single fractional separator, "," or ".")
//   - anything else stays a string
func Infer(raw string) KindEnum {
	if strings.EqualFold(raw, "true") || strings.EqualFold(raw, "false") {
		return KindBool
	}

	if allDigits(raw) {
		return KindInt
	}

	normalized := strings.ReplaceAll(raw, ",", ".")
	if allDigits(strings.Replace(normalized, ".", "", 1)) {
		return KindFloat
	}

	return KindString
}

// InferValue converts a raw INI value into its inferred typed form.
func InferValue(raw string) any {
	switch Infer(raw) {
	default:
		return raw
	case KindBool:
		return strings.EqualFold(raw, "true")
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return raw
		}

		return n
	case KindFloat:
		f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil {
			return raw
		}

		return f
	}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
