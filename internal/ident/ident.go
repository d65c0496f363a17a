// Package ident provides the pure string transforms that turn raw
// configuration keys into valid Go-style identifiers.
//
// Two forms exist: the field form (lower snake case, used as the node
// name) and the class form (Pascal case, used as the inferred type
// name). Both start by transliterating German umlauts and replacing
// every character outside [A-Za-z0-9_] with a placeholder.
package ident

import (
	"strings"
	"unicode"
)

// FieldName returns a valid field identifier in lower snake case.
// All-uppercase tokens are folded to lower case, camelCase runs are
// split at lowercase-to-uppercase transitions, and a "field_" prefix
// is added when the result would start with a digit.
// The empty string is returned when nothing usable remains.
func FieldName(name string) string {
	adjusted := replaceInvalid(name, '_')

	var words []string
	for _, word := range strings.Split(adjusted, "_") {
		if word == "" {
			continue
		}

		if isUpperWord(word) {
			words = append(words, strings.ToLower(word))
		} else {
			words = append(words, word)
		}
	}

	fieldName := snakeCamelRuns(strings.Join(words, "_"))

	if fieldName != "" && unicode.IsDigit(rune(fieldName[0])) {
		fieldName = "field_" + fieldName
	}

	return strings.ToLower(fieldName)
}

// ClassName returns a valid type name in Pascal case. Underscores are
// treated as snake case separators, all-uppercase tokens keep only
// their first letter capitalized so intentional Pascal casing survives,
// and a "Model" prefix is added when the result would be empty or
// start with a digit.
func ClassName(name string) string {
	className := replaceInvalid(name, ' ')

	if strings.Contains(className, "_") {
		var words []string
		for _, word := range strings.Split(className, "_") {
			if word == "" {
				continue
			}

			// capitalize folds the tail to lower case, so it is only
			// applied to all-uppercase tokens; mixed casing is kept.
			if isUpperWord(word) {
				words = append(words, capitalize(word))
			} else {
				words = append(words, upperFirst(word))
			}
		}

		className = strings.Join(words, " ")
	}

	if isUpperWord(className) {
		className = capitalize(className)
	}

	var sb strings.Builder
	for _, word := range strings.Fields(className) {
		sb.WriteString(upperFirst(word))
	}

	// The check runs on the collapsed result so placeholder-only
	// inputs still get the prefix.
	className = sb.String()
	if className == "" || unicode.IsDigit(rune(className[0])) {
		className = "Model" + className
	}

	return className
}

// replaceInvalid transliterates ä, ö, ü and ß and substitutes the
// placeholder for every other character outside [A-Za-z0-9_].
func replaceInvalid(name string, placeholder rune) string {
	var sb strings.Builder

	for _, r := range name {
		switch unicode.ToLower(r) {
		case 'ä':
			sb.WriteString("ae")
		case 'ö':
			sb.WriteString("oe")
		case 'ü':
			sb.WriteString("ue")
		case 'ß':
			sb.WriteString("ss")
		default:
			if r == '_' || isASCIIAlphanumeric(r) {
				sb.WriteRune(r)
			} else {
				sb.WriteRune(placeholder)
			}
		}
	}

	return sb.String()
}

// snakeCamelRuns inserts an underscore at every lowercase-to-uppercase
// transition, e.g. "camelCase" -> "camel_Case".
func snakeCamelRuns(s string) string {
	var sb strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			sb.WriteRune('_')
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// isUpperWord reports whether the word contains at least one letter
// and no lowercase letters.
func isUpperWord(s string) bool {
	hasLetter := false

	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}

		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}

	return hasLetter
}

func isASCIIAlphanumeric(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// capitalize uppercases the first letter and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return ""
	}

	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// upperFirst uppercases the first letter and keeps the rest verbatim.
func upperFirst(s string) string {
	if s == "" {
		return ""
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
