package primitive

import "strings"

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindBool
	KindInt
	KindFloat
	KindString
	KindAny // untyped placeholder for null values

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// Name returns the Go type name emitted for this kind.
func (k KindEnum) Name() string {
	switch k {
	default:
		return ""
	case KindBool:
		return "bool"
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	case KindString:
		return "string"
	case KindAny:
		return "any"
	}
}

func (k KindEnum) String() string {
	if name := k.Name(); name != "" {
		return name
	}

	return "invalid"
}

// FromValue returns the kind for a decoded scalar value.
// Adapters normalize integers to int64 and floats to float64 before this is called.
// A nil value maps to KindAny.
func FromValue(v any) KindEnum {
	switch v.(type) {
	default:
		return 0
	case nil:
		return KindAny
	case bool:
		return KindBool
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case string:
		return KindString
	}
}

// TypeName returns the emitted type name for a decoded scalar value,
// or the untyped placeholder when the value is nil.
func TypeName(v any) string {
	if k := FromValue(v); k != 0 {
		return k.Name()
	}

	return KindAny.Name()
}

// IsTypeName returns true if name is a primitive type name or a list
// type expression. Such names are never registered for deduplication.
func IsTypeName(name string) bool {
	switch name {
	case "bool", "int64", "float64", "string", "any":
		return true
	}

	return name == "list" || strings.HasPrefix(name, "list<")
}
