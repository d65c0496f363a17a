package node

type KindEnum int

const (
	// KindValue is a scalar leaf or an object level with children.
	KindValue KindEnum = iota
	// KindList is an array level; its type expression is computed from
	// its children instead of being stored.
	KindList

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}
