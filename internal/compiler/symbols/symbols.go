package symbols

// Type is a primitive type of the language. TypeInvalid marks expressions
// whose type could not be determined because of an earlier error.
type Type int

const (
	TypeInvalid Type = iota
	TypeInt
	TypeFloat
	TypeChar
	TypeBoolean
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeChar:
		return "char"
	case TypeBoolean:
		return "boolean"
	default:
		return "invalid"
	}
}

func (t Type) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// AssignableTo reports whether a value of type t may be stored in a variable
// of type dst. int widens to float; everything else must match exactly.
func (t Type) AssignableTo(dst Type) bool {
	if t == dst {
		return true
	}
	return t == TypeInt && dst == TypeFloat
}

// Promote returns the result type of an arithmetic operation on two numeric
// operands.
func Promote(a, b Type) Type {
	if a == TypeFloat || b == TypeFloat {
		return TypeFloat
	}
	return TypeInt
}

type SymbolInfo struct {
	Name    string
	Type    Type
	IsArray bool
	Size    int64 // element count, arrays only

	// Declaration position
	Line   int
	Column int
}
