package model

// ValueKind tags the interpreted form of a metadata literal.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueBoolean
	ValueList
	ValueIdent
	ValueOpaque
)

// Value is the tagged variant for decorator metadata. Literals interpret to
// their literal value, arrays to their element source texts, identifiers
// and member accesses to their source text, and anything else to an opaque
// placeholder tagged with its syntactic kind. Interpretation never fails.
type Value struct {
	Kind ValueKind
	Str  string   // ValueString, ValueIdent, ValueOpaque
	Num  float64  // ValueNumber
	Bool bool     // ValueBoolean
	List []string // ValueList
}

// StringValue wraps a string literal.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// NumberValue wraps a numeric literal.
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Num: n} }

// BoolValue wraps a boolean literal.
func BoolValue(b bool) Value { return Value{Kind: ValueBoolean, Bool: b} }

// ListValue wraps a non-empty array literal's element source texts.
func ListValue(elems []string) Value { return Value{Kind: ValueList, List: elems} }

// IdentValue wraps a bare identifier or member-access source text.
func IdentValue(s string) Value { return Value{Kind: ValueIdent, Str: s} }

// OpaqueValue wraps an expression that is not evaluated, tagged with the
// syntactic kind of its node.
func OpaqueValue(syntaxKind string) Value {
	return Value{Kind: ValueOpaque, Str: "Opaque:" + syntaxKind}
}

// Interface returns the JSON-serializable form of the value.
func (v Value) Interface() any {
	switch v.Kind {
	case ValueNumber:
		return v.Num
	case ValueBoolean:
		return v.Bool
	case ValueList:
		return v.List
	default:
		return v.Str
	}
}

// Strings returns the value as a list of names: the elements of a list
// value, or the single text of a string or identifier value. Used when a
// decorator property names other entities.
func (v Value) Strings() []string {
	switch v.Kind {
	case ValueList:
		return v.List
	case ValueString, ValueIdent:
		if v.Str == "" {
			return nil
		}
		return []string{v.Str}
	default:
		return nil
	}
}
