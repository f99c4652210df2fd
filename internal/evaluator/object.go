package evaluator

import (
	"math"
	"strconv"
	"strings"
)

type ObjectType string

const (
	INTEGER_OBJ    = "INT"
	FLOAT_OBJ      = "FLOAT"
	STRING_OBJ     = "STRING"
	SYMBOL_OBJ     = "SYMBOL"
	FUNCTION_OBJ   = "FUNCTION"
	COLLECTION_OBJ = "COLLECTION"
	NULL_OBJ       = "NULL"
)

// Object is implemented by every runtime value. The set of implementations
// is closed: Integer, Float, String, Symbol, Function, Collection and Null.
type Object interface {
	Type() ObjectType
	Inspect() string
}

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string {
	s := strconv.FormatFloat(f.Value, 'g', -1, 64)
	if math.IsInf(f.Value, 0) || math.IsNaN(f.Value) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}

// String
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

// Null
type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "NULL" }

var NULL = &Null{}

var (
	TRUE  = &Integer{Value: 1}
	FALSE = &Integer{Value: 0}
)

// AsInt converts a numeric value to an integer, truncating floats.
func AsInt(o Object) (int64, error) {
	switch o := o.(type) {
	case *Integer:
		return o.Value, nil
	case *Float:
		return int64(o.Value), nil
	}
	return 0, newError(TypeError, "cannot convert %s to INT", o.Type())
}

// AsFloat converts a numeric value to a float.
func AsFloat(o Object) (float64, error) {
	switch o := o.(type) {
	case *Integer:
		return float64(o.Value), nil
	case *Float:
		return o.Value, nil
	}
	return 0, newError(TypeError, "cannot convert %s to FLOAT", o.Type())
}

// GetUnnamed reads the member at index. Strings yield the code point at
// that position.
func GetUnnamed(o Object, index int64) (Object, error) {
	switch o := o.(type) {
	case *Collection:
		return o.GetUnnamed(index)
	case *String:
		runes := []rune(o.Value)
		if index < 0 || index >= int64(len(runes)) {
			return nil, newError(AccessError, "index %d is out of bounds: length is %d", index, len(runes))
		}
		return &Integer{Value: int64(runes[index])}, nil
	}
	return nil, newError(TypeError, "cannot index %s", o.Type())
}

func GetNamed(o Object, name string) (Object, error) {
	if c, ok := o.(*Collection); ok {
		return c.GetNamed(name)
	}
	return nil, newError(TypeError, "cannot read member %s of %s", name, o.Type())
}

func SetUnnamed(o Object, index int64, value Object) error {
	if c, ok := o.(*Collection); ok {
		return c.SetUnnamed(index, value)
	}
	return newError(TypeError, "cannot assign index of %s", o.Type())
}

func SetNamed(o Object, name string, value Object) error {
	if c, ok := o.(*Collection); ok {
		return c.SetNamed(name, value)
	}
	return newError(TypeError, "cannot assign member %s of %s", name, o.Type())
}

// Clone deep-copies collections. All other values are immutable and are
// returned unchanged.
func Clone(o Object) Object {
	if c, ok := o.(*Collection); ok {
		return c.Clone()
	}
	return o
}

// typeRank orders the types that take part in operator coercion.
var typeRank = map[ObjectType]int{
	INTEGER_OBJ: 0,
	FLOAT_OBJ:   1,
	STRING_OBJ:  2,
	SYMBOL_OBJ:  3,
	NULL_OBJ:    5,
}

// CommonType returns the type both operands of a binary operator are
// converted to. Functions and collections have no common type with anything.
func CommonType(a, b ObjectType) (ObjectType, bool) {
	ra, okA := typeRank[a]
	rb, okB := typeRank[b]
	if !okA || !okB {
		return "", false
	}
	if ra >= rb {
		return a, true
	}
	return b, true
}

func nativeBoolToInteger(b bool) *Integer {
	if b {
		return TRUE
	}
	return FALSE
}

// isTruthy reports whether a condition value holds. Only numbers can be
// conditions.
func isTruthy(o Object) (bool, error) {
	v, err := AsInt(o)
	if err != nil {
		return false, newError(TypeError, "condition must be numeric, got %s", o.Type())
	}
	return v != 0, nil
}
