// Package semantic implements Nova's bidirectional type checker: no
// unification variables, no inference engine -- every literal and
// expression is checked against a concrete expected type (or synthesizes
// one), the way the function signature and let-annotations already
// pin down in source. Scope is a plain push/pop stack, one frame per
// block.
package semantic

import "fmt"

// TypeInfo is any resolved type value the checker works with.
type TypeInfo interface {
	typeInfoNode()
	String() string
}

// Primitive is a built-in scalar type, identified by its source name
// (i32, u8, f64, bool, char, str, the unit type "()", and the bottom
// type "!"). Two primitives are equal only when their names match
// exactly -- i32 and i64 are distinct types here, unlike the
// collapsed-to-"Int" shortcut this checker was grounded against.
type Primitive struct{ Name string }

func (Primitive) typeInfoNode()    {}
func (p Primitive) String() string { return p.Name }

var (
	Unit    = Primitive{Name: "()"}
	Never   = Primitive{Name: "!"}
	Bool    = Primitive{Name: "bool"}
	Char    = Primitive{Name: "char"}
	Str     = Primitive{Name: "str"}
	DefaultInt   = Primitive{Name: "i32"}
	DefaultFloat = Primitive{Name: "f64"}
)

var integerNames = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true,
}

var floatNames = map[string]bool{"f32": true, "f64": true}

// IsInteger reports whether name is one of Nova's fixed-width integer
// primitives.
func IsInteger(name string) bool { return integerNames[name] }

// IsFloat reports whether name is one of Nova's floating-point primitives.
func IsFloat(name string) bool { return floatNames[name] }

// Named is a reference to a user-declared struct or enum by name.
type Named struct{ Name string }

func (Named) typeInfoNode()    {}
func (n Named) String() string { return n.Name }

// Tuple is a fixed-arity product type.
type Tuple struct{ Elements []TypeInfo }

func (Tuple) typeInfoNode() {}
func (t Tuple) String() string {
	s := "("
	for i, e := range t.Elements {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// Array is a fixed-length `[T; N]`. Len is -1 when the length expression
// could not be evaluated as a constant.
type Array struct {
	Element TypeInfo
	Len     int64
}

func (Array) typeInfoNode() {}
func (a Array) String() string {
	return fmt.Sprintf("[%s; %d]", a.Element, a.Len)
}

// Slice is an unsized `[T]` view.
type Slice struct{ Element TypeInfo }

func (Slice) typeInfoNode()    {}
func (s Slice) String() string { return "[" + s.Element.String() + "]" }

// Ref is a `&T` or `&mut T` reference.
type Ref struct {
	Mutable bool
	Inner   TypeInfo
}

func (Ref) typeInfoNode() {}
func (r Ref) String() string {
	if r.Mutable {
		return "&mut " + r.Inner.String()
	}
	return "&" + r.Inner.String()
}

// Func is a function's (or closure's) signature.
type Func struct {
	Params []TypeInfo
	Return TypeInfo
}

func (Func) typeInfoNode() {}
func (f Func) String() string {
	s := "fn("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") -> " + f.Return.String()
}

// Unknown stands in for a type the checker could not determine --
// typically the un-annotated `_` inference placeholder, or the result of
// an earlier error. It compares equal to everything, so one failure does
// not cascade into a wall of follow-on mismatches.
type Unknown struct{}

func (Unknown) typeInfoNode()    {}
func (Unknown) String() string   { return "_" }

// Equal reports whether a and b denote the same type. Unknown is treated
// as a wildcard in both positions.
func Equal(a, b TypeInfo) bool {
	if _, ok := a.(Unknown); ok {
		return true
	}
	if _, ok := b.(Unknown); ok {
		return true
	}
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av.Name == bv.Name
	case Named:
		bv, ok := b.(Named)
		return ok && av.Name == bv.Name
	case Tuple:
		bv, ok := b.(Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case Array:
		bv, ok := b.(Array)
		return ok && av.Len == bv.Len && Equal(av.Element, bv.Element)
	case Slice:
		bv, ok := b.(Slice)
		return ok && Equal(av.Element, bv.Element)
	case Ref:
		bv, ok := b.(Ref)
		return ok && av.Mutable == bv.Mutable && Equal(av.Inner, bv.Inner)
	case Func:
		bv, ok := b.(Func)
		if !ok || len(av.Params) != len(bv.Params) || !Equal(av.Return, bv.Return) {
			return false
		}
		for i := range av.Params {
			if !Equal(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
