package ast

import "github.com/codeassociates/llvmlang/internal/token"

// DatatypeKind is the closed sum of type shapes a declared or inferred
// datatype can take.
type DatatypeKind int

const (
	U8 DatatypeKind = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	Bool
	String
	Array
	Custom
	None
)

// Datatype is the recursive type sum of the language: primitive kinds,
// String(len), Array{elem, len}, Custom(name), or None (no type, e.g. a
// function with no return value).
type Datatype struct {
	Kind DatatypeKind

	// Array
	Elem *Datatype
	Len  uint32

	// String: declared buffer length, 0 when the length is not statically
	// known (the runtime representation is always the two-word
	// {length, data} struct regardless of this field — see codegen).
	StrLen uint32

	// Custom
	Name string

	// Mutable is carried on the type as parsed (trailing '!') so LetStmt
	// can thread it straight into the variable table without a second
	// field.
	Mutable bool
}

func FromBaseType(b token.BaseType) *Datatype {
	switch b {
	case token.U8:
		return &Datatype{Kind: U8}
	case token.U16:
		return &Datatype{Kind: U16}
	case token.U32:
		return &Datatype{Kind: U32}
	case token.U64:
		return &Datatype{Kind: U64}
	case token.I8:
		return &Datatype{Kind: I8}
	case token.I16:
		return &Datatype{Kind: I16}
	case token.I32:
		return &Datatype{Kind: I32}
	case token.I64:
		return &Datatype{Kind: I64}
	case token.F32:
		return &Datatype{Kind: F32}
	case token.F64:
		return &Datatype{Kind: F64}
	case token.BoolType:
		return &Datatype{Kind: Bool}
	case token.StringType:
		return &Datatype{Kind: String}
	default:
		return &Datatype{Kind: None}
	}
}

// IsInt reports whether the datatype is a fixed-width integer kind.
func (d *Datatype) IsInt() bool {
	switch d.Kind {
	case U8, U16, U32, U64, I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether the integer kind is signed (i.e. an I* kind).
// Binary arithmetic on U* kinds is still emitted with signed IR
// instructions (see emitBinaryOp), but casts need to know the source-level
// signedness to pick sign- vs zero-extension.
func (d *Datatype) IsSigned() bool {
	switch d.Kind {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the datatype is a floating-point kind.
func (d *Datatype) IsFloat() bool { return d.Kind == F32 || d.Kind == F64 }

// Bits returns the bit width of an integer kind.
func (d *Datatype) Bits() int {
	switch d.Kind {
	case U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32:
		return 32
	case U64, I64:
		return 64
	default:
		return 0
	}
}

// Equal reports structural equality, ignoring Mutable (mutability is a
// declaration-site property, not part of a type's identity for comparison
// purposes such as cast-rule checks).
func (d *Datatype) Equal(other *Datatype) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Kind != other.Kind {
		return false
	}
	switch d.Kind {
	case Array:
		return d.Len == other.Len && d.Elem.Equal(other.Elem)
	case Custom:
		return d.Name == other.Name
	default:
		return true
	}
}
