// Package schema maps untyped RLP trees to strongly-typed record values. A
// Schema is an ordered, statically declared list of (name, type) fields; it
// encodes and decodes whole records field by field in declared order, each
// field through the type-directed converter.
package schema

import (
	"github.com/pkg/errors"

	"github.com/wireforge/rlpwire/pkg/rlp"
)

// Codec is the capability interface for user-defined field types. A Custom
// field delegates both directions to its codec; *Schema satisfies Codec, so
// records nest inside records.
type Codec interface {
	DecodeRLPValue(v rlp.Value) (any, error)
	EncodeRLPValue(val any) (rlp.Value, error)
}

type kind int

const (
	kindRaw kind = iota
	kindBytes
	kindList
	kindInteger
	kindBool
	kindArray
	kindCustom
)

// FieldType describes the wire interpretation of one field. The zero value
// is Raw.
type FieldType struct {
	kind   kind
	elems  []FieldType
	custom Codec
}

// Primitive field types.
var (
	// Raw passes the decoded RLP value through without a shape constraint.
	Raw = FieldType{kind: kindRaw}
	// Bytes requires a byte string and yields []byte.
	Bytes = FieldType{kind: kindBytes}
	// List requires a list and yields its raw elements as []rlp.Value.
	List = FieldType{kind: kindList}
	// Integer interprets a byte string as an unsigned big-endian *big.Int.
	Integer = FieldType{kind: kindInteger}
	// Bool requires one of the two canonical boolean tokens.
	Bool = FieldType{kind: kindBool}
)

// Array declares a positionally typed list: element i uses types[i] while in
// range, and every further element reuses the last declared type. This
// supports a fixed prefix of distinct types followed by a homogeneous tail.
func Array(types ...FieldType) FieldType {
	return FieldType{kind: kindArray, elems: types}
}

// Custom declares a field handled entirely by the given codec.
func Custom(c Codec) FieldType {
	return FieldType{kind: kindCustom, custom: c}
}

// at returns the type for array element i, reusing the tail type beyond the
// declared count.
func (t FieldType) at(i int) FieldType {
	if i >= len(t.elems) {
		return t.elems[len(t.elems)-1]
	}
	return t.elems[i]
}

// validate checks, recursively through Array, that the type resolves to a
// primitive or a usable Custom codec. Called once at schema definition time.
func (t FieldType) validate() error {
	switch t.kind {
	case kindRaw, kindBytes, kindList, kindInteger, kindBool:
		return nil
	case kindArray:
		if len(t.elems) == 0 {
			return errors.Wrap(ErrInvalidFieldType, "array with no element types")
		}
		for i, e := range t.elems {
			if err := e.validate(); err != nil {
				return errors.Wrapf(err, "array element type %d", i)
			}
		}
		return nil
	case kindCustom:
		if t.custom == nil {
			return errors.Wrap(ErrInvalidFieldType, "custom type with nil codec")
		}
		return nil
	default:
		return errors.Wrapf(ErrInvalidFieldType, "unknown kind %d", t.kind)
	}
}
