// Package rlp implements the recursive length-prefix encoding: a canonical
// binary serialization of nested sequences of byte strings. A decoded item is
// an untyped tree of Value nodes; typed interpretation of the tree is the
// business of package schema.
package rlp

import (
	"fmt"
	"strings"
)

// Value is one node of a decoded RLP tree: either a byte string or an ordered
// list of sub-values. Values are immutable once produced by Decode.
type Value struct {
	str  []byte
	list []Value
	lst  bool
}

// Bytes creates a byte string value. The payload is copied.
func Bytes(b []byte) Value {
	p := make([]byte, len(b))
	copy(p, b)
	return Value{str: p}
}

// List creates a list value from the given elements.
func List(elems ...Value) Value {
	return Value{list: elems, lst: true}
}

// IsList reports whether the value is a list.
func (v Value) IsList() bool {
	return v.lst
}

// Bytes returns the byte string payload of the value.
func (v Value) Bytes() ([]byte, error) {
	if v.lst {
		return nil, ErrValueIsList
	}
	return v.str, nil
}

// Elems returns the ordered elements of a list value.
func (v Value) Elems() ([]Value, error) {
	if !v.lst {
		return nil, ErrValueIsBytes
	}
	return v.list, nil
}

// Equal reports structural equality of two values.
func (v Value) Equal(other Value) bool {
	if v.lst != other.lst {
		return false
	}
	if !v.lst {
		return string(v.str) == string(other.str)
	}
	if len(v.list) != len(other.list) {
		return false
	}
	for i := range v.list {
		if !v.list[i].Equal(other.list[i]) {
			return false
		}
	}
	return true
}

// String renders the value as a readable tree, byte strings in hex.
func (v Value) String() string {
	if !v.lst {
		return fmt.Sprintf("%x", v.str)
	}
	parts := make([]string, len(v.list))
	for i, e := range v.list {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
