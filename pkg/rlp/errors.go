package rlp

import "github.com/pkg/errors"

var (
	// ErrTruncated is returned when the input ends before a required byte
	// of a tag, length field or payload was available.
	ErrTruncated = errors.New("rlp: input truncated")
	// ErrLengthOverflow is returned when a declared payload length exceeds
	// the remaining input.
	ErrLengthOverflow = errors.New("rlp: declared length exceeds remaining input")
	// ErrNonCanonical is returned when an item is encoded in a redundant,
	// non-minimal form: a long-form prefix for a payload that fits the
	// short form, a leading zero byte in a long-form length field, or a
	// single byte below 0x80 wrapped in a string prefix.
	ErrNonCanonical = errors.New("rlp: non-canonical encoding")
	// ErrTrailingBytes is returned by Decode when input remains after the
	// first complete item.
	ErrTrailingBytes = errors.New("rlp: trailing bytes after value")

	// ErrValueIsList is returned by Bytes on a list value.
	ErrValueIsList = errors.New("rlp: value is a list, not a byte string")
	// ErrValueIsBytes is returned by Elems on a byte string value.
	ErrValueIsBytes = errors.New("rlp: value is a byte string, not a list")
)
