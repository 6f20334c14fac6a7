package schema

import "github.com/pkg/errors"

var (
	// ErrTypeMismatch is returned when a decoded shape or a supplied Go
	// value does not match the requested field type.
	ErrTypeMismatch = errors.New("schema: value does not match field type")
	// ErrInvalidBool is returned when a byte sequence is neither the
	// canonical true nor the canonical false encoding.
	ErrInvalidBool = errors.New("schema: invalid boolean encoding")
	// ErrMissingField is returned when a declared field is absent after
	// merging caller values over defaults.
	ErrMissingField = errors.New("schema: missing field")
	// ErrInvalidFieldType is returned at schema definition time for a
	// field type that does not resolve to a primitive, a valid Array or a
	// Custom codec. It is a programmer error, never a data error.
	ErrInvalidFieldType = errors.New("schema: invalid field type")
	// ErrDuplicateField is returned at schema definition time when two
	// fields share a name.
	ErrDuplicateField = errors.New("schema: duplicate field name")
	// ErrUnknownField is returned for a field name not declared by the
	// schema.
	ErrUnknownField = errors.New("schema: unknown field")
	// ErrSchemaMismatch is returned when a record is passed to a schema it
	// does not belong to.
	ErrSchemaMismatch = errors.New("schema: record belongs to a different schema")
)
