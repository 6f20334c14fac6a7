package schema

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/wireforge/rlpwire/pkg/rlp"
)

// Field declares one schema entry. Default, when non-nil, is the class-level
// value used for the field whenever the caller does not supply one.
type Field struct {
	Name    string
	Type    FieldType
	Default any
}

// Schema is an ordered, immutable field declaration for one record type. The
// wire format is strictly positional: field order is the wire order, and
// reordering fields is a breaking wire-format change. A Schema is declared
// once, validated at construction, and safe for unlimited concurrent use
// afterwards.
type Schema struct {
	name   string
	fields []Field
	index  *orderedmap.OrderedMap[string, int]
}

// New builds and validates a schema. Field types are checked recursively;
// a failure here is a programmer error and should be treated as fatal where
// schemas are registered.
func New(name string, fields ...Field) (*Schema, error) {
	index := orderedmap.NewOrderedMap[string, int]()
	for i, f := range fields {
		if f.Name == "" {
			return nil, errors.Wrapf(ErrInvalidFieldType, "field %d has empty name", i)
		}
		if _, ok := index.Get(f.Name); ok {
			return nil, errors.Wrapf(ErrDuplicateField, "%q", f.Name)
		}
		if err := f.Type.validate(); err != nil {
			return nil, errors.Wrapf(err, "field %q", f.Name)
		}
		index.Set(f.Name, i)
	}
	return &Schema{name: name, fields: fields, index: index}, nil
}

// MustNew is New for static schema declarations; it panics on definition
// errors.
func MustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema's record type name.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns the declared fields in order. The caller must not modify
// the returned slice.
func (s *Schema) Fields() []Field {
	return s.fields
}

// NewRecord builds a record by merging the caller's values over the declared
// defaults, then validating that every field is present. Integer fields
// accept int, int64, uint and uint64 and are normalized to *big.Int.
func (s *Schema) NewRecord(values map[string]any) (Record, error) {
	merged := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		if f.Default != nil {
			merged[f.Name] = f.Default
		}
	}
	for name, val := range values {
		if _, ok := s.index.Get(name); !ok {
			return Record{}, errors.Wrapf(ErrUnknownField, "%q", name)
		}
		merged[name] = val
	}
	for _, f := range s.fields {
		val, ok := merged[f.Name]
		if !ok {
			return Record{}, errors.Wrapf(ErrMissingField, "%q", f.Name)
		}
		norm, err := normalizeValue(val, f.Type)
		if err != nil {
			return Record{}, errors.Wrapf(err, "field %q", f.Name)
		}
		merged[f.Name] = norm
	}
	return Record{schema: s, values: merged}, nil
}

// Encode serializes every declared field of the record in declared order.
func (s *Schema) Encode(r Record) ([]byte, error) {
	return s.encode(r, nil, nil)
}

// EncodeSkip serializes the record with the named fields removed from the
// full ordered field set.
func (s *Schema) EncodeSkip(r Record, skip ...string) ([]byte, error) {
	return s.encode(r, skip, nil)
}

// EncodeOnly serializes exactly the named fields, in schema order. A
// whitelist takes precedence over any skip set.
func (s *Schema) EncodeOnly(r Record, names ...string) ([]byte, error) {
	return s.encode(r, nil, names)
}

func (s *Schema) encode(r Record, skip, whitelist []string) ([]byte, error) {
	v, err := s.encodeValue(r, skip, whitelist)
	if err != nil {
		return nil, err
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	buf.B = v.MarshalTo(buf.B)
	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

// EncodeRecordValue returns the intermediate list value of the record's full
// field set, for callers composing larger structures before serialization.
func (s *Schema) EncodeRecordValue(r Record) (rlp.Value, error) {
	return s.encodeValue(r, nil, nil)
}

func (s *Schema) encodeValue(r Record, skip, whitelist []string) (rlp.Value, error) {
	if r.schema != s {
		return rlp.Value{}, errors.Wrapf(ErrSchemaMismatch, "record encoded with %q", s.name)
	}
	fields, err := s.selectFields(skip, whitelist)
	if err != nil {
		return rlp.Value{}, err
	}
	elems := make([]rlp.Value, 0, len(fields))
	for _, f := range fields {
		v, err := EncodeWithType(r.values[f.Name], f.Type)
		if err != nil {
			return rlp.Value{}, errors.Wrapf(err, "field %q", f.Name)
		}
		elems = append(elems, v)
	}
	return rlp.List(elems...), nil
}

// selectFields applies whitelist or skip to the declared field set, always
// preserving declaration order.
func (s *Schema) selectFields(skip, whitelist []string) ([]Field, error) {
	if whitelist != nil {
		keep, err := s.nameSet(whitelist)
		if err != nil {
			return nil, err
		}
		out := make([]Field, 0, len(keep))
		for _, f := range s.fields {
			if keep[f.Name] {
				out = append(out, f)
			}
		}
		return out, nil
	}
	if skip != nil {
		drop, err := s.nameSet(skip)
		if err != nil {
			return nil, err
		}
		out := make([]Field, 0, len(s.fields)-len(drop))
		for _, f := range s.fields {
			if !drop[f.Name] {
				out = append(out, f)
			}
		}
		return out, nil
	}
	return s.fields, nil
}

func (s *Schema) nameSet(names []string) (map[string]bool, error) {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := s.index.Get(name); !ok {
			return nil, errors.Wrapf(ErrUnknownField, "%q", name)
		}
		set[name] = true
	}
	return set, nil
}

// Decode deserializes one record from its wire bytes. Fields are decoded
// strictly positionally against the declared types; the result is fully
// populated, so no defaulting applies.
func (s *Schema) Decode(data []byte) (Record, error) {
	v, err := rlp.Decode(data)
	if err != nil {
		return Record{}, errors.Wrapf(err, "record %q", s.name)
	}
	return s.DecodeRecordValue(v)
}

// DecodeRecordValue decodes a record from an already parsed RLP node.
func (s *Schema) DecodeRecordValue(v rlp.Value) (Record, error) {
	elems, err := v.Elems()
	if err != nil {
		return Record{}, errors.Wrapf(ErrTypeMismatch, "record %q: expected list, got byte string", s.name)
	}
	if len(elems) != len(s.fields) {
		return Record{}, errors.Wrapf(ErrTypeMismatch, "record %q: expected %d fields, got %d elements", s.name, len(s.fields), len(elems))
	}
	values := make(map[string]any, len(s.fields))
	for i, f := range s.fields {
		val, err := DecodeWithType(elems[i], f.Type)
		if err != nil {
			return Record{}, errors.Wrapf(err, "record %q: field %q", s.name, f.Name)
		}
		values[f.Name] = val
	}
	return Record{schema: s, values: values}, nil
}

// DecodeRLPValue implements Codec, so a schema can serve as a Custom field
// type of another schema.
func (s *Schema) DecodeRLPValue(v rlp.Value) (any, error) {
	r, err := s.DecodeRecordValue(v)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// EncodeRLPValue implements Codec.
func (s *Schema) EncodeRLPValue(val any) (rlp.Value, error) {
	r, ok := val.(Record)
	if !ok {
		return rlp.Value{}, errors.Wrapf(ErrTypeMismatch, "nested field wants Record of %q, got %T", s.name, val)
	}
	return s.encodeValue(r, nil, nil)
}

// normalizeValue coerces caller-supplied values to the canonical in-memory
// representation for the field type, so records built by hand and records
// decoded from the wire compare equal.
func normalizeValue(val any, t FieldType) (any, error) {
	switch t.kind {
	case kindInteger:
		return toBigInt(val)
	case kindArray:
		elems, ok := val.([]any)
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "array field wants []any, got %T", val)
		}
		out := make([]any, len(elems))
		for i, e := range elems {
			norm, err := normalizeValue(e, t.at(i))
			if err != nil {
				return nil, errors.Wrapf(err, "array element %d", i)
			}
			out[i] = norm
		}
		return out, nil
	default:
		return val, nil
	}
}
