package schema

import (
	"bytes"
	"math/big"
	"reflect"

	"github.com/jinzhu/copier"

	"github.com/wireforge/rlpwire/pkg/rlp"
)

// Record is a structured value of one schema: a mapping from declared field
// name to typed value. Records are built either by Schema.NewRecord, which
// validates them, or by Schema.Decode, which populates every field from the
// wire.
type Record struct {
	schema *Schema
	values map[string]any
}

// Schema returns the schema the record belongs to.
func (r Record) Schema() *Schema {
	return r.schema
}

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// MustGet returns the value of the named field and panics if the field is
// not declared. Records are fully populated, so a missing name is always a
// programmer error.
func (r Record) MustGet(name string) any {
	v, ok := r.values[name]
	if !ok {
		panic("schema: no field " + name)
	}
	return v
}

// Clone returns a record with an independent field-value mapping; no mutable
// state is shared between the copy and the original.
func (r Record) Clone() Record {
	values := make(map[string]any, len(r.values))
	for name, val := range r.values {
		values[name] = deepCopyValue(val)
	}
	return Record{schema: r.schema, values: values}
}

func deepCopyValue(val any) any {
	switch x := val.(type) {
	case nil:
		return nil
	case bool, string, int, int64, uint, uint64:
		return x
	case []byte:
		p := make([]byte, len(x))
		copy(p, x)
		return p
	case *big.Int:
		return new(big.Int).Set(x)
	case rlp.Value:
		// Immutable once decoded.
		return x
	case []rlp.Value:
		p := make([]rlp.Value, len(x))
		copy(p, x)
		return p
	case []any:
		p := make([]any, len(x))
		for i, e := range x {
			p[i] = deepCopyValue(e)
		}
		return p
	case Record:
		return x.Clone()
	default:
		// Values produced by Custom codecs are arbitrary user types.
		out := reflect.New(reflect.TypeOf(val))
		if err := copier.CopyWithOption(out.Interface(), val, copier.Option{DeepCopy: true}); err != nil {
			return val
		}
		return out.Elem().Interface()
	}
}

// Equal reports whether both records belong to the same schema and hold
// deeply equal field values. Integers compare numerically, so a record built
// from defaults and one decoded from the wire compare equal.
func (r Record) Equal(other Record) bool {
	if r.schema != other.schema {
		return false
	}
	for name, val := range r.values {
		if !equalValue(val, other.values[name]) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	switch x := a.(type) {
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case *big.Int:
		y, ok := b.(*big.Int)
		return ok && x.Cmp(y) == 0
	case rlp.Value:
		y, ok := b.(rlp.Value)
		return ok && x.Equal(y)
	case []rlp.Value:
		y, ok := b.([]rlp.Value)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !x[i].Equal(y[i]) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalValue(x[i], y[i]) {
				return false
			}
		}
		return true
	case Record:
		y, ok := b.(Record)
		return ok && x.Equal(y)
	default:
		return reflect.DeepEqual(a, b)
	}
}
