package schema

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/wireforge/rlpwire/pkg/rlp"
)

var (
	trueToken  = []byte{0x01}
	falseToken []byte
)

// Decode parses data as one RLP item and converts it against the given field
// type. Decode(data, Raw) yields the untyped rlp.Value tree.
func Decode(data []byte, t FieldType) (any, error) {
	v, err := rlp.Decode(data)
	if err != nil {
		return nil, err
	}
	return DecodeWithType(v, t)
}

// Encode converts a typed value against the given field type and serializes
// the result.
func Encode(val any, t FieldType) ([]byte, error) {
	v, err := EncodeWithType(val, t)
	if err != nil {
		return nil, err
	}
	return rlp.Encode(v), nil
}

// DecodeWithType converts one decoded RLP node against a declared field type.
func DecodeWithType(v rlp.Value, t FieldType) (any, error) {
	switch t.kind {
	case kindRaw:
		return v, nil

	case kindBytes:
		b, err := v.Bytes()
		if err != nil {
			return nil, errors.Wrap(ErrTypeMismatch, "expected byte string, got list")
		}
		return b, nil

	case kindList:
		elems, err := v.Elems()
		if err != nil {
			return nil, errors.Wrap(ErrTypeMismatch, "expected list, got byte string")
		}
		return elems, nil

	case kindInteger:
		b, err := v.Bytes()
		if err != nil {
			return nil, errors.Wrap(ErrTypeMismatch, "expected integer byte string, got list")
		}
		return new(big.Int).SetBytes(b), nil

	case kindBool:
		b, err := v.Bytes()
		if err != nil {
			return nil, errors.Wrap(ErrTypeMismatch, "expected boolean byte string, got list")
		}
		switch {
		case len(b) == 0:
			return false, nil
		case len(b) == 1 && b[0] == 0x01:
			return true, nil
		default:
			return nil, errors.Wrapf(ErrInvalidBool, "payload %x", b)
		}

	case kindArray:
		elems, err := v.Elems()
		if err != nil {
			return nil, errors.Wrap(ErrTypeMismatch, "expected array list, got byte string")
		}
		// Lenient on short lists: decode exactly the elements present.
		out := make([]any, len(elems))
		for i, e := range elems {
			val, err := DecodeWithType(e, t.at(i))
			if err != nil {
				return nil, errors.Wrapf(err, "array element %d", i)
			}
			out[i] = val
		}
		return out, nil

	case kindCustom:
		return t.custom.DecodeRLPValue(v)

	default:
		return nil, errors.Wrapf(ErrInvalidFieldType, "unknown kind %d", t.kind)
	}
}

// EncodeWithType is the structural mirror of DecodeWithType: it produces the
// rlp.Value that rlp.Encode will serialize.
func EncodeWithType(val any, t FieldType) (rlp.Value, error) {
	switch t.kind {
	case kindRaw:
		v, ok := val.(rlp.Value)
		if !ok {
			return rlp.Value{}, errors.Wrapf(ErrTypeMismatch, "raw field wants rlp.Value, got %T", val)
		}
		return v, nil

	case kindBytes:
		b, ok := val.([]byte)
		if !ok {
			return rlp.Value{}, errors.Wrapf(ErrTypeMismatch, "bytes field wants []byte, got %T", val)
		}
		return rlp.Bytes(b), nil

	case kindList:
		elems, ok := val.([]rlp.Value)
		if !ok {
			return rlp.Value{}, errors.Wrapf(ErrTypeMismatch, "list field wants []rlp.Value, got %T", val)
		}
		return rlp.List(elems...), nil

	case kindInteger:
		n, err := toBigInt(val)
		if err != nil {
			return rlp.Value{}, err
		}
		// big.Int.Bytes is minimal big-endian; zero encodes to the empty
		// string and values 1..127 to the single literal byte.
		return rlp.Bytes(n.Bytes()), nil

	case kindBool:
		b, ok := val.(bool)
		if !ok {
			return rlp.Value{}, errors.Wrapf(ErrTypeMismatch, "bool field wants bool, got %T", val)
		}
		if b {
			return rlp.Bytes(trueToken), nil
		}
		return rlp.Bytes(falseToken), nil

	case kindArray:
		elems, ok := val.([]any)
		if !ok {
			return rlp.Value{}, errors.Wrapf(ErrTypeMismatch, "array field wants []any, got %T", val)
		}
		out := make([]rlp.Value, len(elems))
		for i, e := range elems {
			v, err := EncodeWithType(e, t.at(i))
			if err != nil {
				return rlp.Value{}, errors.Wrapf(err, "array element %d", i)
			}
			out[i] = v
		}
		return rlp.List(out...), nil

	case kindCustom:
		return t.custom.EncodeRLPValue(val)

	default:
		return rlp.Value{}, errors.Wrapf(ErrInvalidFieldType, "unknown kind %d", t.kind)
	}
}

// toBigInt accepts the integer representations EncodeWithType supports.
// Negative values have no unsigned wire form.
func toBigInt(val any) (*big.Int, error) {
	switch n := val.(type) {
	case *big.Int:
		if n == nil || n.Sign() < 0 {
			return nil, errors.Wrapf(ErrTypeMismatch, "integer field wants a non-negative value, got %v", n)
		}
		return n, nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case int:
		if n < 0 {
			return nil, errors.Wrapf(ErrTypeMismatch, "integer field wants a non-negative value, got %d", n)
		}
		return big.NewInt(int64(n)), nil
	case int64:
		if n < 0 {
			return nil, errors.Wrapf(ErrTypeMismatch, "integer field wants a non-negative value, got %d", n)
		}
		return big.NewInt(n), nil
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "integer field wants *big.Int or unsigned, got %T", val)
	}
}
