package rlp

import "github.com/pkg/errors"

const (
	shortStringTag = 0x80
	longStringTag  = 0xb8
	shortListTag   = 0xc0
	longListTag    = 0xf8

	maxShortLen = 55
)

// Decode parses data as exactly one canonically encoded item. Input remaining
// after the item is an error.
func Decode(data []byte) (Value, error) {
	v, n, err := decodeValue(data)
	if err != nil {
		return Value{}, err
	}
	if n != len(data) {
		return Value{}, errors.Wrapf(ErrTrailingBytes, "%d bytes left", len(data)-n)
	}
	return v, nil
}

// decodeValue parses one item from the front of buf and returns it together
// with the number of bytes consumed.
func decodeValue(buf []byte) (Value, int, error) {
	if len(buf) == 0 {
		return Value{}, 0, errors.Wrap(ErrTruncated, "no tag byte")
	}
	tag := buf[0]
	switch {
	case tag < shortStringTag:
		// The tag byte is itself a one-byte string.
		return Value{str: []byte{tag}}, 1, nil

	case tag < longStringTag:
		n := int(tag - shortStringTag)
		payload, err := payloadAfter(buf, 1, n)
		if err != nil {
			return Value{}, 0, errors.Wrapf(err, "string of length %d", n)
		}
		if n == 1 && payload[0] < shortStringTag {
			return Value{}, 0, errors.Wrap(ErrNonCanonical, "single byte below 0x80 with string prefix")
		}
		return Value{str: payload}, 1 + n, nil

	case tag < shortListTag:
		n, hdr, err := longLength(buf, int(tag-longStringTag+1))
		if err != nil {
			return Value{}, 0, errors.Wrap(err, "long string")
		}
		payload, err := payloadAfter(buf, hdr, n)
		if err != nil {
			return Value{}, 0, errors.Wrapf(err, "string of length %d", n)
		}
		return Value{str: payload}, hdr + n, nil

	case tag < longListTag:
		n := int(tag - shortListTag)
		payload, err := payloadAfter(buf, 1, n)
		if err != nil {
			return Value{}, 0, errors.Wrapf(err, "list of length %d", n)
		}
		elems, err := decodeElems(payload)
		if err != nil {
			return Value{}, 0, err
		}
		return Value{list: elems, lst: true}, 1 + n, nil

	default:
		n, hdr, err := longLength(buf, int(tag-longListTag+1))
		if err != nil {
			return Value{}, 0, errors.Wrap(err, "long list")
		}
		payload, err := payloadAfter(buf, hdr, n)
		if err != nil {
			return Value{}, 0, errors.Wrapf(err, "list of length %d", n)
		}
		elems, err := decodeElems(payload)
		if err != nil {
			return Value{}, 0, err
		}
		return Value{list: elems, lst: true}, hdr + n, nil
	}
}

// decodeElems parses concatenated child encodings until the payload range is
// exhausted. The recursion depth is bounded by the input length because every
// nesting level consumes at least its own header byte.
func decodeElems(payload []byte) ([]Value, error) {
	var elems []Value
	for i := 0; len(payload) > 0; i++ {
		v, n, err := decodeValue(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "list element %d", i)
		}
		elems = append(elems, v)
		payload = payload[n:]
	}
	return elems, nil
}

// longLength reads a big-endian length field of ll bytes that follows the tag
// byte, returning the payload length and the total header size. The field
// must be minimal: no leading zero byte, and the resulting length must not
// fit the short form.
func longLength(buf []byte, ll int) (int, int, error) {
	if len(buf) < 1+ll {
		return 0, 0, errors.Wrapf(ErrTruncated, "%d-byte length field", ll)
	}
	field := buf[1 : 1+ll]
	if field[0] == 0 {
		return 0, 0, errors.Wrap(ErrNonCanonical, "leading zero in length field")
	}
	var n uint64
	for _, b := range field {
		if n > (1<<56)-1 {
			return 0, 0, errors.Wrap(ErrLengthOverflow, "length field does not fit")
		}
		n = n<<8 | uint64(b)
	}
	if n <= maxShortLen {
		return 0, 0, errors.Wrap(ErrNonCanonical, "long form used for short payload")
	}
	// Compare before the int conversion: a length field near 2^64 must not
	// wrap into a negative int.
	if n > uint64(len(buf)) {
		return 0, 0, errors.Wrapf(ErrLengthOverflow, "%d bytes declared, %d available", n, len(buf)-1-ll)
	}
	return int(n), 1 + ll, nil
}

// payloadAfter slices n payload bytes starting at offset off, copying them so
// the returned value does not alias the caller's buffer.
func payloadAfter(buf []byte, off, n int) ([]byte, error) {
	if len(buf)-off < n {
		return nil, errors.Wrapf(ErrLengthOverflow, "%d bytes declared, %d available", n, len(buf)-off)
	}
	p := make([]byte, n)
	copy(p, buf[off:off+n])
	return p, nil
}
