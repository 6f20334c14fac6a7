package rlp

// Encode serializes the value in minimal prefix form. Encoding cannot fail:
// every Value has exactly one canonical byte representation.
func Encode(v Value) []byte {
	return v.MarshalTo(nil)
}

// MarshalTo appends the canonical encoding of the value to dst and returns
// the extended buffer.
func (v Value) MarshalTo(dst []byte) []byte {
	if !v.lst {
		return appendString(dst, v.str)
	}
	var payload []byte
	for _, e := range v.list {
		payload = e.MarshalTo(payload)
	}
	dst = appendLength(dst, shortListTag, len(payload))
	return append(dst, payload...)
}

func appendString(dst, s []byte) []byte {
	if len(s) == 1 && s[0] < shortStringTag {
		return append(dst, s[0])
	}
	dst = appendLength(dst, shortStringTag, len(s))
	return append(dst, s...)
}

// appendLength writes the shortest prefix that encodes a payload of n bytes
// for the given base tag (0x80 for strings, 0xc0 for lists).
func appendLength(dst []byte, base byte, n int) []byte {
	if n <= maxShortLen {
		return append(dst, base+byte(n))
	}
	field := minimalBigEndian(uint64(n))
	dst = append(dst, base+maxShortLen+byte(len(field)))
	return append(dst, field...)
}

// minimalBigEndian returns the big-endian bytes of n with no leading zero.
func minimalBigEndian(n uint64) []byte {
	var buf [8]byte
	i := 8
	for n > 0 {
		i--
		buf[i] = byte(n)
		n >>= 8
	}
	return buf[i:]
}
