package rlp

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDecodeSingleByte(t *testing.T) {
	for _, tag := range []byte{0x00, 0x01, 0x7f} {
		v, err := Decode([]byte{tag})
		require.NoError(t, err)
		b, err := v.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{tag}, b)
	}
}

func TestDecodeEmptyTokens(t *testing.T) {
	v, err := Decode([]byte{0x80})
	require.NoError(t, err)
	require.False(t, v.IsList())
	b, err := v.Bytes()
	require.NoError(t, err)
	assert.Empty(t, b)

	v, err = Decode([]byte{0xc0})
	require.NoError(t, err)
	require.True(t, v.IsList())
	elems, err := v.Elems()
	require.NoError(t, err)
	assert.Empty(t, elems)
}

func TestDecodeVectors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Value
	}{
		{"dog", "83646f67", Bytes([]byte("dog"))},
		{"cat and dog", "c88363617483646f67", List(Bytes([]byte("cat")), Bytes([]byte("dog")))},
		{"empty string", "80", Bytes(nil)},
		{"integer 1024 payload", "820400", Bytes([]byte{0x04, 0x00})},
		{
			"set theoretic three",
			"c7c0c1c0c3c0c1c0",
			List(
				List(),
				List(List()),
				List(List(), List(List())),
			),
		},
		{
			"lorem 56 bytes long form",
			"b8384c6f72656d20697073756d20646f6c6f722073697420616d65742c20636f6e7365637465747572206164697069736963696e6720656c6974",
			Bytes([]byte("Lorem ipsum dolor sit amet, consectetur adipisicing elit")),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := mustDecodeHex(t, tc.input)
			v, err := Decode(data)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(v), "decoded %s", v)
			assert.Equal(t, data, Encode(v), "re-encode must reproduce input")
		})
	}
}

func TestEncodeShortStringRoundTrip(t *testing.T) {
	for n := 0; n <= 55; n++ {
		s := bytes.Repeat([]byte{0xab}, n)
		v, err := Decode(Encode(Bytes(s)))
		require.NoError(t, err)
		assert.True(t, Bytes(s).Equal(v), "length %d", n)
	}
}

func TestEncodeLengthBoundaries(t *testing.T) {
	tests := []struct {
		n      int
		prefix []byte
	}{
		{55, []byte{0x80 + 55}},
		{56, []byte{0xb8, 56}},
		{255, []byte{0xb8, 255}},
		{256, []byte{0xb9, 0x01, 0x00}},
		{1024, []byte{0xb9, 0x04, 0x00}},
	}
	for _, tc := range tests {
		data := Encode(Bytes(make([]byte, tc.n)))
		assert.Equal(t, tc.prefix, data[:len(tc.prefix)], "payload length %d", tc.n)
		assert.Len(t, data, len(tc.prefix)+tc.n)
	}
}

func TestEncodeNestedList(t *testing.T) {
	v := List(
		Bytes([]byte{0x01}),
		List(Bytes([]byte("abc")), Bytes(nil)),
		List(),
	)
	data := Encode(v)
	back, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, v.Equal(back))
}

func TestDecodeTruncated(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty input", nil},
		{"missing length field", []byte{0xb8}},
		{"partial length field", []byte{0xb9, 0x01}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.input)
			assert.True(t, errors.Is(err, ErrTruncated), "got %v", err)
		})
	}
}

func TestDecodeLengthOverflow(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"short string payload missing", []byte{0x83, 0x64, 0x6f}},
		{"long string payload missing", append([]byte{0xb8, 0x38}, make([]byte, 10)...)},
		{"list payload missing", []byte{0xc3, 0x01}},
		{"nested element overflows", []byte{0xc2, 0x83, 0x61}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.input)
			assert.True(t, errors.Is(err, ErrLengthOverflow), "got %v", err)
		})
	}
}

func TestDecodeNonCanonical(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"single byte with string prefix", []byte{0x81, 0x05}},
		{"leading zero in length field", append([]byte{0xb9, 0x00, 0x38}, make([]byte, 56)...)},
		{"long form for short payload", append([]byte{0xb8, 0x02}, 0xff, 0xff)},
		{"long list form for short payload", append([]byte{0xf8, 0x03}, 0x01, 0x02, 0x03)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.input)
			assert.True(t, errors.Is(err, ErrNonCanonical), "got %v", err)
		})
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	_, err := Decode([]byte{0x80, 0x00})
	assert.True(t, errors.Is(err, ErrTrailingBytes), "got %v", err)
}

func TestValueAccessors(t *testing.T) {
	_, err := Bytes([]byte{0x01}).Elems()
	assert.True(t, errors.Is(err, ErrValueIsBytes))
	_, err = List().Bytes()
	assert.True(t, errors.Is(err, ErrValueIsList))
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Bytes(nil).Equal(Bytes([]byte{})))
	assert.False(t, Bytes(nil).Equal(List()))
	assert.False(t, List(Bytes([]byte{0x01})).Equal(List(Bytes([]byte{0x02}))))
	assert.True(t, List(List(), Bytes([]byte("a"))).Equal(List(List(), Bytes([]byte("a")))))
}
