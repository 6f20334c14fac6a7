package schema

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCloneIndependence(t *testing.T) {
	s := paymentSchema(t)
	r := paymentRecord(t, s)
	c := r.Clone()
	require.True(t, r.Equal(c))

	recipient := c.MustGet("recipient").([]byte)
	recipient[0] = 0xff
	proofs := c.MustGet("proofs").([]any)
	proofs[0].([]byte)[0] = 'X'
	c.MustGet("nonce").(*big.Int).SetInt64(999)

	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, r.MustGet("recipient").([]byte))
	assert.Equal(t, []byte("p1"), r.MustGet("proofs").([]any)[0])
	assert.Zero(t, big.NewInt(7).Cmp(r.MustGet("nonce").(*big.Int)))
}

func TestRecordCloneNested(t *testing.T) {
	point := MustNew("point",
		Field{Name: "x", Type: Integer},
		Field{Name: "y", Type: Integer},
	)
	line := MustNew("line",
		Field{Name: "a", Type: Custom(point)},
	)
	a, err := point.NewRecord(map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)
	l, err := line.NewRecord(map[string]any{"a": a})
	require.NoError(t, err)

	c := l.Clone()
	c.MustGet("a").(Record).MustGet("x").(*big.Int).SetInt64(42)
	assert.Zero(t, big.NewInt(1).Cmp(l.MustGet("a").(Record).MustGet("x").(*big.Int)))
}

func TestRecordEqual(t *testing.T) {
	s := paymentSchema(t)
	r1 := paymentRecord(t, s)
	r2 := paymentRecord(t, s)
	require.True(t, r1.Equal(r2))

	t.Run("different field value", func(t *testing.T) {
		r3, err := s.NewRecord(map[string]any{
			"nonce":     8,
			"recipient": []byte{0xde, 0xad, 0xbe, 0xef},
			"amount":    big.NewInt(100500),
			"proofs":    []any{[]byte("p1"), []byte("p2")},
		})
		require.NoError(t, err)
		assert.False(t, r1.Equal(r3))
	})
	t.Run("different schema same shape", func(t *testing.T) {
		other := paymentSchema(t)
		r4 := paymentRecord(t, other)
		assert.False(t, r1.Equal(r4))
	})
	t.Run("numeric equality ignores representation", func(t *testing.T) {
		big7 := new(big.Int).SetBytes([]byte{0x07})
		r5, err := s.NewRecord(map[string]any{
			"nonce":     big7,
			"recipient": []byte{0xde, 0xad, 0xbe, 0xef},
			"amount":    100500,
			"proofs":    []any{[]byte("p1"), []byte("p2")},
		})
		require.NoError(t, err)
		assert.True(t, r1.Equal(r5))
	})
}

func TestRecordGet(t *testing.T) {
	s := paymentSchema(t)
	r := paymentRecord(t, s)

	v, ok := r.Get("amount")
	require.True(t, ok)
	assert.Zero(t, big.NewInt(100500).Cmp(v.(*big.Int)))

	_, ok = r.Get("bogus")
	assert.False(t, ok)
	assert.Panics(t, func() { r.MustGet("bogus") })

	assert.Same(t, s, r.Schema())
}
