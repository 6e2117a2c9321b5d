package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorCodec(t *testing.T) {
	orig := Vector{0.0, 1.5, -2.25, 3.75}

	b, err := VectorCodec{}.Encode(orig)
	require.NoError(t, err)
	assert.Len(t, b, 16)

	decoded, err := VectorCodec{}.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, orig, decoded)

	_, err = VectorCodec{}.Decode([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestVectorCodec_Layout(t *testing.T) {
	b, err := VectorCodec{}.Encode(Vector{1, -2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0xc0}, b)
}

func TestVectorCodec_Empty(t *testing.T) {
	b, err := VectorCodec{}.Encode(nil)
	require.NoError(t, err)
	assert.Empty(t, b)

	v, err := VectorCodec{}.Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestFloatAndHashCodec(t *testing.T) {
	fb, err := FloatCodec{}.Encode(-2.5)
	require.NoError(t, err)
	f, err := FloatCodec{}.Decode(fb)
	require.NoError(t, err)
	assert.Equal(t, Float(-2.5), f)

	hb, err := HashCodec{}.Encode(0xdeadbeef)
	require.NoError(t, err)
	h, err := HashCodec{}.Decode(hb)
	require.NoError(t, err)
	assert.Equal(t, Hash(0xdeadbeef), h)

	_, err = FloatCodec{}.Decode([]byte{1})
	assert.Error(t, err)
	_, err = HashCodec{}.Decode(nil)
	assert.Error(t, err)
}
