package metric

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Codec converts elements to and from bytes. Index snapshots store only the
// element sequence, so a codec plus the element's Distance method is all that
// is needed to reconstruct an index.
type Codec[M any] interface {
	Encode(value M) ([]byte, error)
	Decode(data []byte) (M, error)
}

// FloatCodec encodes a Float as 8 little-endian IEEE 754 bytes.
type FloatCodec struct{}

func (FloatCodec) Encode(value Float) ([]byte, error) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(float64(value)))
	return b, nil
}

func (FloatCodec) Decode(data []byte) (Float, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("metric: invalid float length %d", len(data))
	}
	return Float(math.Float64frombits(binary.LittleEndian.Uint64(data))), nil
}

// HashCodec encodes a Hash as 8 little-endian bytes.
type HashCodec struct{}

func (HashCodec) Encode(value Hash) ([]byte, error) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(value))
	return b, nil
}

func (HashCodec) Decode(data []byte) (Hash, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("metric: invalid hash length %d", len(data))
	}
	return Hash(binary.LittleEndian.Uint64(data)), nil
}

// VectorCodec encodes a Vector as little-endian float32 values. The
// dimension is implied by the byte length.
type VectorCodec struct{}

func (VectorCodec) Encode(value Vector) ([]byte, error) {
	if len(value) == 0 {
		return nil, nil
	}
	return binary.Append(make([]byte, 0, 4*len(value)), binary.LittleEndian, []float32(value))
}

func (VectorCodec) Decode(data []byte) (Vector, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("metric: invalid vector length %d", len(data))
	}
	value := make(Vector, len(data)/4)
	if _, err := binary.Decode(data, binary.LittleEndian, []float32(value)); err != nil {
		return nil, fmt.Errorf("metric: decode vector: %w", err)
	}
	return value, nil
}
