package index

import (
	"encoding/binary"
	"fmt"

	"github.com/viant/metric-index/metric"
)

// Magic identifies the index kind that produced a snapshot.
type Magic [4]byte

// EncodeSnapshot stores: magic[4], n(uint32), then for each element
// len(uint32) and the codec bytes. All integers are little endian.
func EncodeSnapshot[M any](magic Magic, values []M, codec metric.Codec[M]) ([]byte, error) {
	if codec == nil {
		return nil, fmt.Errorf("index: codec is nil")
	}
	out := make([]byte, 0, 8+len(values)*12)
	out = append(out, magic[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(values)))
	for i, v := range values {
		b, err := codec.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("index: encode element %d: %w", i, err)
		}
		out = binary.LittleEndian.AppendUint32(out, uint32(len(b)))
		out = append(out, b...)
	}
	return out, nil
}

// DecodeSnapshot restores the element sequence written by EncodeSnapshot.
func DecodeSnapshot[M any](magic Magic, data []byte, codec metric.Codec[M]) ([]M, error) {
	if codec == nil {
		return nil, fmt.Errorf("index: codec is nil")
	}
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorruptSnapshot, len(data))
	}
	if Magic(data[:4]) != magic {
		return nil, fmt.Errorf("%w: magic %q, want %q", ErrCorruptSnapshot, data[:4], magic[:])
	}
	n := int(binary.LittleEndian.Uint32(data[4:8]))
	off := 8
	// every element needs at least its length prefix
	if n > (len(data)-off)/4 {
		return nil, fmt.Errorf("%w: %d elements in %d bytes", ErrCorruptSnapshot, n, len(data))
	}
	values := make([]M, 0, n)
	for i := 0; i < n; i++ {
		if off+4 > len(data) {
			return nil, fmt.Errorf("%w: truncated length of element %d", ErrCorruptSnapshot, i)
		}
		size := int(binary.LittleEndian.Uint32(data[off : off+4]))
		off += 4
		if size < 0 || size > len(data)-off {
			return nil, fmt.Errorf("%w: truncated element %d", ErrCorruptSnapshot, i)
		}
		v, err := codec.Decode(data[off : off+size])
		if err != nil {
			return nil, fmt.Errorf("index: decode element %d: %w", i, err)
		}
		off += size
		values = append(values, v)
	}
	if off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptSnapshot, len(data)-off)
	}
	return values, nil
}
