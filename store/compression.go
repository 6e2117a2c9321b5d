package store

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how snapshot payloads are stored.
type Compression uint8

const (
	// CompressionNone stores payloads as given.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

type codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newCodec() (*codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, err
	}
	return &codec{encoder: enc, decoder: dec}, nil
}

func (c *codec) close() error {
	c.decoder.Close()
	return c.encoder.Close()
}

// compress returns the stored payload and the compression actually applied.
// Payloads that do not shrink are stored uncompressed.
func (c *codec) compress(data []byte, compression Compression) ([]byte, Compression, error) {
	if compression == CompressionNone || len(data) == 0 {
		return data, CompressionNone, nil
	}
	var out []byte
	switch compression {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		out = buf[:n]
	case CompressionZSTD:
		out = c.encoder.EncodeAll(data, nil)
	default:
		return nil, 0, fmt.Errorf("store: unsupported compression %v", compression)
	}
	if len(out) == 0 || len(out) >= len(data) {
		return data, CompressionNone, nil
	}
	return out, compression, nil
}

func (c *codec) decompress(payload []byte, compression Compression, size int) ([]byte, error) {
	switch compression {
	case CompressionNone:
		if len(payload) != size {
			return nil, fmt.Errorf("store: payload size %d, want %d", len(payload), size)
		}
		return payload, nil
	case CompressionLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		if n != size {
			return nil, errors.New("store: decompressed size mismatch")
		}
		return out, nil
	case CompressionZSTD:
		out, err := c.decoder.DecodeAll(payload, make([]byte, 0, size))
		if err != nil {
			return nil, err
		}
		if len(out) != size {
			return nil, errors.New("store: decompressed size mismatch")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("store: unsupported compression %v", compression)
	}
}
