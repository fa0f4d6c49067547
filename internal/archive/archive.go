// Package archive wraps encoded QuiteOk streams in a zstd frame.
package archive

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"go_qoistream/pkg/qoi"
)

// Extension is the file extension of compressed streams.
const Extension = ".qoi.zst"

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func mustNewZstdEncoder(level zstd.EncoderLevel) *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(level),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		panic(err)
	}
	return dec
}

// one pool per encoder level, created on first use
var zstdEncPools sync.Map

var zstdDecPool = sync.Pool{
	New: func() any {
		return mustNewZstdDecoder()
	},
}

func encPool(level zstd.EncoderLevel) *sync.Pool {
	if p, ok := zstdEncPools.Load(level); ok {
		return p.(*sync.Pool)
	}
	p, _ := zstdEncPools.LoadOrStore(level, &sync.Pool{
		New: func() any {
			return mustNewZstdEncoder(level)
		},
	})
	return p.(*sync.Pool)
}

// ParseLevel maps a level name (fastest, default, better, best) to a zstd level.
func ParseLevel(name string) (zstd.EncoderLevel, error) {
	ok, level := zstd.EncoderLevelFromString(name)
	if !ok {
		return 0, fmt.Errorf("unknown zstd level %q", name)
	}
	return level, nil
}

// Compress wraps an encoded QuiteOk stream in a zstd frame.
func Compress(stream []byte, level zstd.EncoderLevel) ([]byte, error) {
	if _, err := qoi.DecodeHeader(stream); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	pool := encPool(level)
	enc := pool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(stream, nil)
	pool.Put(enc)
	return out, nil
}

// Decompress unwraps a zstd frame produced by Compress. Data that is not a
// zstd frame is returned unchanged, so plain streams pass through.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}

	dec := zstdDecPool.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(data, nil)
	zstdDecPool.Put(dec)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

// IsCompressed reports whether data starts with a zstd frame.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}
