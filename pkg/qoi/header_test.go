package qoi

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_RoundTrip(t *testing.T) {
	for _, size := range [][2]uint32{{0, 0}, {1, 1}, {800, 600}, {math.MaxUint32, 7}} {
		for _, hasAlpha := range []bool{true, false} {
			for _, sRGB := range []bool{true, false} {
				header := Header{Width: size[0], Height: size[1], HasAlpha: hasAlpha, SRGB: sRGB}
				t.Run(fmt.Sprintf("%+v", header), func(t *testing.T) {
					encoded := EncodeHeader(header)

					decoded, err := DecodeHeader(encoded[:])

					require.NoError(t, err)
					assert.Equal(t, header, decoded)
				})
			}
		}
	}
}

func TestHeader_Layout(t *testing.T) {
	encoded := EncodeHeader(Header{Width: 0x01020304, Height: 0x0a0b0c0d, HasAlpha: false, SRGB: true})

	assert.Equal(t, [HeaderSize]byte{'q', 'o', 'i', 'f', 1, 2, 3, 4, 10, 11, 12, 13, 3, 1}, encoded)
}

func TestDecodeHeader_Flags(t *testing.T) {
	encoded := EncodeHeader(Header{Width: 1, Height: 1})
	encoded[13] = 7

	header, err := DecodeHeader(encoded[:])

	require.NoError(t, err)
	assert.True(t, header.SRGB, "any nonzero colorspace is sRGB")
	assert.False(t, header.HasAlpha)
}

func TestDecodeHeader_Errors(t *testing.T) {
	_, err := DecodeHeader([]byte("qoif"))
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = DecodeHeader([]byte("QOIF\x00\x00\x00\x01\x00\x00\x00\x01\x04\x00"))
	assert.ErrorIs(t, err, ErrInvalidMagic)
	assert.Contains(t, err.Error(), `"QOIF"`)
}

func TestHeader_Sizes(t *testing.T) {
	header := Header{Width: 3, Height: 5}

	assert.Equal(t, 3, header.Channels())
	assert.Equal(t, uint64(15), header.Pixels())
	assert.Equal(t, uint64(45), header.BufferSize())
}
