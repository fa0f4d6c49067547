package qoi

import (
	"encoding/binary"
	"fmt"
)

// Header is the header data of a QuiteOk image. See qoi.Image for usage.
type Header struct {
	Width    uint32
	Height   uint32
	HasAlpha bool
	// SRGB is false for linear color channels.
	SRGB bool
}

// Channels returns the number of bytes per pixel, 3 or 4.
func (h Header) Channels() int {
	if h.HasAlpha {
		return 4
	}
	return 3
}

// Pixels returns the number of pixels of the image.
func (h Header) Pixels() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}

// BufferSize returns the length of the raw pixel buffer described by the header.
func (h Header) BufferSize() uint64 {
	return h.Pixels() * uint64(h.Channels())
}

// AppendTo appends the 14 header bytes to buf.
func (h Header) AppendTo(buf []byte) []byte {
	buf = append(buf, Magic...)
	buf = binary.BigEndian.AppendUint32(buf, h.Width)
	buf = binary.BigEndian.AppendUint32(buf, h.Height)
	buf = append(buf, uint8(h.Channels()))
	buf = append(buf, boolByte(h.SRGB))
	return buf
}

// EncodeHeader returns the serialized header.
func EncodeHeader(h Header) [HeaderSize]byte {
	var out [HeaderSize]byte
	h.AppendTo(out[:0])
	return out
}

// DecodeHeader reads a header from the first 14 bytes of data. Any channel
// value other than 4 is read as RGB and any nonzero colorspace as sRGB.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncated, HeaderSize, len(data))
	}
	if magic := string(data[:4]); magic != Magic {
		return Header{}, fmt.Errorf("%w: expected %q, actual %q", ErrInvalidMagic, Magic, magic)
	}
	return Header{
		Width:    binary.BigEndian.Uint32(data[4:8]),
		Height:   binary.BigEndian.Uint32(data[8:12]),
		HasAlpha: data[12] == 4,
		SRGB:     data[13] != 0,
	}, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
