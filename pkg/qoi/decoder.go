package qoi

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// DecodeImage reads all bytes from the reader and decodes an image of the
// QuiteOk image format from them. Unlike Decode it checks the end of file
// marker and the number of decoded pixels.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	pixels, header, err := Decode(data)
	if err != nil {
		return nil, err
	}

	// validate file end sequence
	if footer := data[len(data)-FooterSize:]; !bytes.Equal(footer, eof[:]) {
		return nil, fmt.Errorf("%w: expected %x, actual %x", ErrInvalidEOF, eof, footer)
	}
	if uint64(len(pixels)) != header.BufferSize() {
		return nil, fmt.Errorf("%w: invalid number of pixels decoded, expected %d, actual %d",
			ErrCorrupt, header.Pixels(), len(pixels)/header.Channels())
	}

	return &Image{Header: header, Pix: pixels}, nil
}

// DecodeConfig returns the dimensions of a QuiteOk image without decoding its pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	// read the header bytes
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return image.Config{}, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		return image.Config{}, err
	}
	header, err := DecodeHeader(buf)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		Width:      int(header.Width),
		Height:     int(header.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}
