package qoi

import (
	"image"
	"image/color"
)

// Image is the image type for the QuiteOk image format. It implements the
// image.Image interface on top of the raw pixel buffer produced by Decode.
type Image struct {
	Header Header
	Pix    []byte
}

// ColorModel returns color.NRGBAModel.
func (img *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds returns the rectangle spanned by the header width and height.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(img.Header.Width), int(img.Header.Height))
}

// At returns the pixel at (x, y), or transparent black outside the bounds.
func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.NRGBA{}
	}
	stride := img.Header.Channels()
	off := (y*int(img.Header.Width) + x) * stride
	return pixelFrom(img.Pix[off : off+stride]).nrgba()
}

// PixelsFromImage flattens any image into a raw buffer suitable for Encode.
// With hasAlpha unset the buffer holds 3 bytes per pixel and alpha is dropped.
func PixelsFromImage(m image.Image, hasAlpha bool) ([]byte, Header) {
	bounds := m.Bounds()
	header := Header{
		Width:    uint32(bounds.Dx()),
		Height:   uint32(bounds.Dy()),
		HasAlpha: hasAlpha,
		SRGB:     true,
	}
	if img, ok := m.(*Image); ok && img.Header.HasAlpha == hasAlpha {
		header.SRGB = img.Header.SRGB
		return img.Pix, header
	}

	pixels := make([]byte, 0, header.BufferSize())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			pixels = pixel{c.R, c.G, c.B, c.A}.appendTo(pixels, hasAlpha)
		}
	}
	return pixels, header
}

// IsOpaque reports whether every pixel of m has full alpha.
func IsOpaque(m image.Image) bool {
	if o, ok := m.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	bounds := m.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := m.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
