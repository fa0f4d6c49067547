// Package conformance checks interoperability with an independent
// implementation of the format. It lives apart from package qoi because both
// libraries register the "qoi" image format.
package conformance

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	refqoi "github.com/xfmoulet/qoi"

	"go_qoistream/pkg/qoi"
)

// Only opaque images are used, the other implementation is free to
// premultiply alpha.
var testFiles = []string{
	"gradient",
	"checker",
	"stripes",
}

func testImage(name string) *image.NRGBA {
	switch name {
	case "gradient":
		return fill(96, 64, func(x, y int) color.NRGBA {
			return color.NRGBA{R: uint8(x * 2), G: uint8(y * 3), B: uint8(x + y), A: 255}
		})
	case "checker":
		return fill(80, 40, func(x, y int) color.NRGBA {
			if (x/8+y/8)%2 == 0 {
				return color.NRGBA{A: 255}
			}
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		})
	case "stripes":
		return fill(200, 3, func(x, y int) color.NRGBA {
			return color.NRGBA{R: uint8(y * 100), G: uint8(x / 70), B: 7, A: 255}
		})
	}
	panic("unknown test image " + name)
}

func fill(width, height int, at func(x, y int) color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, at(x, y))
		}
	}
	return img
}

func TestDecodeReference(t *testing.T) {
	for _, fname := range testFiles {
		t.Run(fname, func(t *testing.T) {

			// given
			img := testImage(fname)
			var buf bytes.Buffer
			require.NoError(t, refqoi.Encode(&buf, img))

			// when
			qoiImg, err := qoi.DecodeImage(&buf)
			require.NoError(t, err)

			// then
			requireSamePixels(t, img, qoiImg)
		})
	}
}

func TestEncodeForReference(t *testing.T) {
	for _, fname := range testFiles {
		t.Run(fname, func(t *testing.T) {

			// given
			img := testImage(fname)
			var buf bytes.Buffer
			require.NoError(t, qoi.EncodeImage(&buf, img, qoi.WithAlpha(true)))

			// when
			refImg, err := refqoi.Decode(&buf)
			require.NoError(t, err)

			// then
			requireSamePixels(t, img, refImg)
		})
	}
}

func requireSamePixels(t *testing.T, expected, actual image.Image) {
	t.Helper()
	require.Equal(t, expected.Bounds().Size(), actual.Bounds().Size())
	eb, ab := expected.Bounds(), actual.Bounds()
	for y := 0; y < eb.Dy(); y++ {
		for x := 0; x < eb.Dx(); x++ {
			e := color.NRGBAModel.Convert(expected.At(eb.Min.X+x, eb.Min.Y+y))
			a := color.NRGBAModel.Convert(actual.At(ab.Min.X+x, ab.Min.Y+y))
			require.Equal(t, e, a, "invalid pixel at (%d, %d)", x, y)
		}
	}
}
