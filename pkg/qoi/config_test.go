package qoi

import (
	"image"
	"image/color"
	"math/rand"
)

var testFiles = []string{
	"gradient",
	"gradient_rgba",
	"checker",
	"noise",
	"stripes",
	"soft_noise",
	"single",
}

// testImage generates the named test image. All images are deterministic.
func testImage(name string) *image.NRGBA {
	switch name {
	case "gradient":
		return fill(96, 64, func(x, y int) color.NRGBA {
			return color.NRGBA{R: uint8(x * 2), G: uint8(y * 3), B: uint8(x + y), A: 255}
		})
	case "gradient_rgba":
		return fill(64, 64, func(x, y int) color.NRGBA {
			return color.NRGBA{R: uint8(x * 4), G: uint8(255 - y*4), B: 128, A: uint8(x * y)}
		})
	case "checker":
		return fill(80, 40, func(x, y int) color.NRGBA {
			if (x/8+y/8)%2 == 0 {
				return color.NRGBA{A: 255}
			}
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		})
	case "noise":
		rnd := rand.New(rand.NewSource(1))
		return fill(50, 50, func(x, y int) color.NRGBA {
			v := rnd.Uint32()
			return color.NRGBA{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16), A: uint8(v >> 24)}
		})
	case "stripes":
		return fill(200, 3, func(x, y int) color.NRGBA {
			return color.NRGBA{R: uint8(y * 100), G: uint8(x / 70), B: 7, A: 255}
		})
	case "soft_noise":
		rnd := rand.New(rand.NewSource(2))
		last := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
		return fill(64, 48, func(x, y int) color.NRGBA {
			last.R += uint8(rnd.Intn(9)) - 4
			last.G += uint8(rnd.Intn(41)) - 20
			last.B += uint8(rnd.Intn(5)) - 2
			if rnd.Intn(50) == 0 {
				last.A = uint8(rnd.Intn(256))
			}
			return last
		})
	case "single":
		return fill(1, 1, func(x, y int) color.NRGBA {
			return color.NRGBA{R: 1, G: 2, B: 3, A: 4}
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

// repeat concatenates n copies of px.
func repeat(px []byte, n int) []byte {
	out := make([]byte, 0, len(px)*n)
	for i := 0; i < n; i++ {
		out = append(out, px...)
	}
	return out
}

// stream builds an encoded stream from a header and raw opcode bytes.
func stream(header Header, ops ...byte) []byte {
	out := header.AppendTo(nil)
	out = append(out, ops...)
	return append(out, eof[:]...)
}
