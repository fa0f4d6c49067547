package qoi

import "image/color"

// pixel is a single RGBA value. All arithmetic on it wraps modulo 256.
type pixel struct {
	r, g, b, a uint8
}

var (
	startPixel = pixel{0, 0, 0, 255}
	zeroPixel  = pixel{}
)

// pixelFrom reads a pixel from 3 or 4 channel bytes. Three channel pixels are opaque.
func pixelFrom(s []byte) pixel {
	if len(s) == 4 {
		return pixel{s[0], s[1], s[2], s[3]}
	}
	return pixel{s[0], s[1], s[2], 255}
}

func (p pixel) add(o pixel) pixel {
	return pixel{p.r + o.r, p.g + o.g, p.b + o.b, p.a + o.a}
}

func (p pixel) sub(o pixel) pixel {
	return pixel{p.r - o.r, p.g - o.g, p.b - o.b, p.a - o.a}
}

// addScalar adds v to the color channels, alpha is left alone.
func (p pixel) addScalar(v uint8) pixel {
	return pixel{p.r + v, p.g + v, p.b + v, p.a}
}

// hash generates the runner slot of the pixel. It is a number between 0 and 63.
func (p pixel) hash() uint8 {
	return (p.r*3 + p.g*5 + p.b*7 + p.a*11) % cacheSize
}

func (p pixel) nrgba() color.NRGBA {
	return color.NRGBA{R: p.r, G: p.g, B: p.b, A: p.a}
}

// appendTo writes the channels of the pixel, alpha only for 4 channel buffers.
func (p pixel) appendTo(buf []byte, hasAlpha bool) []byte {
	if hasAlpha {
		return append(buf, p.r, p.g, p.b, p.a)
	}
	return append(buf, p.r, p.g, p.b)
}

// diffOp classifies a raw delta as a small diff. The bias of 2 moves -2..1 into 0..3.
func (p pixel) diffOp() (byte, bool) {
	biased := p.addScalar(2)
	if p.a != 0 || (biased.r|biased.g|biased.b)&^0b11 != 0 {
		return 0, false
	}
	return OpDiff | biased.r<<4 | biased.g<<2 | biased.b, true
}

// lumaOp classifies a raw delta as a luma diff: green in -32..31, red and
// blue relative to green in -8..7.
func (p pixel) lumaOp() ([2]byte, bool) {
	dg := p.g + 32
	drg := p.r - p.g + 8
	dbg := p.b - p.g + 8
	if p.a != 0 || dg&^payloadMask != 0 || (drg|dbg)&^0b1111 != 0 {
		return [2]byte{}, false
	}
	return [2]byte{OpLuma | dg, drg<<4 | dbg}, true
}

// applyDiff reconstructs the pixel following p from an OpDiff byte.
func (p pixel) applyDiff(op byte) pixel {
	return p.add(pixel{
		r: (op>>4)&0b11 - 2,
		g: (op>>2)&0b11 - 2,
		b: op&0b11 - 2,
	})
}

// applyLuma reconstructs the pixel following p from the two bytes of an OpLuma.
func (p pixel) applyLuma(op, rb byte) pixel {
	dg := op&payloadMask - 32
	return p.add(pixel{
		r: rb>>4 - 8 + dg,
		g: dg,
		b: rb&0b1111 - 8 + dg,
	})
}
