package qoi

// Encode encodes raw pixels to the QuiteOk image format. The pixels are read
// 4 bytes at a time when hasAlpha is set and 3 bytes at a time otherwise.
// The length of pixels should be width*height*channels; trailing bytes that do
// not form a whole pixel are ignored.
func Encode(pixels []byte, width, height uint32, hasAlpha, sRGB bool) []byte {
	header := Header{Width: width, Height: height, HasAlpha: hasAlpha, SRGB: sRGB}
	stride := header.Channels()
	size := len(pixels) / stride

	e := encoder{
		out:  make([]byte, 0, HeaderSize+size+FooterSize),
		last: startPixel,
		seen: newRunner(),
	}
	e.out = header.AppendTo(e.out)

	for i := 0; i < size; i++ {
		e.next(pixelFrom(pixels[i*stride:(i+1)*stride]), i == size-1)
	}
	e.flushRun()

	// add eof indicator
	return append(e.out, eof[:]...)
}

type encoder struct {
	out  []byte
	last pixel
	seen *runner
	run  uint8
}

// next emits the opcode for curr, or extends the pending run. final marks the
// last pixel of the image.
func (e *encoder) next(curr pixel, final bool) {
	// OpRun
	if curr == e.last {
		e.run++
		if e.run == maxRun || final {
			e.flushRun()
		}
		return
	}
	e.flushRun()

	// OpIndex
	if index, ok := e.seen.matchOrUpdate(curr); ok {
		e.out = append(e.out, OpIndex|index)
		e.last = curr
		return
	}

	delta := curr.sub(e.last)
	e.last = curr

	// OpDiff
	if op, ok := delta.diffOp(); ok {
		e.out = append(e.out, op)
		return
	}

	// OpLuma
	if op, ok := delta.lumaOp(); ok {
		e.out = append(e.out, op[0], op[1])
		return
	}

	// OpRgb
	if delta.a == 0 {
		e.out = append(e.out, OpRgb, curr.r, curr.g, curr.b)
		return
	}

	// OpRgba
	e.out = append(e.out, OpRgba, curr.r, curr.g, curr.b, curr.a)
}

func (e *encoder) flushRun() {
	if e.run == 0 {
		return
	}
	e.out = append(e.out, OpRun|(e.run-1))
	e.run = 0
}
