// Package qoi implements the QuiteOk image format, a lossless encoding of RGB
// and RGBA pixels.
//
// A stream is a 14 byte header, a sequence of opcodes and an 8 byte end of
// file marker. Every opcode describes one pixel, or a run of the previous
// pixel, relative to the previous pixel and a cache of 64 recently seen
// pixels:
//
//	11111110 r g b      OpRgb
//	11111111 r g b a    OpRgba
//	00iiiiii            OpIndex, cache slot i
//	01rrggbb            OpDiff, each channel delta -2..1
//	10gggggg rrrrbbbb   OpLuma, green delta -32..31, red and blue -8..7 relative to green
//	11llllll            OpRun, l+1 repetitions (1..62)
//
// Encode and Decode work on whole in-memory buffers. They keep no state
// between calls and may be used from any number of goroutines.
package qoi

import "image"

func init() {
	image.RegisterFormat("qoi", Magic, DecodeImage, DecodeConfig)
}
