package qoi

import (
	"errors"
)

const (
	OpRgb   = byte(0b11111110)
	OpRgba  = byte(0b11111111)
	OpIndex = byte(0b00000000)
	OpDiff  = byte(0b01000000)
	OpLuma  = byte(0b10000000)
	OpRun   = byte(0b11000000)
	// opMask is the mask for 2-bit op codes
	opMask = 0b11000000
	// payloadMask selects the 6 bits following a 2-bit op code
	payloadMask = 0b00111111
	// Magic is the magic code used for files of the QuiteOk image format.
	Magic = "qoif"
)

const (
	// HeaderSize is the size of the fixed preamble of every stream.
	HeaderSize = 14
	// FooterSize is the size of the end of file marker.
	FooterSize = 8
	// maxRun is the longest run a single OpRun can carry. 63 and 64 would
	// collide with OpRgb and OpRgba.
	maxRun = 62
	// cacheSize is the number of slots of the runner.
	cacheSize = 64
)

var (
	ErrTruncated    = errors.New("truncated input")
	ErrInvalidMagic = errors.New("invalid magic")
	ErrInvalidEOF   = errors.New("invalid EOF")
	ErrCorrupt      = errors.New("corrupt opcode stream")
	// eof is the end of file code used by files of the QuiteOk image format
	eof = [FooterSize]byte{0, 0, 0, 0, 0, 0, 0, 1}
)
