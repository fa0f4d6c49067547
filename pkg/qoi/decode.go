package qoi

import (
	"fmt"
)

// Decode decodes a complete QuiteOk stream into raw pixels, 4 bytes per pixel
// when the header declares an alpha channel and 3 otherwise.
//
// The last 8 bytes are treated as the end of file marker and are not
// inspected. The opcode stream is trusted: it is not checked that it yields
// exactly width*height pixels. Only an opcode whose payload would reach into
// the end of file marker stops decoding with ErrCorrupt.
func Decode(data []byte) ([]byte, Header, error) {
	if len(data) < HeaderSize+FooterSize {
		return nil, Header{}, fmt.Errorf("%w: expected at least %d bytes, actual %d", ErrTruncated, HeaderSize+FooterSize, len(data))
	}

	header, err := DecodeHeader(data[:HeaderSize])
	if err != nil {
		return nil, Header{}, err
	}

	pixels, err := decodePixels(data[HeaderSize:len(data)-FooterSize], header)
	if err != nil {
		return nil, Header{}, err
	}
	return pixels, header, nil
}

// decodePixels walks the opcode region between header and end of file marker.
func decodePixels(data []byte, header Header) ([]byte, error) {
	hasAlpha := header.HasAlpha
	out := make([]byte, 0, capacityHint(header, len(data)))
	last := startPixel
	seen := newRunner()

	dataIndex := 0 // index in data slice (input)
	for dataIndex < len(data) {
		op := data[dataIndex]
		run := 1

		switch {
		case op == OpRgb:
			if dataIndex+4 > len(data) {
				return nil, truncatedOp("rgb", dataIndex)
			}
			last = pixel{data[dataIndex+1], data[dataIndex+2], data[dataIndex+3], last.a}
			seen.update(last)
			dataIndex += 4
		case op == OpRgba:
			if dataIndex+5 > len(data) {
				return nil, truncatedOp("rgba", dataIndex)
			}
			last = pixel{data[dataIndex+1], data[dataIndex+2], data[dataIndex+3], data[dataIndex+4]}
			seen.update(last)
			dataIndex += 5
		case op&opMask == OpRun:
			run = int(op&payloadMask) + 1
			dataIndex += 1
		case op&opMask == OpIndex:
			last = seen.at(op)
			dataIndex += 1
		case op&opMask == OpDiff:
			last = last.applyDiff(op)
			seen.update(last)
			dataIndex += 1
		case op&opMask == OpLuma:
			if dataIndex+2 > len(data) {
				return nil, truncatedOp("luma", dataIndex)
			}
			last = last.applyLuma(op, data[dataIndex+1])
			seen.update(last)
			dataIndex += 2
		}

		for i := 0; i < run; i++ {
			out = last.appendTo(out, hasAlpha)
		}
	}
	return out, nil
}

func truncatedOp(name string, offset int) error {
	return fmt.Errorf("%w: %s opcode at offset %d runs into the end of file marker", ErrCorrupt, name, HeaderSize+offset)
}

// capacityHint sizes the output buffer from the header, bounded by what the
// opcode region can produce.
func capacityHint(header Header, opBytes int) int {
	size := header.BufferSize()
	limit := uint64(opBytes) * maxRun * uint64(header.Channels())
	if size > limit {
		size = limit
	}
	return int(size)
}
