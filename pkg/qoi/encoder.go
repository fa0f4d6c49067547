package qoi

import (
	"image"
	"io"
)

type encodeOptions struct {
	alpha  *bool
	linear bool
}

// EncodeOption configures EncodeImage.
type EncodeOption func(*encodeOptions)

// WithAlpha forces 4 channel (true) or 3 channel (false) output. Without it
// the channel count follows whether the image is opaque.
func WithAlpha(alpha bool) EncodeOption {
	return func(o *encodeOptions) {
		o.alpha = &alpha
	}
}

// WithLinear marks the color channels as linear instead of sRGB.
func WithLinear() EncodeOption {
	return func(o *encodeOptions) {
		o.linear = true
	}
}

// EncodeImage encodes img to the QuiteOk image format and writes the encoded bytes to w.
func EncodeImage(w io.Writer, img image.Image, opts ...EncodeOption) error {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	hasAlpha := !IsOpaque(img)
	if o.alpha != nil {
		hasAlpha = *o.alpha
	}

	pixels, header := PixelsFromImage(img, hasAlpha)
	if o.linear {
		header.SRGB = false
	}

	_, err := w.Write(Encode(pixels, header.Width, header.Height, header.HasAlpha, header.SRGB))
	return err
}
