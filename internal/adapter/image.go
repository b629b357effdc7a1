package adapter

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	// Registered decoders for the formats the origin serves
	_ "image/gif"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

// ImageCodec defines an interface for decoding and encoding images
//
//go:generate mockgen -source=image.go -destination=../mocks/image.go -package=mocks -mock_names=ImageCodec=MockImageCodec
type ImageCodec interface {
	// Decode sniffs the MIME type of raw bytes and decodes them into an image
	Decode(data []byte) (image.Image, string, error)
	// EncodePNG encodes an image to PNG format
	EncodePNG(w io.Writer, img image.Image) error
	// EncodeJPEG encodes an image to JPEG format with specified quality
	EncodeJPEG(w io.Writer, img image.Image, quality int) error
}

// RealImageCodec implements ImageCodec using the standard library decoders
type RealImageCodec struct{}

// NewImageCodec creates a new real image codec
func NewImageCodec() ImageCodec {
	return &RealImageCodec{}
}

// Decode sniffs the MIME type of raw bytes and decodes them into an image.
// Returns the detected MIME type alongside the decoded image.
func (c *RealImageCodec) Decode(data []byte) (image.Image, string, error) {
	mime := mimetype.Detect(data)
	if !isSupportedImageMIME(mime.String()) {
		return nil, mime.String(), fmt.Errorf("unsupported content type: %s", mime.String())
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, mime.String(), fmt.Errorf("failed to decode image: %w", err)
	}

	return img, mime.String(), nil
}

// EncodePNG encodes an image to PNG format
func (c *RealImageCodec) EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeJPEG encodes an image to JPEG format with specified quality
func (c *RealImageCodec) EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

func isSupportedImageMIME(mime string) bool {
	switch mime {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return true
	}
	return false
}
