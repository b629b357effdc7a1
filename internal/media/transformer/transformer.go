// Package transformer turns one source image into a set of bounded-size
// variants. Rendering is all or nothing: a failed variant fails the set.
package transformer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/alitto/pond/v2"
	"golang.org/x/image/draw"

	"github.com/goalline/sportscache/internal/adapter"
	"github.com/goalline/sportscache/internal/domain"
)

const jpegQuality = 80

// Format selects the encoding of rendered variants
type Format string

const (
	// FormatJPEG suits photographic sources
	FormatJPEG Format = "jpeg"
	// FormatPNG preserves transparency for logos and crests
	FormatPNG Format = "png"
)

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/jpeg"
}

// Ext returns the file extension of the format
func (f Format) Ext() string {
	if f == FormatPNG {
		return "png"
	}
	return "jpg"
}

// VariantSpec describes one target variant
type VariantSpec struct {
	// Name labels the variant and becomes a path segment (sm, md, lg)
	Name string
	// MaxWidth and MaxHeight bound the variant; aspect ratio is preserved
	// and sources smaller than the box are never upscaled
	MaxWidth  int
	MaxHeight int
}

// Variant is one rendered output
type Variant struct {
	Name        string
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Transformer renders image variants
//
//go:generate mockgen -source=transformer.go -destination=../../mocks/transformer.go -package=mocks -mock_names=Transformer=MockTransformer
type Transformer interface {
	// RenderVariants decodes src once and renders every spec, or fails the whole set
	RenderVariants(ctx context.Context, src []byte, specs []VariantSpec, format Format) ([]*Variant, error)
}

type imageTransformer struct {
	codec   adapter.ImageCodec
	pool    pond.ResultPool[*Variant]
	timeout time.Duration
}

// New creates a transformer with a bounded worker pool. The pool caps CPU
// spent on resizing across all concurrent materializations.
func New(codec adapter.ImageCodec, workers int, timeout time.Duration) Transformer {
	if workers <= 0 {
		workers = 4
	}
	return &imageTransformer{
		codec:   codec,
		pool:    pond.NewResultPool[*Variant](workers),
		timeout: timeout,
	}
}

// RenderVariants decodes src once and renders every spec, or fails the whole set
func (t *imageTransformer) RenderVariants(ctx context.Context, src []byte, specs []VariantSpec, format Format) ([]*Variant, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no variant specs", domain.ErrTransformFailure)
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	img, mime, err := t.codec.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("%w: decode (%s): %v", domain.ErrTransformFailure, mime, err)
	}

	tasks := make([]pond.Result[*Variant], len(specs))
	for i, spec := range specs {
		tasks[i] = t.pool.SubmitErr(func() (*Variant, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return t.renderOne(img, spec, format)
		})
	}

	variants := make([]*Variant, len(specs))
	for i, task := range tasks {
		variant, err := task.Wait()
		if err != nil {
			return nil, fmt.Errorf("%w: variant %s: %v", domain.ErrTransformFailure, specs[i].Name, err)
		}
		variants[i] = variant
	}

	return variants, nil
}

func (t *imageTransformer) renderOne(img image.Image, spec VariantSpec, format Format) (*Variant, error) {
	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), spec.MaxWidth, spec.MaxHeight)

	out := img
	if width != bounds.Dx() || height != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := t.codec.EncodePNG(&buf, out); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
	default:
		if err := t.codec.EncodeJPEG(&buf, out, jpegQuality); err != nil {
			return nil, fmt.Errorf("failed to encode jpeg: %w", err)
		}
	}

	return &Variant{
		Name:        spec.Name,
		Data:        buf.Bytes(),
		ContentType: format.ContentType(),
		Width:       width,
		Height:      height,
	}, nil
}

// fitWithin scales (w, h) to fit inside (maxW, maxH) keeping aspect ratio.
// Sources already inside the box keep their size.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	if maxW <= 0 {
		maxW = w
	}
	if maxH <= 0 {
		maxH = h
	}
	if w <= maxW && h <= maxH {
		return w, h
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	width := int(float64(w) * scale)
	height := int(float64(h) * scale)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	return width, height
}
