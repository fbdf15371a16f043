// Package imaging downsizes oversized raster images before they reach the
// blob store. Compression is strictly best-effort: every failure branch
// (unknown format, corrupt bytes, decoder panic, deadline) falls back to the
// original payload so an upload is never blocked by it.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"strings"
	"time"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"

	"github.com/dmitrijs2005/studyos/internal/logging"
)

const (
	// CompressThreshold is the payload size above which compression applies.
	CompressThreshold = 200 << 10 // 200 KiB

	// MaxWidth and MaxHeight bound the output dimensions. Images are scaled
	// down to fit, never up.
	MaxWidth  = 1920
	MaxHeight = 1080

	// JPEGQuality is the re-encode quality.
	JPEGQuality = 80

	// DefaultTimeout caps how long a single compression attempt may run.
	DefaultTimeout = 10 * time.Second
)

type Compressor struct {
	log     logging.Logger
	timeout time.Duration
}

func NewCompressor(log logging.Logger) *Compressor {
	return &Compressor{log: log, timeout: DefaultTimeout}
}

// ShouldCompress reports whether the policy applies to a payload: raster
// images only, GIFs excluded (animation frames would be dropped), and only
// above the size threshold.
func (c *Compressor) ShouldCompress(mimeType string, size int) bool {
	if !strings.HasPrefix(mimeType, "image/") {
		return false
	}
	if mimeType == "image/gif" {
		return false
	}
	return size > CompressThreshold
}

// Compress re-encodes data as a JPEG scaled to fit MaxWidth×MaxHeight.
// It returns the resulting bytes and true, or the original bytes and false
// when the policy does not apply or any step fails. It always returns before
// the context deadline plus the compressor timeout, whichever is sooner.
func (c *Compressor) Compress(ctx context.Context, name, mimeType string, data []byte) ([]byte, bool) {
	if !c.ShouldCompress(mimeType, len(data)) {
		return data, false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}

	// The decode/encode runs on its own goroutine so a pathological input can
	// never hang the upload path; on timeout the goroutine's eventual result
	// is dropped.
	ch := make(chan result, 1)
	go func() {
		out, err := reencode(data)
		ch <- result{data: out, err: err}
	}()

	select {
	case <-ctx.Done():
		c.log.Warn(ctx, "image compression timed out, storing original", "file", name)
		return data, false
	case res := <-ch:
		if res.err != nil {
			c.log.Warn(ctx, "image compression failed, storing original", "file", name, "error", res.err.Error())
			return data, false
		}
		return res.data, true
	}
}

// reencode decodes, scales down and JPEG-encodes the image. Decoder panics on
// malformed input are converted into errors.
func reencode(data []byte) (out []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("decoder panic: %v", p)
		}
	}()

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty image %dx%d", w, h)
	}

	nw, nh := fitDimensions(w, h)
	if nw != w || nh != h {
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return buf.Bytes(), nil
}

// fitDimensions scales (w, h) down to fit MaxWidth×MaxHeight preserving the
// aspect ratio. Dimensions already inside the bounds are returned unchanged.
func fitDimensions(w, h int) (int, int) {
	scale := 1.0
	if sw := float64(MaxWidth) / float64(w); sw < scale {
		scale = sw
	}
	if sh := float64(MaxHeight) / float64(h); sh < scale {
		scale = sh
	}
	if scale >= 1.0 {
		return w, h
	}

	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
