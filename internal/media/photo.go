package media

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	MaxPhotoBytes = 5 << 20
	MaxPhotoSide  = 512
	PhotoQuality  = 80

	// MaxPhotoPixels bounds width*height as declared by the image header.
	MaxPhotoPixels = 40_000_000

	WebPContentType = "image/webp"
)

// EncodeWebP decodes a JPEG, PNG or WebP upload, shrinks it so neither
// side exceeds MaxPhotoSide and re-encodes it as lossy WebP.
func EncodeWebP(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPhotoBytes+1))
	if err != nil {
		return nil, httperr.InvalidRequest("could not read photo")
	}
	if len(data) > MaxPhotoBytes {
		return nil, httperr.InvalidRequest("photo is too large")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, httperr.InvalidRequest("photo must be a JPEG, PNG or WebP image")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPhotoPixels {
		return nil, httperr.InvalidRequest("photo dimensions are too large")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, httperr.InvalidRequest("photo must be a JPEG, PNG or WebP image")
	}

	img := fit(src, MaxPhotoSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: PhotoQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, side int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= side && h <= side {
		return src
	}

	if w >= h {
		h = h * side / w
		w = side
	} else {
		w = w * side / h
		h = side
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
