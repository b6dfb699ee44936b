// file: internals/helpers/images/normalizer.go
package images

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

/* =======================================================================
   Normalizer foto pelanggaran: resize + kompres JPEG sampai masuk budget.
   Kegagalan decode = kegagalan per-file, bukan fatal untuk batch upload.
======================================================================= */

const (
	DefaultTargetKB = 100
	maxDimension    = 1024

	qualityStart = 90
	qualityStep  = 10
	qualityFloor = 10
)

type Result struct {
	Data    []byte
	Quality int // kualitas JPEG terakhir yang dipakai
	Width   int
	Height  int
}

// Normalize men-decode gambar (jpeg/png/webp), menyesuaikan dimensi maksimal
// 1024px (keep aspect), lalu re-encode JPEG mulai kualitas 90 turun 10 per
// iterasi sampai ukuran <= targetKB atau kualitas mentok di 10. Floor adalah
// hard stop: hasil terkecil tetap dikembalikan walau masih di atas target.
func Normalize(raw []byte, filename string, targetKB int) (*Result, error) {
	if targetKB <= 0 {
		targetKB = DefaultTargetKB
	}

	img, err := decodeImage(raw, filename)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
		b = img.Bounds()
	}

	target := targetKB * 1024
	var out []byte
	quality := qualityStart
	for {
		buf := new(bytes.Buffer)
		if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, fmt.Errorf("encode jpeg q=%d: %w", quality, err)
		}
		out = buf.Bytes()

		if len(out) <= target || quality <= qualityFloor {
			break
		}
		quality -= qualityStep
	}

	return &Result{
		Data:    out,
		Quality: quality,
		Width:   b.Dx(),
		Height:  b.Dy(),
	}, nil
}

/* =======================================================================
   Decode gambar (jpeg/png/webp) dari []byte dengan sniff MIME
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	var (
		img image.Image
		err error
	)

	switch {
	case strings.Contains(ct, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		img, err = png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		img, err = webp.Decode(bytes.NewReader(all))
	default:
		// fallback by extension
		ext := strings.ToLower(filepath.Ext(filename))
		switch ext {
		case ".jpg", ".jpeg":
			img, err = jpeg.Decode(bytes.NewReader(all))
		case ".png":
			img, err = png.Decode(bytes.NewReader(all))
		case ".webp":
			img, err = webp.Decode(bytes.NewReader(all))
		default:
			return nil, fmt.Errorf("format tidak didukung: %s / %s", ct, ext)
		}
	}
	return img, err
}
