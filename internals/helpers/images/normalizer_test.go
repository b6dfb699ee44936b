package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gambar noise supaya JPEG susah dikompres (menguji loop penurunan kualitas)
func noisyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func flatPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 60, B: 90, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestNormalizeUnderTargetOrFloor(t *testing.T) {
	raw := noisyPNG(t, 800, 600)

	res, err := Normalize(raw, "foto.png", 50)
	require.NoError(t, err)
	require.NotEmpty(t, res.Data)

	if len(res.Data) > 50*1024 {
		// boleh lewat target hanya kalau kualitas sudah mentok di floor
		assert.Equal(t, qualityFloor, res.Quality)
	}
}

func TestNormalizeEasyImageStaysHighQuality(t *testing.T) {
	raw := flatPNG(t, 400, 300)

	res, err := Normalize(raw, "foto.png", DefaultTargetKB)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Data), DefaultTargetKB*1024)
	assert.Equal(t, qualityStart, res.Quality, "gambar polos tidak perlu diturunkan kualitasnya")
}

func TestNormalizeDownscalesLargeImage(t *testing.T) {
	raw := flatPNG(t, 2048, 1024)

	res, err := Normalize(raw, "besar.png", DefaultTargetKB)
	require.NoError(t, err)
	assert.Equal(t, 1024, res.Width)
	assert.Equal(t, 512, res.Height, "aspect ratio harus dipertahankan")
}

func TestNormalizeSmallImageKeepsDimensions(t *testing.T) {
	raw := flatPNG(t, 640, 480)

	res, err := Normalize(raw, "kecil.png", DefaultTargetKB)
	require.NoError(t, err)
	assert.Equal(t, 640, res.Width)
	assert.Equal(t, 480, res.Height)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := Normalize([]byte("bukan gambar sama sekali"), "data.txt", DefaultTargetKB)
	assert.Error(t, err)

	_, err = Normalize(nil, "kosong.jpg", DefaultTargetKB)
	assert.Error(t, err)
}

func TestNormalizeOutputIsJPEG(t *testing.T) {
	raw := flatPNG(t, 100, 100)

	res, err := Normalize(raw, "foto.png", DefaultTargetKB)
	require.NoError(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, cfg.Width)
}
