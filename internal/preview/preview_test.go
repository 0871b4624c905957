package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestDeriveImageSmallSourceIsNotUpscaled(t *testing.T) {
	a := Derive(pngBytes(t, 50, 50), "image/png")

	require.Equal(t, KindImage, a.Kind)
	assert.Equal(t, "image/jpeg", a.Mime)

	w, h := decodeDims(t, a.Bytes)
	assert.Equal(t, 50, w)
	assert.Equal(t, 50, h)
}

func TestDeriveImageFitsBoundingBox(t *testing.T) {
	a := Derive(pngBytes(t, 400, 100), "image/png")

	require.Equal(t, KindImage, a.Kind)
	w, h := decodeDims(t, a.Bytes)
	assert.Equal(t, 200, w, "longest edge capped at the box")
	assert.Equal(t, 50, h, "aspect ratio preserved")
}

func TestDeriveImageGarbageYieldsNone(t *testing.T) {
	a := Derive([]byte("definitely not an image"), "image/png")
	assert.Equal(t, None, a)
}

func TestDeriveTextTruncates(t *testing.T) {
	long := strings.Repeat("a", 10000)
	a := Derive([]byte(long), "text/plain")

	require.Equal(t, KindText, a.Kind)
	text := string(a.Bytes)
	assert.True(t, strings.HasSuffix(text, TextEllipsis))
	assert.Equal(t, TextMaxChars+1, utf8.RuneCountInString(text), "512 characters plus the marker")
}

func TestDeriveTextShortPassesThrough(t *testing.T) {
	a := Derive([]byte("hello world"), "text/plain")

	require.Equal(t, KindText, a.Kind)
	assert.Equal(t, "hello world", string(a.Bytes))
}

func TestDeriveTextCountsCharactersNotBytes(t *testing.T) {
	long := strings.Repeat("ä", 600)
	a := Derive([]byte(long), "text/plain")

	require.Equal(t, KindText, a.Kind)
	text := strings.TrimSuffix(string(a.Bytes), TextEllipsis)
	assert.Equal(t, TextMaxChars, utf8.RuneCountInString(text))
}

func TestDeriveTextInvalidUTF8FallsBack(t *testing.T) {
	a := Derive([]byte{0xff, 0xfe, 'h', 'i'}, "text/plain")

	require.Equal(t, KindText, a.Kind)
	assert.True(t, utf8.Valid(a.Bytes), "fallback decoding yields valid UTF-8")
	assert.Contains(t, string(a.Bytes), "hi")
}

func TestDeriveUnsupported(t *testing.T) {
	assert.Equal(t, None, Derive([]byte("%PDF-1.7"), "application/pdf"))
	assert.Equal(t, None, Derive(nil, "text/plain"))
	assert.Equal(t, None, Derive([]byte("x"), ""))
}

func TestCacheMemoizesAndNeverRecomputes(t *testing.T) {
	c := NewCache()
	content := pngBytes(t, 30, 30)

	first := c.GetOrCreate("f1", content, "image/png")
	second := c.GetOrCreate("f1", content, "image/png")

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), c.Derivations(), "hit must not recompute")
}

func TestCacheMemoizesNoneResults(t *testing.T) {
	c := NewCache()

	a := c.GetOrCreate("f1", []byte("binary"), "application/zip")
	assert.Equal(t, None, a)

	c.GetOrCreate("f1", []byte("binary"), "application/zip")
	assert.Equal(t, int64(1), c.Derivations(), "None is memoized too")
	assert.Equal(t, 1, c.Len())
}

func TestCacheEmptyIDBypasses(t *testing.T) {
	c := NewCache()
	assert.Equal(t, None, c.GetOrCreate("", []byte("x"), "text/plain"))
	assert.Zero(t, c.Len())
}

func TestCacheInvalidateAndClear(t *testing.T) {
	c := NewCache()

	c.GetOrCreate("f1", []byte("alpha"), "text/plain")
	c.GetOrCreate("f2", []byte("beta"), "text/plain")
	require.Equal(t, 2, c.Len())

	c.Invalidate("f1")
	_, ok := c.Get("f1")
	assert.False(t, ok)
	_, ok = c.Get("f2")
	assert.True(t, ok)

	c.Clear()
	assert.Zero(t, c.Len())

	c.GetOrCreate("f1", []byte("alpha"), "text/plain")
	assert.Equal(t, int64(3), c.Derivations(), "invalidated entries are derived again")
}
