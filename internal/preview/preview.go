// Package preview derives bounded preview artifacts from file
// content: a thumbnail for images, a truncated excerpt for text,
// nothing for everything else. Derivation never fails outward.
package preview

import (
	"bytes"
	"image"
	"image/jpeg"
	"strings"
	"unicode/utf8"

	"github.com/disintegration/imaging"
)

// Kind classifies a derived artifact.
type Kind int

const (
	KindNone Kind = iota
	KindImage
	KindText
)

const (
	// ThumbMaxSize bounding box edge for image previews
	ThumbMaxSize = 200
	// ThumbQuality JPEG quality for image previews
	ThumbQuality = 80
	// TextMaxChars character cap for text previews
	TextMaxChars = 512
	// TextEllipsis appended when a text preview was truncated
	TextEllipsis = "…"
)

// Artifact is an immutable derived preview. Bytes is nil when Kind
// is KindNone.
type Artifact struct {
	Kind  Kind
	Bytes []byte
	Mime  string
}

// None is the artifact for content nothing can be derived from.
var None = Artifact{Kind: KindNone}

// Derive computes the artifact for content of the given mime type.
// It is a pure function of its inputs: decode and encode failures
// collapse to None instead of propagating.
func Derive(content []byte, mime string) Artifact {
	if len(content) == 0 || mime == "" {
		return None
	}
	switch {
	case strings.HasPrefix(mime, "image/"):
		return deriveImage(content)
	case strings.HasPrefix(mime, "text/"):
		return deriveText(content)
	default:
		return None
	}
}

// deriveImage fits the image into a ThumbMaxSize bounding box and
// re-encodes as JPEG. Images already inside the box pass through at
// their original size, never upscaled.
func deriveImage(content []byte) Artifact {
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return None
	}

	thumb := imaging.Fit(img, ThumbMaxSize, ThumbMaxSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: ThumbQuality}); err != nil {
		return None
	}

	return Artifact{Kind: KindImage, Bytes: buf.Bytes(), Mime: "image/jpeg"}
}

// deriveText truncates to TextMaxChars characters and marks the cut
// with an ellipsis. Content that is not valid UTF-8 gets a
// best-effort single-byte decoding.
func deriveText(content []byte) Artifact {
	var text string
	if utf8.Valid(content) {
		text = string(content)
	} else {
		runes := make([]rune, len(content))
		for i, b := range content {
			runes[i] = rune(b)
		}
		text = string(runes)
	}

	runes := []rune(text)
	if len(runes) > TextMaxChars {
		text = string(runes[:TextMaxChars]) + TextEllipsis
	}

	return Artifact{Kind: KindText, Bytes: []byte(text), Mime: "text/plain; charset=utf-8"}
}
