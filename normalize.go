package builder

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"math"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"

	// Register decoders for the formats users actually upload.
	_ "image/gif"
	_ "image/png"
)

// Photo normalization limits.
const (
	maxPhotoBytes    = 8 << 20 // upload ceiling
	maxPhotoWidth    = 2200
	maxPhotoHeight   = 2200
	photoJPEGQuality = 90
)

// photoNormalizer produces a bounded-resolution photo payload from raw
// upload bytes.
type photoNormalizer interface {
	Normalize(data []byte) (string, error)
}

// Compile-time interface check.
var _ photoNormalizer = (*imagingNormalizer)(nil)

// imagingNormalizer decodes, shrinks and re-encodes uploaded photos.
type imagingNormalizer struct{}

// Normalize converts raw upload bytes into a compact JPEG data URI.
//
// The photo is only ever shrunk, never enlarged: scale is
// min(maxW/W, maxH/H, 1). Oversized uploads return ErrPhotoTooLarge with
// an empty payload; the caller is expected to warn and continue. Bytes
// that fail to decode but still sniff as an image pass through
// un-reencoded; anything else degrades to an empty payload.
func (imagingNormalizer) Normalize(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if len(data) > maxPhotoBytes {
		return "", ErrPhotoTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if mime := http.DetectContentType(data); strings.HasPrefix(mime, "image/") {
			return dataURI(mime, data), nil
		}
		return "", nil
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := math.Min(math.Min(maxPhotoWidth/float64(w), maxPhotoHeight/float64(h)), 1)
	if scale < 1 {
		img = imaging.Resize(img,
			int(math.Round(float64(w)*scale)),
			int(math.Round(float64(h)*scale)),
			imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: photoJPEGQuality}); err != nil {
		return "", nil
	}

	return dataURI("image/jpeg", buf.Bytes()), nil
}

// dataURI encodes bytes as a base64 data URI with the given MIME type.
func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// decodeDataURI reverses dataURI. Returns nil for anything that is not a
// well-formed base64 data URI.
func decodeDataURI(uri string) []byte {
	const marker = ";base64,"
	if !strings.HasPrefix(uri, "data:") {
		return nil
	}
	idx := strings.Index(uri, marker)
	if idx < 0 {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(uri[idx+len(marker):])
	if err != nil {
		return nil
	}
	return data
}
