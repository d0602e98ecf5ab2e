package vision

import (
	"bytes"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/screenpilot-dev/screenpilot/pkg/logger"
)

// maxUploadWidth caps the screenshot width sent to the model. Full-resolution
// captures slow inference way down without improving localization; the prompt
// still declares the real device resolution, so answers stay in device pixels.
const maxUploadWidth = 720

// downscale shrinks a PNG to maxUploadWidth, preserving aspect ratio.
// Undecodable or already-small images pass through untouched.
func downscale(data []byte) []byte {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxUploadWidth {
		return data
	}

	scaledH := h * maxUploadWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxUploadWidth, scaledH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return data
	}
	logger.Debug("screenshot downscaled %dx%d -> %dx%d for vision upload", w, h, maxUploadWidth, scaledH)
	return buf.Bytes()
}
