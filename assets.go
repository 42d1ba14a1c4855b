package watermark

import (
	"bytes"
	"embed"
	"fmt"
	"image"
)

//go:embed assets/bg_48.png assets/bg_96.png
var embeddedAssets embed.FS

// embeddedCapture serves the bundled reference captures of the Gemini logo
// composited over black, so a zero-option engine works standalone.
func embeddedCapture(class SizeClass) captureSource {
	filename := fmt.Sprintf("assets/bg_%d.png", canonicalSize(class))

	return captureSource{
		origin: "embedded:" + filename,
		load: func() (image.Image, error) {
			data, err := embeddedAssets.ReadFile(filename)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", filename, err)
			}

			img, _, err := Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("decode %s: %w", filename, err)
			}
			return img, nil
		},
	}
}
