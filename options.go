package watermark

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// captureSource lazily yields a decoded reference capture plus a
// human-readable origin for error reporting.
type captureSource struct {
	origin string
	load   func() (image.Image, error)
}

type engineConfig struct {
	small     captureSource
	large     captureSource
	logoValue float64
	log       *logrus.Logger
}

// Option configures engine construction.
type Option func(*engineConfig)

// WithCaptureFiles loads the small and large reference captures from image
// files instead of the embedded defaults.
func WithCaptureFiles(smallPath, largePath string) Option {
	return func(cfg *engineConfig) {
		cfg.small = fileCapture(smallPath)
		cfg.large = fileCapture(largePath)
	}
}

// WithCaptureBytes loads the reference captures from encoded image buffers.
func WithCaptureBytes(small, large []byte) Option {
	return func(cfg *engineConfig) {
		cfg.small = bytesCapture("small capture bytes", small)
		cfg.large = bytesCapture("large capture bytes", large)
	}
}

// WithCaptureImages uses already-decoded reference captures.
func WithCaptureImages(small, large image.Image) Option {
	return func(cfg *engineConfig) {
		cfg.small = imageCapture("small capture image", small)
		cfg.large = imageCapture("large capture image", large)
	}
}

// WithLogoValue sets the flat intensity of the injected logo layer,
// clamped to [0, 255]. The default is 255 (pure white).
func WithLogoValue(v float64) Option {
	return func(cfg *engineConfig) {
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		cfg.logoValue = v
	}
}

// WithLogger attaches a logger for debug and warning output. The engine is
// silent by default.
func WithLogger(log *logrus.Logger) Option {
	return func(cfg *engineConfig) {
		if log != nil {
			cfg.log = log
		}
	}
}

func fileCapture(path string) captureSource {
	return captureSource{
		origin: path,
		load: func() (image.Image, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			defer f.Close()

			img, _, err := Decode(f)
			return img, err
		},
	}
}

func bytesCapture(origin string, data []byte) captureSource {
	return captureSource{
		origin: origin,
		load: func() (image.Image, error) {
			if len(data) == 0 {
				return nil, fmt.Errorf("empty capture buffer")
			}
			img, _, err := Decode(bytes.NewReader(data))
			return img, err
		},
	}
}

func imageCapture(origin string, img image.Image) captureSource {
	return captureSource{
		origin: origin,
		load: func() (image.Image, error) {
			if emptyImage(img) {
				return nil, fmt.Errorf("nil or empty capture image")
			}
			return img, nil
		},
	}
}

func defaultConfig() engineConfig {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	return engineConfig{
		small:     embeddedCapture(SizeSmall),
		large:     embeddedCapture(SizeLarge),
		logoValue: defaultLogoValue,
		log:       silent,
	}
}
