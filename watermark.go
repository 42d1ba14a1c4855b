package watermark

import (
	"image"
	"sync"
)

var defaultEngine struct {
	once sync.Once
	eng  *Engine
	err  error
}

// DefaultEngine returns a process-wide engine built from the embedded
// reference captures.
func DefaultEngine() (*Engine, error) {
	defaultEngine.once.Do(func() {
		defaultEngine.eng, defaultEngine.err = NewEngine()
	})
	return defaultEngine.eng, defaultEngine.err
}

// RemoveWatermark strips the Gemini watermark using the default engine. The
// input is normalized into a fresh-or-reused RGBA buffer (see NormalizeRGBA)
// which is mutated and returned.
func RemoveWatermark(img image.Image) (*image.RGBA, error) {
	eng, err := DefaultEngine()
	if err != nil {
		return nil, err
	}

	if emptyImage(img) {
		return nil, &InvalidImageError{Reason: "nil or zero-sized buffer"}
	}

	rgba := NormalizeRGBA(img)
	if err := eng.Remove(rgba, SizeAuto); err != nil {
		return nil, err
	}
	return rgba, nil
}

// AddWatermark composites the Gemini watermark using the default engine.
func AddWatermark(img image.Image) (*image.RGBA, error) {
	eng, err := DefaultEngine()
	if err != nil {
		return nil, err
	}

	if emptyImage(img) {
		return nil, &InvalidImageError{Reason: "nil or zero-sized buffer"}
	}

	rgba := NormalizeRGBA(img)
	if err := eng.Add(rgba, SizeAuto); err != nil {
		return nil, err
	}
	return rgba, nil
}
