package watermark

import (
	"image"
	"math"

	"github.com/sirupsen/logrus"
)

const (
	// Alpha below this is treated as fully transparent and skipped.
	alphaThreshold = 0.002
	// Alpha is clamped here so the inverse blend's denominator stays away
	// from zero; near 1.0 the division would explode into non-finite values.
	maxAlpha = 0.99

	defaultLogoValue = 255.0

	// Footprints smaller than this after clipping carry no usable signal.
	minRegionExtent = 8
)

// Engine owns the two canonical alpha maps and the scalar logo intensity and
// performs forward and inverse alpha blending over watermark footprints. The
// maps are immutable after construction, so a single Engine is safe for
// concurrent use as long as each call gets its own image buffer.
type Engine struct {
	small     AlphaMap
	large     AlphaMap
	logoValue float64
	log       *logrus.Logger
}

// NewEngine builds an engine from the configured reference captures (the
// embedded defaults unless overridden). Capture failures surface as
// *ResourceLoadError; there is no partially constructed engine.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	small, err := loadAlphaMap(cfg.small, SizeSmall, cfg.log)
	if err != nil {
		return nil, err
	}
	large, err := loadAlphaMap(cfg.large, SizeLarge, cfg.log)
	if err != nil {
		return nil, err
	}

	cfg.log.WithFields(logrus.Fields{
		"small":      small.Width(),
		"large":      large.Width(),
		"logo_value": cfg.logoValue,
	}).Debug("alpha maps ready")

	return &Engine{
		small:     small,
		large:     large,
		logoValue: cfg.logoValue,
		log:       cfg.log,
	}, nil
}

func loadAlphaMap(src captureSource, class SizeClass, log *logrus.Logger) (AlphaMap, error) {
	capture, err := src.load()
	if err != nil {
		return AlphaMap{}, &ResourceLoadError{Class: class, Origin: src.origin, Err: err}
	}

	side := canonicalSize(class)
	bounds := capture.Bounds()
	if bounds.Dx() != side || bounds.Dy() != side {
		log.WithFields(logrus.Fields{
			"class": class.String(),
			"have":  bounds.Size(),
			"want":  side,
		}).Warn("capture size mismatch, resampling to canonical size")
	}

	return alphaMapFromCapture(capture, side), nil
}

// LogoValue reports the configured flat logo intensity.
func (e *Engine) LogoValue() float64 { return e.logoValue }

// Add composites the watermark onto img in place at the placement for the
// given size class. SizeAuto resolves the class from the image dimensions.
func (e *Engine) Add(img *image.RGBA, class SizeClass) error {
	return e.apply(img, class, false)
}

// Remove strips the watermark from img in place, inverting the blend Add
// performs. Add then Remove reproduces the original pixels within 8-bit
// rounding wherever the alpha map sits strictly inside (0, 1).
func (e *Engine) Remove(img *image.RGBA, class SizeClass) error {
	return e.apply(img, class, true)
}

func (e *Engine) apply(img *image.RGBA, class SizeClass, invert bool) error {
	if img == nil || img.Bounds().Empty() {
		return &InvalidImageError{Reason: "nil or zero-sized buffer"}
	}
	flattenAlpha(img)

	bounds := img.Bounds()
	pl := PlacementFor(class, bounds.Dx(), bounds.Dy())
	m := e.alphaMap(pl.Class)
	origin := pl.Origin.Add(bounds.Min)

	e.log.WithFields(logrus.Fields{
		"class":  pl.Class.String(),
		"origin": origin,
		"invert": invert,
	}).Debug("applying watermark blend")

	e.blend(img, m, origin, invert)
	return nil
}

// AddCustom composites the watermark over an explicit rectangle. Rectangles
// matching a canonical 48 or 96 square use that alpha map verbatim; any other
// size gets a map resampled from the large canonical map for this call only.
func (e *Engine) AddCustom(img *image.RGBA, region image.Rectangle) error {
	return e.applyCustom(img, region, false)
}

// RemoveCustom is the inverse blend over an explicit rectangle.
func (e *Engine) RemoveCustom(img *image.RGBA, region image.Rectangle) error {
	return e.applyCustom(img, region, true)
}

func (e *Engine) applyCustom(img *image.RGBA, region image.Rectangle, invert bool) error {
	if img == nil || img.Bounds().Empty() {
		return &InvalidImageError{Reason: "nil or zero-sized buffer"}
	}

	region = region.Canon()
	if region.Dx() < minRegionExtent || region.Dy() < minRegionExtent {
		return &InvalidRegionError{Region: region}
	}
	flattenAlpha(img)

	w, h := region.Dx(), region.Dy()
	if w == smallLogoSize && h == smallLogoSize {
		e.blend(img, &e.small, region.Min, invert)
		return nil
	}
	if w == largeLogoSize && h == largeLogoSize {
		e.blend(img, &e.large, region.Min, invert)
		return nil
	}

	// Resample from the large map: higher resolution, better quality.
	custom := e.large.resample(w, h)
	e.log.WithFields(logrus.Fields{
		"width":  w,
		"height": h,
	}).Debug("resampled custom alpha map")

	e.blend(img, &custom, region.Min, invert)
	return nil
}

func (e *Engine) alphaMap(class SizeClass) *AlphaMap {
	if class == SizeLarge {
		return &e.large
	}
	return &e.small
}

// blend applies the forward composite (or its inverse) of the alpha map at
// origin, mutating img in place. The footprint is intersected with the image
// bounds; a clipped footprint below the minimal usable extent is a logged
// no-op, since blending over nothing is harmless.
func (e *Engine) blend(img *image.RGBA, m *AlphaMap, origin image.Point, invert bool) {
	footprint := image.Rect(origin.X, origin.Y, origin.X+m.Width(), origin.Y+m.Height())
	roi := footprint.Intersect(img.Bounds())
	if roi.Dx() < minRegionExtent || roi.Dy() < minRegionExtent {
		e.log.WithField("footprint", footprint).Warn("watermark footprint degenerate after clipping, skipping blend")
		return
	}

	for py := roi.Min.Y; py < roi.Max.Y; py++ {
		row := py - footprint.Min.Y
		for px := roi.Min.X; px < roi.Max.X; px++ {
			alpha := float64(m.At(px-footprint.Min.X, row))
			if alpha < alphaThreshold {
				continue
			}
			if alpha > maxAlpha {
				alpha = maxAlpha
			}

			offset := img.PixOffset(px, py)
			for c := 0; c < 3; c++ {
				v := float64(img.Pix[offset+c])
				if invert {
					v = (v - alpha*e.logoValue) / (1.0 - alpha)
				} else {
					v = v*(1.0-alpha) + alpha*e.logoValue
				}

				v = math.Round(v)
				if v < 0 {
					v = 0
				} else if v > 255 {
					v = 255
				}
				img.Pix[offset+c] = uint8(v)
			}
		}
	}
}

// flattenAlpha normalizes the buffer to the canonical opaque three-channel
// form before blending.
func flattenAlpha(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}
