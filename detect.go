package watermark

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// DetectionResult reports how confidently a watermark occupies the expected
// placement. Region is always the canonical (unclipped) placement rectangle;
// the detector scores a position, it does not relocate it.
type DetectionResult struct {
	Region     image.Rectangle
	Confidence float64
	Method     string
}

const detectionMethod = "alpha_correlation"

// Empirical tuning constants for the combined confidence. Keep them as a set:
// they were fitted together against real Gemini output, and any retuning is a
// deliberate, separately-tested change.
const (
	detectBaseScore       = 0.15 // positional prior alone
	detectBrightnessScale = 25.0 // luma difference mapped to [0, 1]
	detectStddevFloor     = 3.0  // reference texture needed for the variance signal
	detectEdgeLow         = 30.0
	detectEdgeHigh        = 100.0
	detectEdgeMin         = 0.01
	detectEdgeMax         = 0.25
	detectEdgePeak        = 0.06
	detectEdgeFalloff     = 0.15
	detectWeightBright    = 0.35
	detectWeightVariance  = 0.35
	detectWeightEdge      = 0.15
)

// DetectWatermark scores the likelihood that the Gemini watermark occupies
// its expected placement in img. It checks only that single position — a
// deliberate trade-off that keeps detection in the microsecond range instead
// of scanning the whole image.
//
// ok is false only for a nil or empty image; any decodable content yields a
// result. A clipped placement below the minimal usable extent comes back with
// confidence 0 and the unclipped expected rectangle, meaning "not found, used
// fallback geometry".
func DetectWatermark(img image.Image) (result DetectionResult, ok bool) {
	if emptyImage(img) {
		return DetectionResult{}, false
	}

	bounds := img.Bounds()
	pl := ResolvePlacement(bounds.Dx(), bounds.Dy())
	expected := pl.Rect().Add(bounds.Min)

	result = DetectionResult{Region: expected, Method: detectionMethod}

	roi := expected.Intersect(bounds)
	if roi.Dx() < minRegionExtent || roi.Dy() < minRegionExtent {
		return result, true
	}

	region := lumaPlane(img, roi)
	regionMean := stat.Mean(region, nil)

	// Brightness and variance both compare against a reference strip
	// immediately above the footprint, the nearest patch of unmarked
	// background.
	var brightnessScore, varianceScore float64
	refHeight := pl.Origin.Y
	if pl.Side < refHeight {
		refHeight = pl.Side
	}
	if refHeight > 8 {
		refRect := image.Rect(roi.Min.X, roi.Min.Y-refHeight, roi.Max.X, roi.Min.Y).Intersect(bounds)
		if refRect.Dy() > 4 {
			ref := lumaPlane(img, refRect)
			refMean := stat.Mean(ref, nil)

			// A watermark blended toward white lifts local brightness.
			brightnessScore = clampUnit((regionMean - refMean) / detectBrightnessScale)

			// Alpha blending toward a flat color suppresses texture.
			refStddev := stat.StdDev(ref, nil)
			if refStddev > detectStddevFloor {
				regionStddev := stat.StdDev(region, nil)
				varianceScore = clampUnit(1.0 - regionStddev/refStddev)
			}
		}
	}

	// The logo glyph lands in a characteristic edge-density band.
	var edgeScore float64
	density := edgeDensity(region, roi.Dx(), roi.Dy(), detectEdgeLow, detectEdgeHigh)
	if density >= detectEdgeMin && density <= detectEdgeMax {
		edgeScore = clampUnit(1.0 - abs(density-detectEdgePeak)/detectEdgeFalloff)
	}

	result.Confidence = clampUnit(detectBaseScore +
		detectWeightBright*brightnessScore +
		detectWeightVariance*varianceScore +
		detectWeightEdge*edgeScore)

	return result, true
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
