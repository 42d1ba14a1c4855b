package watermark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func stepPlane(w, h int, left, right float64) []float64 {
	plane := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := left
			if x >= w/2 {
				v = right
			}
			plane[y*w+x] = v
		}
	}
	return plane
}

func TestEdgeDensityFlat(t *testing.T) {
	plane := make([]float64, 48*48)
	for i := range plane {
		plane[i] = 120
	}
	assert.Equal(t, 0.0, edgeDensity(plane, 48, 48, detectEdgeLow, detectEdgeHigh))
}

func TestEdgeDensityStep(t *testing.T) {
	// A hard step produces a thin vertical edge line.
	d := edgeDensity(stepPlane(48, 48, 0, 255), 48, 48, detectEdgeLow, detectEdgeHigh)
	assert.Greater(t, d, 0.0)
	assert.Less(t, d, 0.1, "a single edge line should stay sparse")
}

func TestEdgeDensityWeakOnlyDiscarded(t *testing.T) {
	// A step whose gradient clears the low threshold but not the high one
	// has no strong seed, so hysteresis keeps nothing.
	d := edgeDensity(stepPlane(48, 48, 0, 10), 48, 48, detectEdgeLow, detectEdgeHigh)
	assert.Equal(t, 0.0, d)
}

func TestEdgeDensityTooSmall(t *testing.T) {
	assert.Equal(t, 0.0, edgeDensity([]float64{1, 2, 3, 4}, 2, 2, detectEdgeLow, detectEdgeHigh))
}
