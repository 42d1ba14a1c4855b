package watermark

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatImage(w, h int, value uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = value
		img.Pix[i+1] = value
		img.Pix[i+2] = value
		img.Pix[i+3] = 255
	}
	return img
}

func TestDetectEmptyImage(t *testing.T) {
	_, ok := DetectWatermark(nil)
	assert.False(t, ok)

	_, ok = DetectWatermark(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.False(t, ok)
}

func TestDetectTinyImageFallsBack(t *testing.T) {
	// 10x10: the placement clips to nothing, so the detector reports the
	// unclipped expected geometry with zero confidence instead of failing.
	result, ok := DetectWatermark(flatImage(10, 10, 100))
	require.True(t, ok)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, ResolvePlacement(10, 10).Rect(), result.Region)
	assert.Equal(t, detectionMethod, result.Method)
}

func TestDetectFlatImageScoresBaseOnly(t *testing.T) {
	// No brightness difference, no reference texture, no edges: only the
	// positional prior contributes.
	result, ok := DetectWatermark(flatImage(200, 200, 100))
	require.True(t, ok)
	assert.InDelta(t, detectBaseScore, result.Confidence, 1e-9)
	assert.Equal(t, ResolvePlacement(200, 200).Rect(), result.Region)
}

func TestDetectBrightnessMonotonic(t *testing.T) {
	footprint := ResolvePlacement(200, 200).Rect()

	brightened := func(delta uint8) *image.RGBA {
		img := flatImage(200, 200, 100)
		for y := footprint.Min.Y; y < footprint.Max.Y; y++ {
			for x := footprint.Min.X; x < footprint.Max.X; x++ {
				img.SetRGBA(x, y, color.RGBA{R: 100 + delta, G: 100 + delta, B: 100 + delta, A: 255})
			}
		}
		return img
	}

	prev := -1.0
	for _, delta := range []uint8{0, 5, 10, 20, 30, 60} {
		result, ok := DetectWatermark(brightened(delta))
		require.True(t, ok)
		assert.GreaterOrEqual(t, result.Confidence, prev, "delta %d", delta)
		prev = result.Confidence
	}

	// A 10-step lift is 10/25 of the brightness scale and nothing else fires.
	result, _ := DetectWatermark(brightened(10))
	assert.InDelta(t, detectBaseScore+detectWeightBright*(10.0/detectBrightnessScale), result.Confidence, 1e-9)

	// Past the clamp the score saturates.
	at30, _ := DetectWatermark(brightened(30))
	at60, _ := DetectWatermark(brightened(60))
	assert.InDelta(t, at30.Confidence, at60.Confidence, 1e-9)
}

func TestDetectConfidenceInRange(t *testing.T) {
	images := []image.Image{
		flatImage(200, 200, 0),
		flatImage(200, 200, 255),
		texturedImage(200, 200),
		texturedImage(1100, 1100),
	}
	for i, img := range images {
		result, ok := DetectWatermark(img)
		require.True(t, ok, "image %d", i)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	}
}

func TestDetectMarkedImageScoresHigher(t *testing.T) {
	// Against the embedded captures: a freshly marked image must score above
	// the bare positional prior of its clean counterpart.
	clean := flatImage(400, 400, 60)
	cleanResult, ok := DetectWatermark(clean)
	require.True(t, ok)
	assert.InDelta(t, detectBaseScore, cleanResult.Confidence, 1e-9)

	marked, err := AddWatermark(flatImage(400, 400, 60))
	require.NoError(t, err)

	markedResult, ok := DetectWatermark(marked)
	require.True(t, ok)
	assert.Greater(t, markedResult.Confidence, cleanResult.Confidence)
}

func TestDetectLargePlacement(t *testing.T) {
	result, ok := DetectWatermark(flatImage(2000, 1500, 100))
	require.True(t, ok)
	assert.Equal(t, image.Rect(1840, 1340, 1936, 1436), result.Region)
}
