package watermark

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayCapture(side int, value uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, side, side))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

func gradientCapture(side int, lo, hi uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, side, side))
	span := int(hi) - int(lo)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			v := int(lo) + span*(x+y)/(2*(side-1))
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}

func TestAlphaMapFromCapture(t *testing.T) {
	m := alphaMapFromCapture(grayCapture(48, 128), 48)
	require.Equal(t, 48, m.Width())
	require.Equal(t, 48, m.Height())

	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			assert.InDelta(t, 128.0/255.0, float64(m.At(x, y)), 1e-3)
		}
	}
}

func TestAlphaMapCanonicalResize(t *testing.T) {
	// Oversized captures are area-averaged down to the canonical side.
	m := alphaMapFromCapture(grayCapture(96, 200), 48)
	assert.Equal(t, 48, m.Width())
	assert.Equal(t, 48, m.Height())
	for _, v := range m.values {
		assert.InDelta(t, 200.0/255.0, float64(v), 1e-3)
	}
}

func TestAlphaMapBounds(t *testing.T) {
	m := alphaMapFromCapture(gradientCapture(96, 0, 255), 96)
	for _, v := range m.values {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}

	// Resampling preserves the [0, 1] bound in both directions.
	for _, dims := range [][2]int{{30, 30}, {96, 96}, {150, 70}, {200, 200}} {
		r := m.resample(dims[0], dims[1])
		assert.Equal(t, dims[0], r.Width())
		assert.Equal(t, dims[1], r.Height())
		for _, v := range r.values {
			assert.GreaterOrEqual(t, v, float32(0))
			assert.LessOrEqual(t, v, float32(1))
		}
	}
}

func TestResampleUniformStaysUniform(t *testing.T) {
	m := alphaMapFromCapture(grayCapture(96, 128), 96)

	down := m.resample(40, 40)
	for _, v := range down.values {
		assert.InDelta(t, 128.0/255.0, float64(v), 1e-3)
	}

	up := m.resample(130, 130)
	for _, v := range up.values {
		assert.InDelta(t, 128.0/255.0, float64(v), 1e-3)
	}
}

func TestResampleSameSizeIsCopy(t *testing.T) {
	m := alphaMapFromCapture(grayCapture(48, 100), 48)
	c := m.resample(48, 48)

	c.values[0] = 0.999
	assert.InDelta(t, 100.0/255.0, float64(m.At(0, 0)), 1e-3, "canonical map must stay immutable")
}
