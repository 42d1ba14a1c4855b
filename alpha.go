package watermark

import "image"

// AlphaMap is a per-pixel opacity grid in [0, 1] describing how strongly the
// logo layer was blended into the base image at each position. Canonical maps
// are built once at engine construction and never mutated; resampled variants
// are fresh copies.
type AlphaMap struct {
	width  int
	height int
	values []float32
}

// Width returns the grid width in pixels.
func (m *AlphaMap) Width() int { return m.width }

// Height returns the grid height in pixels.
func (m *AlphaMap) Height() int { return m.height }

// At returns the opacity at (x, y).
func (m *AlphaMap) At(x, y int) float32 {
	return m.values[y*m.width+x]
}

// alphaMapFromCapture derives an alpha map from a decoded reference capture.
// The capture depicts the fully-white logo composited over solid black, so
// its grayscale brightness directly encodes the blend's alpha scaled to
// [0, 255]. Captures that do not match the canonical side length are
// area-average resampled first; that reduces sensor noise since captures are
// typically at least canonical size.
func alphaMapFromCapture(capture image.Image, side int) AlphaMap {
	bounds := capture.Bounds()
	m := AlphaMap{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		values: make([]float32, bounds.Dx()*bounds.Dy()),
	}

	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := capture.At(x, y).RGBA()
			// Rec.601 luma on 16-bit channels, normalized to [0, 1].
			luma := (0.299*float32(r) + 0.587*float32(g) + 0.114*float32(b)) / 65535.0
			m.values[idx] = clamp01(luma)
			idx++
		}
	}

	if m.width != side || m.height != side {
		m = m.resampleArea(side, side)
	}
	return m
}

// resample scales the map to target dimensions: bilinear when enlarging on
// either axis, area-averaging otherwise. Equal dimensions return a copy.
func (m *AlphaMap) resample(width, height int) AlphaMap {
	if width == m.width && height == m.height {
		out := AlphaMap{width: width, height: height, values: make([]float32, len(m.values))}
		copy(out.values, m.values)
		return out
	}
	if width > m.width || height > m.height {
		return m.resampleBilinear(width, height)
	}
	return m.resampleArea(width, height)
}

// resampleBilinear samples with pixel-center alignment, matching the
// conventional bilinear mapping src = (dst+0.5)*scale - 0.5.
func (m *AlphaMap) resampleBilinear(width, height int) AlphaMap {
	out := AlphaMap{width: width, height: height, values: make([]float32, width*height)}
	scaleX := float64(m.width) / float64(width)
	scaleY := float64(m.height) / float64(height)

	for dy := 0; dy < height; dy++ {
		sy := (float64(dy)+0.5)*scaleY - 0.5
		y0 := int(sy)
		if sy < 0 {
			sy, y0 = 0, 0
		}
		fy := float32(sy - float64(y0))
		y1 := y0 + 1
		if y1 >= m.height {
			y1 = m.height - 1
		}

		for dx := 0; dx < width; dx++ {
			sx := (float64(dx)+0.5)*scaleX - 0.5
			x0 := int(sx)
			if sx < 0 {
				sx, x0 = 0, 0
			}
			fx := float32(sx - float64(x0))
			x1 := x0 + 1
			if x1 >= m.width {
				x1 = m.width - 1
			}

			top := m.At(x0, y0)*(1-fx) + m.At(x1, y0)*fx
			bot := m.At(x0, y1)*(1-fx) + m.At(x1, y1)*fx
			out.values[dy*width+dx] = clamp01(top*(1-fy) + bot*fy)
		}
	}
	return out
}

// resampleArea averages each destination pixel over its exact source box,
// weighting partially covered rows and columns by their overlap.
func (m *AlphaMap) resampleArea(width, height int) AlphaMap {
	out := AlphaMap{width: width, height: height, values: make([]float32, width*height)}
	scaleX := float64(m.width) / float64(width)
	scaleY := float64(m.height) / float64(height)

	for dy := 0; dy < height; dy++ {
		top := float64(dy) * scaleY
		bottom := float64(dy+1) * scaleY
		for dx := 0; dx < width; dx++ {
			left := float64(dx) * scaleX
			right := float64(dx+1) * scaleX

			var sum, area float64
			for sy := int(top); sy < m.height && float64(sy) < bottom; sy++ {
				hy := boxOverlap(float64(sy), top, bottom)
				if hy <= 0 {
					continue
				}
				for sx := int(left); sx < m.width && float64(sx) < right; sx++ {
					hx := boxOverlap(float64(sx), left, right)
					if hx <= 0 {
						continue
					}
					w := hx * hy
					sum += w * float64(m.At(sx, sy))
					area += w
				}
			}
			if area > 0 {
				out.values[dy*width+dx] = clamp01(float32(sum / area))
			}
		}
	}
	return out
}

// boxOverlap returns how much of the unit source cell starting at p overlaps
// the interval [lo, hi).
func boxOverlap(p, lo, hi float64) float64 {
	a := p
	if lo > a {
		a = lo
	}
	b := p + 1
	if hi < b {
		b = hi
	}
	return b - a
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
