package watermark

import (
	"image"
	"math"
)

// lumaPlane extracts the Rec.601 luminance of rect as a row-major float64
// grid in [0, 255]. rect must already be clipped to the image bounds.
func lumaPlane(img image.Image, rect image.Rectangle) []float64 {
	w, h := rect.Dx(), rect.Dy()
	plane := make([]float64, w*h)

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			base := src.PixOffset(rect.Min.X, rect.Min.Y+y)
			for x := 0; x < w; x++ {
				plane[y*w+x] = float64(src.Pix[base+x])
			}
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			base := src.PixOffset(rect.Min.X, rect.Min.Y+y)
			for x := 0; x < w; x++ {
				o := base + x*4
				plane[y*w+x] = 0.299*float64(src.Pix[o]) + 0.587*float64(src.Pix[o+1]) + 0.114*float64(src.Pix[o+2])
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, _ := img.At(rect.Min.X+x, rect.Min.Y+y).RGBA()
				plane[y*w+x] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
			}
		}
	}
	return plane
}

// edgeDensity runs a Canny-style detector (Sobel gradient, non-maximum
// suppression, double-threshold hysteresis) over a luminance plane and
// returns the fraction of pixels marked as edges.
func edgeDensity(plane []float64, w, h int, low, high float64) float64 {
	if w < 3 || h < 3 {
		return 0
	}

	mag := make([]float64, w*h)
	dir := make([]uint8, w*h) // gradient direction quantized to 4 bins

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -plane[(y-1)*w+x-1] + plane[(y-1)*w+x+1] +
				-2*plane[y*w+x-1] + 2*plane[y*w+x+1] +
				-plane[(y+1)*w+x-1] + plane[(y+1)*w+x+1]
			gy := -plane[(y-1)*w+x-1] - 2*plane[(y-1)*w+x] - plane[(y-1)*w+x+1] +
				plane[(y+1)*w+x-1] + 2*plane[(y+1)*w+x] + plane[(y+1)*w+x+1]

			i := y*w + x
			mag[i] = math.Hypot(gx, gy)
			dir[i] = quantizeDirection(gx, gy)
		}
	}

	// Offsets to the two neighbors along each quantized gradient direction.
	neighbor := [4][2]int{
		{1, -1},         // horizontal
		{w + 1, -w - 1}, // 45 degrees
		{w, -w},         // vertical
		{w - 1, 1 - w},  // 135 degrees
	}

	const (
		weak   = 1
		strong = 2
	)
	state := make([]uint8, w*h)
	var stack []int

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			m := mag[i]
			if m < low {
				continue
			}
			n := neighbor[dir[i]]
			if m < mag[i+n[0]] || m < mag[i+n[1]] {
				continue
			}
			if m >= high {
				state[i] = strong
				stack = append(stack, i)
			} else {
				state[i] = weak
			}
		}
	}

	// Promote weak pixels 8-connected to a strong one.
	count := 0
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++

		for _, d := range [8]int{-w - 1, -w, -w + 1, -1, 1, w - 1, w, w + 1} {
			j := i + d
			if j >= 0 && j < w*h && state[j] == weak {
				state[j] = strong
				stack = append(stack, j)
			}
		}
	}

	return float64(count) / float64(w*h)
}

// quantizeDirection buckets a gradient vector into one of four directions:
// 0 horizontal, 1 diagonal (45), 2 vertical, 3 anti-diagonal (135).
func quantizeDirection(gx, gy float64) uint8 {
	angle := math.Atan2(gy, gx)
	if angle < 0 {
		angle += math.Pi
	}
	switch {
	case angle < math.Pi/8 || angle >= 7*math.Pi/8:
		return 0
	case angle < 3*math.Pi/8:
		return 1
	case angle < 5*math.Pi/8:
		return 2
	default:
		return 3
	}
}
