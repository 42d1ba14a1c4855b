package watermark

import (
	"image"
	"image/draw"
)

// NormalizeRGBA returns a mutable RGBA working buffer for img with the alpha
// channel flattened to opaque, the canonical three-channel form all blending
// operates on. Four-channel sources have their alpha dropped, single-channel
// sources are replicated across RGB by the draw conversion. When img is
// already an *image.RGBA the same buffer is returned, flattened in place, so
// callers that need the original must copy first.
func NormalizeRGBA(img image.Image) *image.RGBA {
	var rgba *image.RGBA
	switch src := img.(type) {
	case *image.RGBA:
		rgba = src
	case *image.NRGBA:
		// Drop the alpha channel outright rather than premultiplying
		// through draw, so translucent pixels keep their color values.
		rgba = image.NewRGBA(src.Bounds())
		copy(rgba.Pix, src.Pix)
	default:
		bounds := img.Bounds()
		rgba = image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}

	for i := 3; i < len(rgba.Pix); i += 4 {
		rgba.Pix[i] = 0xff
	}
	return rgba
}

func emptyImage(img image.Image) bool {
	return img == nil || img.Bounds().Empty()
}
