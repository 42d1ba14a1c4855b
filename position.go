package watermark

import "image"

// SizeClass selects which watermark footprint an operation targets.
type SizeClass int

const (
	// SizeAuto resolves the class from the image dimensions.
	SizeAuto SizeClass = iota
	// SizeSmall is the 48x48 logo with 32px margins.
	SizeSmall
	// SizeLarge is the 96x96 logo with 64px margins.
	SizeLarge
)

// String returns the lowercase class name.
func (c SizeClass) String() string {
	switch c {
	case SizeSmall:
		return "small"
	case SizeLarge:
		return "large"
	default:
		return "auto"
	}
}

const (
	smallLogoSize = 48
	smallMargin   = 32
	largeLogoSize = 96
	largeMargin   = 64

	// sizeThreshold is the dimension above which (on both axes) Gemini
	// switches to the large logo. 1024x1024 itself stays small.
	sizeThreshold = 1024
)

// Placement describes where the square watermark footprint sits.
// Origin can be negative for images smaller than the logo-plus-margin
// footprint; callers clip against the image bounds.
type Placement struct {
	Class  SizeClass
	Origin image.Point
	Side   int
}

// Rect returns the footprint rectangle in image coordinates.
func (p Placement) Rect() image.Rectangle {
	return image.Rect(p.Origin.X, p.Origin.Y, p.Origin.X+p.Side, p.Origin.Y+p.Side)
}

// ResolveSizeClass applies Gemini's placement rule: the large logo is used
// only when both width and height strictly exceed 1024.
func ResolveSizeClass(width, height int) SizeClass {
	if width > sizeThreshold && height > sizeThreshold {
		return SizeLarge
	}
	return SizeSmall
}

// ResolvePlacement maps image dimensions to the expected watermark placement.
// The engine and the detector both go through this function so their notion
// of the expected location never diverges.
func ResolvePlacement(width, height int) Placement {
	return PlacementFor(ResolveSizeClass(width, height), width, height)
}

// PlacementFor anchors the footprint of an explicit size class to the
// bottom-right corner of a width x height image. SizeAuto falls back to
// ResolveSizeClass.
func PlacementFor(class SizeClass, width, height int) Placement {
	if class == SizeAuto {
		class = ResolveSizeClass(width, height)
	}

	side, margin := smallLogoSize, smallMargin
	if class == SizeLarge {
		side, margin = largeLogoSize, largeMargin
	}

	return Placement{
		Class:  class,
		Origin: image.Pt(width-margin-side, height-margin-side),
		Side:   side,
	}
}

func canonicalSize(class SizeClass) int {
	if class == SizeLarge {
		return largeLogoSize
	}
	return smallLogoSize
}
