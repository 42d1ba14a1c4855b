package watermark

import (
	"fmt"
	"image"
)

// ResourceLoadError reports a reference capture that could not be loaded or
// decoded during engine construction. It names the size class and the origin
// of the capture (a file path, or "embedded"/"bytes" for in-memory sources).
type ResourceLoadError struct {
	Class  SizeClass
	Origin string
	Err    error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("load %s watermark capture from %s: %v", e.Class, e.Origin, e.Err)
}

func (e *ResourceLoadError) Unwrap() error { return e.Err }

// InvalidImageError reports an operation that received a nil or empty image
// buffer. It is local to that call; the engine stays usable.
type InvalidImageError struct {
	Reason string
}

func (e *InvalidImageError) Error() string {
	return "invalid image: " + e.Reason
}

// InvalidRegionError reports a caller-supplied region too small to hold a
// usable watermark footprint.
type InvalidRegionError struct {
	Region image.Rectangle
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("invalid watermark region %v: smaller than %dx%d", e.Region, minRegionExtent, minRegionExtent)
}
