package yolo

import "math"

// Box is a normalized YOLO bounding box: center and extent as fractions of
// the image dimensions.
type Box struct {
	XCenter float64
	YCenter float64
	Width   float64
	Height  float64
}

// Normalize converts a pixel-space (xmin, ymin, xmax, ymax) box into YOLO
// center/width/height form. Coordinates are clamped to the image bounds
// independently; a box left with zero or negative extent is degenerate and
// reported via the second return value.
func Normalize(xmin, ymin, xmax, ymax, width, height float64) (Box, bool) {
	xmin = clamp(xmin, 0, width-1)
	xmax = clamp(xmax, 0, width-1)
	ymin = clamp(ymin, 0, height-1)
	ymax = clamp(ymax, 0, height-1)

	bw := math.Max(0, xmax-xmin)
	bh := math.Max(0, ymax-ymin)
	if bw <= 0 || bh <= 0 {
		return Box{}, false
	}

	return Box{
		XCenter: (xmin + bw/2) / width,
		YCenter: (ymin + bh/2) / height,
		Width:   bw / width,
		Height:  bh / height,
	}, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
