package compose

import "fmt"

// Margin is the fixed distance, in pixels, between a corner-anchored
// overlay and the video edges.
const Margin = 20

// Placement is the resolved geometry of an overlay: the thumbnail scaled
// to ScaledW x ScaledH with its top-left corner at (X, Y).
type Placement struct {
	ScaledW int
	ScaledH int
	X       int
	Y       int
}

// ResolvePlacement maps video size, thumbnail size, size ratio and anchor
// to a clamped placement. The scaled width is floor(videoW*ratio) and the
// height preserves the thumbnail aspect.
func ResolvePlacement(videoW, videoH, assetW, assetH int, ratio float64, anchor Anchor) (Placement, error) {
	if assetW <= 0 || assetH <= 0 {
		return Placement{}, fmt.Errorf("%w: %dx%d", ErrDegenerateAsset, assetW, assetH)
	}
	if ratio <= 0 || ratio > 1 {
		return Placement{}, fmt.Errorf("size ratio %.3f out of range (0, 1]", ratio)
	}

	scaledW := int(float64(videoW) * ratio)
	scaledH := int(float64(scaledW) * float64(assetH) / float64(assetW))
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}

	if scaledW > videoW || scaledH > videoH {
		return Placement{}, fmt.Errorf("%w: %dx%d over %dx%d video", ErrOversizedAsset, scaledW, scaledH, videoW, videoH)
	}

	var x, y int
	switch anchor {
	case AnchorTopLeft:
		x, y = Margin, Margin
	case AnchorTopRight:
		x, y = videoW-scaledW-Margin, Margin
	case AnchorBottomLeft:
		x, y = Margin, videoH-scaledH-Margin
	case AnchorBottomRight:
		x, y = videoW-scaledW-Margin, videoH-scaledH-Margin
	case AnchorCenter:
		x, y = (videoW-scaledW)/2, (videoH-scaledH)/2
	}

	// Прижимаем к границам: почти полноразмерная миниатюра с отступом
	// может увести начало координат в минус
	x = clamp(x, 0, videoW-scaledW)
	y = clamp(y, 0, videoH-scaledH)

	return Placement{ScaledW: scaledW, ScaledH: scaledH, X: x, Y: y}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
