package imaging

// ResolveSize computes the output dimensions for a resize request. A zero
// width or height means that dimension was not requested. The caller is
// expected to have validated the request (at least one dimension given,
// all values positive).
//
// Without aspect preservation, missing dimensions default to the original
// and given ones are used verbatim, which permits non-uniform stretching.
// With aspect preservation, a single given dimension derives the other
// from the original ratio; when both are given the result fits inside the
// requested box using the smaller (more constraining) scale ratio. The
// ratio comparison is strict: equal ratios take the height-adjustment
// branch, which reproduces the requested pair exactly.
//
// Fractional results truncate toward zero, with a floor of 1 so the
// returned dimensions are always positive.
func ResolveSize(origWidth, origHeight, width, height int, preserveAspect bool) (int, int) {
	if !preserveAspect {
		if width == 0 {
			width = origWidth
		}
		if height == 0 {
			height = origHeight
		}
		return atLeastOne(width), atLeastOne(height)
	}

	switch {
	case width == 0:
		aspect := float64(origWidth) / float64(origHeight)
		width = int(float64(height) * aspect)
	case height == 0:
		aspect := float64(origHeight) / float64(origWidth)
		height = int(float64(width) * aspect)
	default:
		widthRatio := float64(width) / float64(origWidth)
		heightRatio := float64(height) / float64(origHeight)
		if widthRatio < heightRatio {
			height = int(float64(origHeight) * widthRatio)
		} else {
			width = int(float64(origWidth) * heightRatio)
		}
	}

	return atLeastOne(width), atLeastOne(height)
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
