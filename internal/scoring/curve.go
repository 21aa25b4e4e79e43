package scoring

import "math"

// curvePoint anchors a piecewise-linear ratio curve
type curvePoint struct {
	ratio float64
	score float64
}

// ratioCurve maps a match ratio through a piecewise-linear curve defined by
// ascending anchor points. Ratios outside [0,1] are clamped first.
func ratioCurve(ratio float64, points []curvePoint) int {
	if ratio <= points[0].ratio {
		return int(math.Round(points[0].score))
	}
	last := points[len(points)-1]
	if ratio >= last.ratio {
		return int(math.Round(last.score))
	}
	for i := 1; i < len(points); i++ {
		if ratio < points[i].ratio {
			lo, hi := points[i-1], points[i]
			frac := (ratio - lo.ratio) / (hi.ratio - lo.ratio)
			return int(math.Round(lo.score + frac*(hi.score-lo.score)))
		}
	}
	return int(math.Round(last.score))
}

// clamp bounds v to [lo, hi]
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
