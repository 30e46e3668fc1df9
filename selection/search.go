package selection

import "math"

func odds(p float64) float64 { return p / (1 - p) }

func iodds(o float64) float64 {
	if math.IsInf(o, 1) {
		return 1
	}
	return o / (1 + o)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// initSearch picks the binary-search bracket (scale, step) and baseline
// y0 for the given ScalingMode, per §4.1's bracket rules.
func initSearch(mode ScalingMode, y, profY []float64, totalTarget, tmpTotalTarget, curSetTarget, tmpCurSetTarget float64) (scale, step float64, y0 []float64, err error) {
	switch mode {
	case ScaleOddsUnits, ScaleOddsProfile:
		var base []float64
		if mode == ScaleOddsProfile {
			base = profY
		} else {
			base = y
		}
		y0 = make([]float64, len(base))
		for i, v := range base {
			y0[i] = odds(v)
		}
		if tmpTotalTarget > totalTarget || tmpCurSetTarget > curSetTarget {
			scale, step = 0.500001, 1.0
		} else {
			scale, step = 501.0, 1000.0
		}
	case ScaleMultiply:
		scaleMax := 0.0
		anyPositive := false
		anyZero := false
		for _, v := range y {
			if v > 0 {
				anyPositive = true
				if inv := 1 / v; inv > scaleMax {
					scaleMax = inv
				}
			} else {
				anyZero = true
			}
		}
		if !anyPositive {
			scaleMax = 100.0
		} else if anyZero && scaleMax < 100.0 {
			scaleMax = 100.0
		}
		scale = scaleMax / 2
		step = scaleMax / 2
		y0 = append([]float64(nil), y...)
	case ScaleLevel:
		aMax := math.Inf(-1)
		aMin := math.Inf(1)
		for _, v := range y {
			if d := 1 - v; d > aMax {
				aMax = d
			}
			if d := -v; d < aMin {
				aMin = d
			}
		}
		if len(y) == 0 {
			aMax, aMin = 1, 0
		}
		scale = (aMax + aMin) / 2
		step = math.Abs(scale)
		if step == 0 {
			step = aMax
		}
		y0 = append([]float64(nil), y...)
	default:
		return 0, 0, nil, ErrUnknownScalingMode
	}
	return scale, step, y0, nil
}

// scaleRow applies one binary-search candidate scale to y0, producing a
// fresh per-member share vector aligned with memberIdx order.
func scaleRow(mode ScalingMode, y0 []float64, scale float64, profX, baseProfY []float64, memberOrder []float64) ([]float64, error) {
	y := make([]float64, len(memberOrder))
	switch mode {
	case ScaleOddsProfile:
		profY := make([]float64, len(baseProfY))
		for i, o := range y0 {
			profY[i] = iodds(scale * o)
		}
		segs := buildSegments(profX, profY)
		for k, x := range memberOrder {
			y[k] = segs.shareAt(x)
		}
	case ScaleOddsUnits:
		for k, o := range y0 {
			y[k] = iodds(scale * o)
		}
	case ScaleMultiply:
		for k, v := range y0 {
			y[k] = clamp01(scale * v)
		}
	case ScaleLevel:
		for k, v := range y0 {
			y[k] = clamp01(v + scale)
		}
	default:
		return nil, ErrUnknownScalingMode
	}
	for _, v := range y {
		if math.IsNaN(v) {
			return nil, ErrSelectionSearchDiverged
		}
	}
	return y, nil
}
