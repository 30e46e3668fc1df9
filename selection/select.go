package selection

import "math"

// Input bundles everything Select needs: the population, the global
// target declaration, the ordered selection sets, the frequency column's
// name, and which rows a unit can be drawn from.
type Input struct {
	Context any
	Data    DataBlock

	HasTarget bool // false => unbounded (+Inf) target, per the nil-target open question
	Target    Target

	Sets []SelectionSet

	FreqVar    string
	SelectFrom SelectFrom

	// IterationObserver, if set, is called once per evaluated selection
	// set with the number of binary-search iterations that set required
	// (0 for a set that short-circuited or had no target). Sets skipped
	// for an empty membership mask, or not reached because the global
	// target was already met, are not reported. Purely an
	// observability hook; callers that don't care may leave it nil.
	IterationObserver func(setIndex, iterations int)
}

// Select computes, for each row of in.Data, the number of units (stems per
// hectare, or marked count) to remove/mark so that the ordered Sets
// collectively reach in.Target within tolerance. See the package doc for
// the algorithm and the possible errors.
func Select(in Input) ([]float64, error) {
	n := in.Data.Len()

	for _, set := range in.Sets {
		if err := validateProfileY(set.ProfileY); err != nil {
			return nil, err
		}
	}

	allMask := make([]bool, n)
	for i := range allMask {
		allMask[i] = true
	}
	totalTarget, err := computeTarget(in.Data, allMask, in.FreqVar, in.HasTarget, in.Target.Type, in.Target.Variable, in.Target.Amount)
	if err != nil {
		return nil, err
	}

	const epsStep = 1e-4
	epsTotal := math.Max(0.005, math.Min(totalTarget*0.001, 100))

	selected := make([]float64, n)
	totalSelected := 0.0
	freq, hasFreq := in.Data.Column(in.FreqVar)
	if !hasFreq {
		freq = make([]float64, n)
	}

	for setIndex, set := range in.Sets {
		if withinTolerance(totalTarget, totalSelected, epsTotal) {
			break
		}

		mask := set.Membership(in.Context, in.Data)
		memberIdx := maskIndices(mask)
		if len(memberIdx) == 0 {
			continue
		}

		curSetTarget, err := computeTarget(in.Data, mask, in.FreqVar, set.HasTarget, set.TargetType, set.TargetVariable, set.TargetAmount)
		if err != nil {
			return nil, err
		}

		orderVals, _ := in.Data.Column(set.OrderVariable)
		memberOrder := make([]float64, len(memberIdx))
		for k, idx := range memberIdx {
			memberOrder[k] = orderVals[idx]
		}

		profX, err := resolveProfileX(set, in.Data, memberOrder)
		if err != nil {
			return nil, err
		}
		segs := buildSegments(profX, set.ProfileY)

		y := make([]float64, len(memberIdx))
		for k, x := range memberOrder {
			y[k] = segs.shareAt(x)
		}

		computeUnits := func(y []float64) []float64 {
			units := make([]float64, len(memberIdx))
			for k, idx := range memberIdx {
				f := freq[idx]
				already := selected[idx]
				switch in.SelectFrom {
				case SelectFromRemaining:
					units[k] = math.Max(0, y[k]*(f-already))
				default:
					units[k] = math.Min(y[k]*f, f-already)
				}
			}
			return units
		}

		units := computeUnits(y)

		// Short-circuit: a relative/1.0 global target paired with a
		// relative/1.0 set target assigns the set's entire frequency to
		// units, bypassing the binary search (§4.1 edge case).
		shortCircuit := in.HasTarget && in.Target.Type == TargetRelative && in.Target.Amount == 1.0 &&
			set.HasTarget && set.TargetType == TargetRelative && set.TargetAmount == 1.0
		if shortCircuit {
			for k, idx := range memberIdx {
				units[k] = freq[idx]
			}
		}

		tmpTotal := totalSelected + weightedSumIdx(in.Data, units, memberIdx, in.Target.Variable, in.FreqVar)
		tmpSub := weightedSumIdx(in.Data, units, memberIdx, set.TargetVariable, in.FreqVar)

		iterations := 0
		if !shortCircuit && set.HasTarget && !math.IsInf(curSetTarget, 1) {
			epsSet := math.Max(0.005, curSetTarget*0.001)
			scale, step, y0, err := initSearch(set.Mode, y, set.ProfileY, totalTarget, tmpTotal, curSetTarget, tmpSub)
			if err != nil {
				return nil, err
			}

			memberFreqSum := 0.0
			for _, idx := range memberIdx {
				memberFreqSum += freq[idx]
			}

			for {
				belowBothWithRoom := tmpSub < curSetTarget-epsSet &&
					tmpTotal < totalTarget-epsTotal &&
					memberFreqSum > sumUnitsPlusSelected(units, memberIdx, selected)
				overshot := tmpSub > curSetTarget+epsSet || tmpTotal > totalTarget+epsTotal
				if !((belowBothWithRoom || overshot) && step > epsStep) {
					break
				}
				iterations++

				y, err = scaleRow(set.Mode, y0, scale, profX, set.ProfileY, memberOrder)
				if err != nil {
					return nil, err
				}
				units = computeUnits(y)

				tmpTotal = totalSelected + weightedSumIdx(in.Data, units, memberIdx, in.Target.Variable, in.FreqVar)
				tmpSub = weightedSumIdx(in.Data, units, memberIdx, set.TargetVariable, in.FreqVar)

				step /= 2
				if tmpSub > curSetTarget+epsSet || tmpTotal > totalTarget+epsTotal {
					scale -= step
				} else {
					scale += step
				}
			}
		}
		if in.IterationObserver != nil {
			in.IterationObserver(setIndex, iterations)
		}

		for k, idx := range memberIdx {
			if units[k] < 0 {
				return nil, ErrNegativeRemoval
			}
			selected[idx] += units[k]
		}
		totalSelected = tmpTotal
	}

	return selected, nil
}

func withinTolerance(target, value, eps float64) bool {
	return value >= target-eps && value <= target+eps
}

func maskIndices(mask []bool) []int {
	idx := make([]int, 0, len(mask))
	for i, v := range mask {
		if v {
			idx = append(idx, i)
		}
	}
	return idx
}

// sumUnitsPlusSelected sums, over a set's members, the candidate units
// plus whatever was already selected by earlier sets — used to detect
// that a set's members are fully exhausted.
func sumUnitsPlusSelected(units []float64, memberIdx []int, selected []float64) float64 {
	sum := 0.0
	for k, idx := range memberIdx {
		sum += selected[idx] + units[k]
	}
	return sum
}
