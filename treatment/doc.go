// Package treatment implements §4.3's treatment library: pure functions
// that advance a stand.Payload's stand and collected-data by one
// operation. Guard checks, time-point currying, and history appending are
// the eventtree evaluator's job (the "processed-treatment" wrapper); a
// treatment.Func here is the raw, guard-free operation.
//
// Cut, ThinBasalArea, ThinNumberOfStems and MarkTrees all share one
// pattern, implemented once in thinStand: compute before-metrics, run the
// selection engine over a caller-supplied or derived Declaration, clamp
// removed-per-row to available stems, subtract from stems_per_ha
// (copy-on-write), and record a snapshot plus before/after metrics under
// the treatment's collected-data key. MarkTrees differs only in that the
// removed stems are cloned into new rows with overridden attributes
// instead of being dropped, so total stems are conserved.
package treatment
