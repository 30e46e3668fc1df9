// Package guard implements §4.4's condition guards: predicates over a
// stand.Payload that either clear (nil error) or raise ErrConditionFailed,
// which the eventtree evaluator converts into branch pruning. Guards are
// attached to a processed-treatment as preconditions (checked before the
// treatment runs) or postconditions (checked after).
package guard
