// Package persistence implements the event-tree evaluator's sink (C7): it
// records one snapshot per visited node under that node's dash-joined path
// identifier, append-only, with every parent guaranteed already written
// (the evaluator calls in pre-order). Two interchangeable backends
// implement the same Sink interface: an embedded bbolt key-value store
// (the default) and a modernc.org/sqlite relational store for callers
// wanting a queryable artifact.
package persistence
