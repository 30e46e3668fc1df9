// Package simulator implements the driver (C8): it builds the event tree
// once per run, then for each stand wraps it in a fresh payload,
// evaluates the tree, and collects the resulting alternative schedules
// under the stand's identifier. Stands are independent (§5), so the
// driver optionally parallelizes across them at the caller's discretion.
package simulator
