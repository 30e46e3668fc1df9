// Package stand implements the simulation core's data model: the
// management unit (ComputationalUnit), its two structure-of-arrays
// collections (ReferenceTrees, TreeStrata, both built on vector.Store),
// and the per-evaluation Payload (stand + collected data + operation
// history) that the event tree pushes through treatments.
//
// A Payload's ComputationalUnit is exclusively owned by that Payload; a
// branch fork calls Payload.Fork, which finalizes and copy-on-write clones
// the stand's vector stores and deep-copies history and collected data, so
// siblings never alias mutable state.
package stand
