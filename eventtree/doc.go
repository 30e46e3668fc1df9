// Package eventtree implements §4.5's builder (C5) and §4.6's evaluator
// (C6): compiling a declarative, time-indexed, nestable generator graph
// (Sequence/Alternatives of Event/sub-generators) into an explicit
// branching tree, then walking it pre-order with guarded treatment
// application, finalize-then-clone branch copying, history tracking,
// persistence callbacks, and branch-local failure absorption.
package eventtree
