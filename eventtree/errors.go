package eventtree

import "errors"

// Declaration errors: fatal at tree build time, abort the whole run.
var (
	ErrFileNotFound      = errors.New("eventtree: declared file parameter does not exist")
	ErrParameterConflict = errors.New("eventtree: parameters and file-parameters share a key")
)

// ErrAllBranchesAborted signals that every child of an Alternatives node
// was pruned (via ConditionFailed or a numerical failure); the parent
// itself aborts, propagating to its own enclosing branch point.
var ErrAllBranchesAborted = errors.New("eventtree: all branches aborted")
