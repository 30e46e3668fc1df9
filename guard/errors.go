package guard

import "errors"

// ErrConditionFailed is raised by a guard that does not clear. The
// eventtree evaluator treats it as a branch-local failure: the branch is
// pruned, not the whole run.
var ErrConditionFailed = errors.New("guard: condition failed")
