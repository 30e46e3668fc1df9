package treatment

import "errors"

// ErrEmptyDeclaration is returned when a thinning-family treatment is
// invoked with a Declaration carrying no selection sets.
var ErrEmptyDeclaration = errors.New("treatment: selection declaration has no sets")
