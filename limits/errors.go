package limits

import "errors"

// ErrNoTables is returned by LoadBasalAreaTables when the directory holds
// no before-thinning file or no after-thinning file.
var ErrNoTables = errors.New("limits: no lookup tables found")

// ErrUnknownSection is returned when a section header tag does not match
// any of the recognized mineral or peat site keys.
var ErrUnknownSection = errors.New("limits: unrecognized section header")
