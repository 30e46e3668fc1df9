package persistence

import "errors"

// ErrSinkClosed is returned by any write attempted after Close.
var ErrSinkClosed = errors.New("persistence: sink is closed")
