package health

import "errors"

// ErrCheckFailed is returned by Run when at least one check fails.
var ErrCheckFailed = errors.New("health: check failed")
