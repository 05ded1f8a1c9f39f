package core

import "errors"

// ErrConfiguration marks programming or content-authoring mistakes:
// unknown or duplicate state names, pausing without a "paused" state,
// malformed map rows. They are never retried.
var ErrConfiguration = errors.New("configuration error")
