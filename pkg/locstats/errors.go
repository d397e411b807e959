package locstats

import "errors"

// ErrUnknownUnit is returned by ParseUnit for an unsupported counting unit.
var ErrUnknownUnit = errors.New("unknown counting unit")
