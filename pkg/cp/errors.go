package cp

import (
	"errors"
)

// ErrInconsistency is returned by every domain mutation that empties a
// domain and by constraints detecting infeasibility. It is a single
// pre-allocated value: compare with errors.Is, never wrap it on the hot
// path.
var ErrInconsistency = errors.New("inconsistency")

// ErrInvalidModel is wrapped by construction and posting errors such as
// empty domains or mismatched arguments. These errors are not recoverable
// by backtracking.
var ErrInvalidModel = errors.New("invalid model")

// IsInconsistency reports whether err signals a domain wipe-out.
func IsInconsistency(err error) bool {
	return errors.Is(err, ErrInconsistency)
}
