package gate

import "errors"

// Sentinel errors returned by Gate.Authorize.
var (
	ErrDenied    = errors.New("gate: permission denied")
	ErrNoProfile = errors.New("gate: no profile for subject")
)
