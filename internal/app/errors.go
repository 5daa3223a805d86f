package app

import "errors"

// ErrMissingDependencies marks a service used before all of its
// collaborators were injected.
var ErrMissingDependencies = errors.New("missing dependencies")

// errTransient classifies a query attempt that failed for network reasons
// and may be retried. It never escapes the retry wrapper.
var errTransient = errors.New("transient transport fault")
