// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ErrUnavailable indicates that the storage transaction could not complete
// within the bounded retry budget.
var ErrUnavailable = errors.New("service unavailable, please retry")
