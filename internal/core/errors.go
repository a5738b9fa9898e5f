package core

import (
	"errors"

	"github.com/IvanShishkin/filehound/pkg/models"
)

var (
	// ErrInvalidRequest is returned when a scan cannot start: no roots, a
	// malformed root or an unknown filter.
	ErrInvalidRequest = errors.New("invalid scan request")

	// ErrScanCancelled is returned when the caller's context ends before the
	// scan finishes. The context error is wrapped alongside it.
	ErrScanCancelled = errors.New("scan cancelled")
)

// Outcome maps the error returned by a scan operation to its final state
func Outcome(err error) models.ScanState {
	switch {
	case err == nil:
		return models.StateCompleted
	case errors.Is(err, ErrScanCancelled):
		return models.StateCancelled
	default:
		return models.StateFailed
	}
}
