package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound          = errors.New("shift not found")
	ErrInvalidStateTransition = errors.New("shift is not in a valid state for this operation")
	ErrShiftOverlaps          = errors.New("employee already has a shift overlapping this period")
	ErrNotAuthorized          = errors.New("not authorized to manage this shift")
)
