package shift

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrInvalidTransition  = errors.New("invalid shift status transition")
	ErrShiftSpanInverted  = errors.New("shift end must be after its start")
	ErrPatternNotFound    = errors.New("pattern for generation not found")
	ErrInvalidRequestData = errors.New("invalid request data")
)
