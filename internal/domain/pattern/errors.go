package pattern

import "errors"

var (
	ErrPatternNotFound       = errors.New("pattern not found")
	ErrPatternNameExists     = errors.New("pattern with this name already exists")
	ErrPatternAlreadyDeleted = errors.New("pattern not found or already deleted")

	// Request Data Errors
	ErrInvalidRequestData = errors.New("invalid request data")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
)
