package response

import (
	"errors"
	"net/http"

	"github.com/shiftclock/shiftclock-backend-go/internal/domain/auth"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pattern"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pay"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/shift"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/user"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Pattern domain errors
	case errors.Is(err, pattern.ErrPatternNotFound):
		NotFound(w, "Pattern not found")
	case errors.Is(err, pattern.ErrPatternAlreadyDeleted):
		NotFound(w, "Pattern not found")
	case errors.Is(err, pattern.ErrPatternNameExists):
		Conflict(w, "Pattern with this name already exists")
	case errors.Is(err, pattern.ErrInvalidDateFormat):
		BadRequest(w, "Invalid date format, use YYYY-MM-DD", nil)

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrPatternNotFound):
		NotFound(w, "Pattern for generation not found")
	case errors.Is(err, shift.ErrInvalidTransition):
		Conflict(w, "Invalid shift status transition")
	case errors.Is(err, shift.ErrShiftSpanInverted):
		BadRequest(w, "Shift end must be after its start", nil)

	// Pay domain errors
	case errors.Is(err, pay.ErrRulesetNotFound):
		NotFound(w, "Pay ruleset not found")
	case errors.Is(err, pay.ErrRulesetNameExists):
		Conflict(w, "Pay ruleset with this name already exists")
	case errors.Is(err, pay.ErrMissingAnchorDate):
		BadRequest(w, "Biweekly periods require an anchor date", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
