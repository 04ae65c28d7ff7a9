package httperr

import "errors"

// Canonical business codes surfaced by usecases.
const (
	CodeValidation        = "validation_failed"
	CodeDuplicateEmail    = "duplicate_email"
	CodeDuplicateUsername = "duplicate_username"
	CodeNotFound          = "not_found"
	CodeInvalidState      = "invalid_state"
	CodeDeliveryFailed    = "delivery_failed"
	CodeEmailNotVerified  = "email_not_verified"
	CodeTimeConflict      = "time_conflict"
	CodeUpdateInProgress  = "update_in_progress"
	CodeBlocked           = "account_blocked"
	CodeNoData            = "no_data"
	CodeNoProducts        = "no_products_assigned"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code, or "" for non-business errors.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
