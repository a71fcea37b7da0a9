package types

import (
	"errors"

	appErr "github.com/profilehub/backend/pkg/errors"
)

// FromAppError renders err for a client. Only the AppError message is
// exposed; wrapped causes stay server side.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var e *appErr.AppError
	if errors.As(err, &e) {
		return &APIError{Code: string(e.Code), Message: e.Message}
	}
	return &APIError{Code: string(appErr.CodeUnknown), Message: "unexpected error"}
}
