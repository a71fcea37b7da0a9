package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/profilehub/backend/internal/api/middleware"
	"github.com/profilehub/backend/internal/api/types"
	"github.com/profilehub/backend/internal/api/validators"
	appErr "github.com/profilehub/backend/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorStr(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, types.APIResponse{
		Success: false,
		Error:   &types.APIError{Code: string(appErr.CodeInvalid), Message: msg},
		Meta:    &types.Meta{RequestID: middleware.GetRequestID(r.Context())},
	})
}

// respondErr writes client-actionable errors as a JSON envelope and returns
// everything else for the terminal error stage.
func respondErr(w http.ResponseWriter, r *http.Request, err error) error {
	status, ok := appErr.ClientStatus(err)
	if !ok {
		return err
	}
	writeJSON(w, status, types.APIResponse{
		Success: false,
		Error:   types.FromAppError(err),
		Meta:    &types.Meta{RequestID: middleware.GetRequestID(r.Context())},
	})
	return nil
}

// bind decodes and validates the parsed JSON body into dst.
func bind(r *http.Request, dst any) error {
	if err := middleware.BindJSON(r, dst); err != nil {
		if appErr.IsCode(err, appErr.CodeInvalid) {
			return err
		}
		return appErr.Wrap(err, appErr.CodeInvalid, "a JSON body is required")
	}
	if err := validators.New().Struct(dst); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, err.Error())
	}
	return nil
}
