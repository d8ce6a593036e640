package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"wehire/internal/apperr"

	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Detail string      `json:"detail"`
	Code   apperr.Code `json:"code"`
	Field  string      `json:"field,omitempty"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func statusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeIntegrityViolation, apperr.CodeConflict:
		return http.StatusConflict
	case apperr.CodeValidation:
		return http.StatusBadRequest
	case apperr.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperr.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as a JSON error body. Internal and transaction
// failures are logged and reported with a generic message.
func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}

	status := statusFor(appErr.Code)
	body := errorResponse{Detail: appErr.Message, Code: appErr.Code, Field: appErr.Field}

	if status == http.StatusInternalServerError {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"request_id": requestIDFromContext(r.Context()),
			"path":       r.URL.Path,
		}).Error("request failed")
		body.Detail = "the operation failed, no changes were saved"
		if appErr.Code == apperr.CodeInternal {
			body.Detail = "internal server error"
		}
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	s.writeJSON(w, status, body)
}

func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is required")
		}
		return apperr.Wrap(apperr.CodeValidation, "invalid request body", err)
	}
	return nil
}
