package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTransient marks network-level failures (timeout, refused connection).
// The user decides whether to resubmit; nothing retries automatically.
var ErrTransient = errors.New("vendora: transient request failure")

// APIError is a structured rejection from the Vendora service. The service's
// verdict is final: on a conflict the caller must re-fetch the record rather
// than trusting its local optimistic state.
type APIError struct {
	StatusCode int
	Code       string
	Message    string

	// Populated on invalid_transition rejections.
	CurrentStatus      string
	AllowedTransitions []string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("vendora: %s (%s, HTTP %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("vendora: %s (HTTP %d)", e.Message, e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsConflict reports whether the service refused a client-approved action:
// a rejected transition, a stale record, or a tier limit.
func IsConflict(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.StatusCode {
	case http.StatusConflict:
		return true
	case http.StatusBadRequest:
		return apiErr.Code == "invalid_transition" || apiErr.Code == "invalid_status"
	}
	return false
}

// IsValidation reports whether the service rejected the payload itself.
func IsValidation(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusBadRequest ||
		apiErr.StatusCode == http.StatusUnprocessableEntity
}

// errorEnvelope matches the service's error shape: detail is either a bare
// string or a structured object.
type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

type errorDetail struct {
	Error              string   `json:"error"`
	Message            string   `json:"message"`
	CurrentStatus      string   `json:"current_status"`
	AllowedTransitions []string `json:"allowed_transitions"`
}

// parseAPIError turns a non-2xx response into an *APIError. Bodies that are
// not the expected envelope still produce a usable error.
func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("request failed (%s)", resp.Status),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Detail == nil {
		return apiErr
	}

	var plain string
	if err := json.Unmarshal(envelope.Detail, &plain); err == nil {
		if plain != "" {
			apiErr.Message = plain
		}
		return apiErr
	}

	var detail errorDetail
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		if detail.Message != "" {
			apiErr.Message = detail.Message
		}
		apiErr.Code = detail.Error
		apiErr.CurrentStatus = detail.CurrentStatus
		apiErr.AllowedTransitions = detail.AllowedTransitions
	}
	return apiErr
}
