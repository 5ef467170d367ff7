package appwrite

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error kinds the rest of the application distinguishes for messaging.
// Compare with errors.Is against an *APIError returned by any client call.
var (
	ErrUnauthorized = errors.New("appwrite: unauthorized")
	ErrBadRequest   = errors.New("appwrite: bad request")
	ErrNotFound     = errors.New("appwrite: not found")
	ErrConflict     = errors.New("appwrite: conflict")
)

// APIError is the error payload Appwrite returns on non-2xx responses.
type APIError struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("appwrite: %s (code %d)", e.Message, e.Code)
	}
	return fmt.Sprintf("appwrite: request failed with code %d", e.Code)
}

// Is maps HTTP status codes onto the package error kinds.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
	case ErrBadRequest:
		return e.Code == http.StatusBadRequest
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrConflict:
		return e.Code == http.StatusConflict
	}
	return false
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Code: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		// Keep the transport status when the body does not parse.
		var parsed APIError
		if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
			apiErr.Type = parsed.Type
			apiErr.Message = parsed.Message
			if parsed.Code != 0 {
				apiErr.Code = parsed.Code
			}
		}
	}
	return apiErr
}
