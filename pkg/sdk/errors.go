package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sentinel errors mirroring the server's error codes.
// Use errors.Is() to check.
var (
	ErrEmptyQuery          = errors.New("empty query")
	ErrInvalidQuery        = errors.New("invalid query")
	ErrEngineUnavailable   = errors.New("search engine unavailable")
	ErrEngineError         = errors.New("search engine error")
	ErrMetadataUnavailable = errors.New("metadata unavailable")
	ErrUnauthorized        = errors.New("unauthorized")
)

// APIError carries the raw server error alongside the mapped sentinel.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Unwrap maps the server error code to a sentinel.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "empty_query":
		return ErrEmptyQuery
	case "invalid_query":
		return ErrInvalidQuery
	case "engine_unavailable":
		return ErrEngineUnavailable
	case "engine_error":
		return ErrEngineError
	case "metadata_unavailable":
		return ErrMetadataUnavailable
	}
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return &APIError{Status: resp.StatusCode, Code: "unknown", Message: string(raw)}
	}
	return &APIError{Status: resp.StatusCode, Code: body.Code, Message: body.Message}
}
