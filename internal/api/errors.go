package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GenericFailure is shown whenever the backend gives no usable detail.
const GenericFailure = "Something went wrong. Please try again."

// Error is a non-2xx answer from the backend. Detail holds the server's
// own message when the body carried one.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// Message is the user-facing text: the server detail verbatim when present,
// otherwise the generic fallback.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return GenericFailure
}

// UserMessage extracts display text from any error of a failed request.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return GenericFailure
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// newError parses the FastAPI-style {"detail": ...} body. Detail is usually
// a string but validation failures ship an array; those fall back to the
// generic message rather than leaking the raw structure.
func newError(status int, body []byte) *Error {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(parsed.Detail, &detail); err == nil {
			return &Error{Status: status, Detail: detail}
		}
	}
	return &Error{Status: status}
}
