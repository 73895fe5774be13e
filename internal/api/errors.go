package api

import (
	"encoding/json"
	"fmt"
)

// ErrorBody is the decoded JSON error payload returned by the API. Fields
// are either plain strings ("message", "error") or arrays of strings
// (field-scoped validation errors like "new_password"). Both shapes are
// decoded lazily so unknown fields survive the round trip.
type ErrorBody map[string]json.RawMessage

// ParseErrorBody decodes an error response body. A body that is not a JSON
// object yields an empty ErrorBody rather than an error: extraction then
// falls through to the caller's fallback message.
func ParseErrorBody(data []byte) ErrorBody {
	var body ErrorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ErrorBody{}
	}
	return body
}

// Field returns the message for a named field. Array-valued fields yield
// their first element, string-valued fields yield the string itself.
func (b ErrorBody) Field(name string) (string, bool) {
	raw, ok := b[name]
	if !ok {
		return "", false
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 || list[0] == "" {
			return "", false
		}
		return list[0], true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, true
	}

	return "", false
}

// Extract applies the ordered field list and returns the first message
// found, or fallback when none of the fields is present. The order is the
// precedence contract: callers pass the exact sequence their flow documents.
func (b ErrorBody) Extract(order []string, fallback string) string {
	for _, name := range order {
		if msg, ok := b.Field(name); ok {
			return msg
		}
	}
	return fallback
}

// Error is a non-2xx response from the API with its decoded body.
type Error struct {
	StatusCode int
	Body       ErrorBody
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
}

// Message extracts a user-facing message using the given precedence order.
func (e *Error) Message(order []string, fallback string) string {
	return e.Body.Extract(order, fallback)
}
