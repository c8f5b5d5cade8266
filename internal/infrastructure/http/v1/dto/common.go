// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"enercore/internal/core/id"
	"enercore/internal/domain/query"
)

// --- List Response ---

// ListResponse is the standard list envelope: resources under data,
// pagination under meta.
type ListResponse struct {
	Data any            `json:"data"`
	Meta query.PageMeta `json:"meta"`
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Actions ---

// ActionRequest carries the free-form payload of a status action. Required
// fields per action are validated by the transition table, not here.
type ActionRequest map[string]any

// DuplicateRequest asks for a copy of a resource under a new unique key.
// Clients send the resource's own key field (code or number); key works as
// a resource-agnostic alias. Key presence is enforced by the service so a
// missing key reports as an invalid action payload, consistent with
// transition actions.
type DuplicateRequest struct {
	Code   string `json:"code"`
	Number string `json:"number"`
	Key    string `json:"key"`
}

// NewKey returns the requested unique key, whichever field carried it.
func (r DuplicateRequest) NewKey() string {
	switch {
	case r.Code != "":
		return r.Code
	case r.Number != "":
		return r.Number
	default:
		return r.Key
	}
}
