package flashblade

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Response is any reply from the array management endpoint. It is either a
// *ValidResponse[T] or an *ErrorResponse.
type Response interface {
	HTTPStatus() int
}

// Itemized is implemented by responses that carry a collection of records.
// Only successful responses are itemized.
type Itemized interface {
	Response
	Records() []any
}

// ValidResponse is a successful (2xx) reply carrying items of type T.
type ValidResponse[T any] struct {
	StatusCode        int
	ContinuationToken string
	TotalItemCount    *int
	Items             []T

	// raw holds each item exactly as the array sent it, including fields
	// T does not declare.
	raw []json.RawMessage
}

// HTTPStatus returns the status code the array answered with.
func (r *ValidResponse[T]) HTTPStatus() int { return r.StatusCode }

// Records returns the items in array order. Items decoded from the wire
// are returned as their raw JSON objects so no field is lost.
func (r *ValidResponse[T]) Records() []any {
	if r.raw != nil {
		out := make([]any, len(r.raw))
		for i := range r.raw {
			out[i] = r.raw[i]
		}
		return out
	}
	out := make([]any, len(r.Items))
	for i := range r.Items {
		out[i] = r.Items[i]
	}
	return out
}

// APIError is one entry of the errors list in a failed reply.
type APIError struct {
	Message         string `json:"message"`
	Context         string `json:"context,omitempty"`
	LocationContext string `json:"location_context,omitempty"`
}

// ErrorResponse is a non-2xx reply. It is a response, not a Go error: the
// array answered, it just refused.
type ErrorResponse struct {
	StatusCode int
	Errors     []APIError
}

// HTTPStatus returns the status code the array answered with.
func (r *ErrorResponse) HTTPStatus() int { return r.StatusCode }

// Error summarizes the error messages so the response can be logged.
func (r *ErrorResponse) Error() string {
	if len(r.Errors) == 0 {
		return fmt.Sprintf("flashblade: status %d", r.StatusCode)
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.Context != "" {
			msgs = append(msgs, e.Context+": "+e.Message)
			continue
		}
		msgs = append(msgs, e.Message)
	}
	return fmt.Sprintf("flashblade: status %d: %s", r.StatusCode, strings.Join(msgs, "; "))
}

type page struct {
	ContinuationToken *string           `json:"continuation_token"`
	TotalItemCount    *int              `json:"total_item_count"`
	Items             []json.RawMessage `json:"items"`
}

func decodeValid[T any](status int, body []byte) (*ValidResponse[T], error) {
	var p page
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	items := make([]T, len(p.Items))
	for i, raw := range p.Items {
		if err := json.Unmarshal(raw, &items[i]); err != nil {
			return nil, fmt.Errorf("decode item %d: %w", i, err)
		}
	}
	if p.Items == nil {
		p.Items = []json.RawMessage{}
	}
	resp := &ValidResponse[T]{
		StatusCode:     status,
		TotalItemCount: p.TotalItemCount,
		Items:          items,
		raw:            p.Items,
	}
	if p.ContinuationToken != nil {
		resp.ContinuationToken = *p.ContinuationToken
	}
	return resp, nil
}

// decodeError is tolerant: a body that is not the documented errors shape
// still yields an ErrorResponse with the raw text as message.
func decodeError(status int, body []byte) *ErrorResponse {
	var payload struct {
		Errors []APIError `json:"errors"`
	}
	resp := &ErrorResponse{StatusCode: status}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
		resp.Errors = payload.Errors
		return resp
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		resp.Errors = []APIError{{Message: msg}}
	}
	return resp
}
