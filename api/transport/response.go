package transport

import "encoding/json"

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// DeleteResult is the data of a successful DELETE.
type DeleteResult struct {
	Success bool `json:"success"`
}

// Typed is the client-side view of an Envelope whose data has a known shape.
type Typed[T any] struct {
	Status string          `json:"status"`
	Code   string          `json:"code,omitempty"`
	Data   T               `json:"data"`
	Error  json.RawMessage `json:"error,omitempty"`
}

// Message renders the error field, which is usually a plain string.
func (t Typed[T]) Message() string {
	if len(t.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(t.Error, &s); err == nil {
		return s
	}
	return string(t.Error)
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
