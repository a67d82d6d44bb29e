package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error represents a universal error type between the handlers.
type Error struct {
	Status  int
	Err     error // The error this wraps
	Details []Detail
}

// Detail is a message scoped to a single request field.
//
// A detail with an empty Field applies to the request as a whole and
// is reported under "non_field_errors".
type Detail struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s, details: %v", e.Status, e.Err, e.Details)
}

const nonFieldKey = "non_field_errors"

// MarshalJSON renders the error in the wire shape clients expect:
// field-scoped details become {"field": ["msg", ...]}, detail-less
// errors become {"detail": "msg"}.
func (e *Error) MarshalJSON() ([]byte, error) {
	if len(e.Details) == 0 {
		msg := http.StatusText(e.Status)
		if e.Err != nil {
			msg = e.Err.Error()
		}
		return json.Marshal(struct {
			Detail string `json:"detail"`
		}{Detail: msg})
	}

	byField := make(map[string][]string, len(e.Details))
	for _, d := range e.Details {
		key := d.Field
		if key == "" {
			key = nonFieldKey
		}
		byField[key] = append(byField[key], d.Error)
	}

	return json.Marshal(byField)
}

// E builds an [Error] out of whatever it's given: a string or error
// becomes the wrapped error, an int the status, and any details are
// appended in order.
func E(args ...any) *Error {
	ret := &Error{
		Status:  http.StatusInternalServerError,
		Err:     nil,
		Details: nil,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			ret.Err = errors.New(arg)
		case error:
			ret.Err = arg
		case int:
			ret.Status = arg
		case Detail:
			ret.Details = append(ret.Details, arg)
		case []Detail:
			ret.Details = append(ret.Details, arg...)
		}
	}

	return ret
}
