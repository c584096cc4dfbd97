package playability

import (
	"fmt"
	"net/http"
)

// MsgIncompleteSelection is shown when a submit happens before every field is set.
const MsgIncompleteSelection = "All weather conditions should be selected a value"

// ValidationError reports fields left unset at submit time.
type ValidationError struct {
	Missing []FieldName
}

func (e *ValidationError) Error() string {
	return MsgIncompleteSelection
}

// RequestError reports a failed call to the inference endpoint. Status is zero when the
// request never produced an HTTP response.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Message
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("Returned with %d error: %s", e.Status, msg)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Transport reports whether the failure happened below HTTP.
func (e *RequestError) Transport() bool {
	return e.Status == 0
}
