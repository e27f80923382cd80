package evaluate

import (
	"errors"
	"fmt"
)

// Kinds of remote evaluation failure. Match with errors.Is.
var (
	ErrRemoteUnavailable    = errors.New("remote judge unavailable")
	ErrMalformedResponse    = errors.New("malformed judge response")
	ErrConfigurationMissing = errors.New("remote judge not configured")
)

// RemoteError is returned by RemoteEvaluator. Kind is one of the
// sentinel errors above; Err is the underlying cause.
type RemoteError struct {
	Kind error
	Err  error
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// kindName names the failure kind of err for logs and spans.
func kindName(err error) string {
	switch {
	case errors.Is(err, ErrConfigurationMissing):
		return "configuration_missing"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrRemoteUnavailable):
		return "remote_unavailable"
	default:
		return "other"
	}
}
