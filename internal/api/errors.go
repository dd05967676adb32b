package api

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid client configuration, such as a bad
// credential combination. It is raised at construction time, before any
// network activity.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// APIError reports a failure from the remote service: a connection
// failure, an XML-RPC fault, a non-2xx HTTP response, or a response that
// does not match the expected shape. The wrapped cause, if any, is
// available via errors.Unwrap.
type APIError struct {
	Operation string
	Message   string
	Err       error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Operation != "" {
		return e.Operation + ": " + msg
	}
	return msg
}

func (e *APIError) Unwrap() error { return e.Err }

// IsAPIError reports whether err is a remote API error.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// NotSupportedError reports an operation the active backend cannot
// perform, such as listing states over REST. It is a distinct condition
// from "no results": the lookup was never attempted.
type NotSupportedError struct {
	Backend   string
	Operation string
	Reason    string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s: %s not supported: %s", e.Backend, e.Operation, e.Reason)
}

// IsNotSupported reports whether err signals a backend capability gap.
func IsNotSupported(err error) bool {
	var nsErr *NotSupportedError
	return errors.As(err, &nsErr)
}

// ErrNotUpdated is returned by PatchSet when the server accepted the call
// but reported that no update was applied. Callers decide whether a no-op
// update counts as failure.
var ErrNotUpdated = errors.New("patch not updated")
