package helpspot

import "fmt"

// ConfigError reports an invalid base URL or an incomplete credential pair.
// It is returned from New before any network activity.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "helpspot: " + e.Reason
}

// AuthRequiredError reports that a private API method was invoked on a
// client constructed without credentials. No network call is made.
type AuthRequiredError struct {
	Method string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("helpspot: method %q requires authentication", e.Method)
}

// HTTPError reports a transport-level failure: a connection error, a
// non-2xx status, or an undecodable response body.
type HTTPError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return "helpspot: HTTP request failed: " + e.Err.Error()
	}
	return fmt.Sprintf("helpspot: HTTP request failed: %s", e.Status)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// APIError is the server's own error envelope, carrying its numeric error
// id and description.
type APIError struct {
	ID          int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("helpspot: API error %d: %s", e.ID, e.Description)
}

// APIDisabledError reports that the public or private API surface is turned
// off on the server.
type APIDisabledError struct {
	Reply string
}

func (e *APIDisabledError) Error() string {
	return "helpspot: " + e.Reply
}

// ValidationError reports a locally detectable precondition failure, such
// as a get call with neither a request ID nor an access key. No network
// call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "helpspot: " + e.Reason
}
