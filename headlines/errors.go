package headlines

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed fetch.
type ErrorKind string

const (
	// KindNetworkUnavailable means the request never completed.
	KindNetworkUnavailable ErrorKind = "network_unavailable"
	// KindProviderError means the provider answered with a non-2xx status.
	KindProviderError ErrorKind = "provider_error"
	// KindMalformedResponse means a 2xx body had an unexpected shape.
	KindMalformedResponse ErrorKind = "malformed_response"
)

// FetchError describes why a fetch produced no articles. Status and Message
// are only set for KindProviderError.
type FetchError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindProviderError:
		if e.Message != "" {
			return fmt.Sprintf("provider error: status %d: %s", e.Status, e.Message)
		}
		return fmt.Sprintf("provider error: status %d", e.Status)
	case KindMalformedResponse:
		if e.Err != nil {
			return fmt.Sprintf("malformed response: %v", e.Err)
		}
		return "malformed response"
	default:
		if e.Err != nil {
			return fmt.Sprintf("network unavailable: %v", e.Err)
		}
		return "network unavailable"
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Display returns the banner text shown to readers.
func (e *FetchError) Display() string {
	switch e.Kind {
	case KindProviderError:
		if e.Message != "" {
			return fmt.Sprintf("Error: %d - %s", e.Status, e.Message)
		}
		return fmt.Sprintf("Error: %d", e.Status)
	case KindMalformedResponse:
		return "Malformed response from NewsAPI."
	default:
		return "Unable to fetch news. Please check your network connection."
	}
}

// AsFetchError returns the *FetchError in err's chain, if any.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsKind reports whether err is a *FetchError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	fe, ok := AsFetchError(err)
	return ok && fe.Kind == kind
}
