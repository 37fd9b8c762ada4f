package httpclient

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the client can report.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetworkUnavailable
	KindTimeout
	KindUnauthenticated
	KindInvalidRequest
	KindNotFound
	KindServerError
)

var kindNames = map[Kind]string{
	KindUnknown:            "Unknown",
	KindNetworkUnavailable: "NetworkUnavailable",
	KindTimeout:            "Timeout",
	KindUnauthenticated:    "Unauthenticated",
	KindInvalidRequest:     "InvalidRequest",
	KindNotFound:           "NotFound",
	KindServerError:        "ServerError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// APIError is the single error type returned by Client.
type APIError struct {
	Kind      Kind
	Status    int    // HTTP status, 0 when no response arrived
	Detail    string // server-supplied or transport detail, may be empty
	RequestID string
}

// Sentinels for errors.Is. Matching compares Kind only.
var (
	ErrUnknown            = &APIError{Kind: KindUnknown}
	ErrNetworkUnavailable = &APIError{Kind: KindNetworkUnavailable}
	ErrTimeout            = &APIError{Kind: KindTimeout}
	ErrUnauthenticated    = &APIError{Kind: KindUnauthenticated}
	ErrInvalidRequest     = &APIError{Kind: KindInvalidRequest}
	ErrNotFound           = &APIError{Kind: KindNotFound}
	ErrServerError        = &APIError{Kind: KindServerError}
)

func (e *APIError) Error() string {
	msg := "httpclient: " + e.Kind.String()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is matches any *APIError of the same Kind.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Message is the text shown to a person. Each kind reads differently.
func (e *APIError) Message() string {
	switch e.Kind {
	case KindNetworkUnavailable:
		return "Could not connect to the server. Please check your connection and make sure the backend is running."
	case KindTimeout:
		return "The server took too long to respond. Please try again."
	case KindUnauthenticated:
		return "Session expired. Please login again."
	case KindInvalidRequest:
		if e.Detail != "" {
			return e.Detail
		}
		return DefaultInvalidRequestMessage
	case KindNotFound:
		return "The requested item was not found. It may have been deleted."
	case KindServerError:
		return "The server ran into a problem. Please try again later."
	default:
		if e.Detail != "" {
			return "Unexpected error: " + e.Detail
		}
		return "An unexpected error occurred."
	}
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the Kind carried by err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Kind
	}
	return KindUnknown
}
