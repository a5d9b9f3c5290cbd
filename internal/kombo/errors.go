package kombo

import "fmt"

// ErrorKind classifies feed failures. These are returned as values, never
// panicked, and a failed fetch is never retried automatically.
type ErrorKind string

const (
	ErrInvalidInput  ErrorKind = "invalid_input"  // missing/empty account id
	ErrNetwork       ErrorKind = "network_error"  // transport-level failure
	ErrHTTP          ErrorKind = "http_error"     // non-200 status
	ErrEmptyResponse ErrorKind = "empty_response" // 200 with empty body
	ErrXMLMalformed  ErrorKind = "xml_malformed"  // unparseable feed document
)

// FeedError is a typed failure from the feed client or parser.
type FeedError struct {
	Kind   ErrorKind
	Detail string
	Status int   // set for ErrHTTP
	Err    error // underlying cause, if any
}

func (e *FeedError) Error() string {
	switch e.Kind {
	case ErrHTTP:
		return fmt.Sprintf("kombo: feed returned HTTP %d", e.Status)
	default:
		if e.Detail != "" {
			return fmt.Sprintf("kombo: %s: %s", e.Kind, e.Detail)
		}
		return fmt.Sprintf("kombo: %s", e.Kind)
	}
}

func (e *FeedError) Unwrap() error { return e.Err }

// KindOf returns the error's kind, or "" for nil / non-feed errors.
func KindOf(err error) ErrorKind {
	if fe, ok := err.(*FeedError); ok {
		return fe.Kind
	}
	return ""
}
