package entity

import "fmt"

type FetchErrorKind string

const (
	FetchErrNetwork    FetchErrorKind = "network"
	FetchErrHTTPStatus FetchErrorKind = "http-status"
	FetchErrTimeout    FetchErrorKind = "timeout"
)

// FetchError describes why a fetch failed, after however many attempts
// were made.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Kind == FetchErrHTTPStatus:
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	default:
		return string(e.Kind) + " error"
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Transient reports whether the failure is expected to resolve on retry:
// network errors, timeouts, 5xx and 429. Other HTTP statuses are permanent.
func (e *FetchError) Transient() bool {
	if e.Kind != FetchErrHTTPStatus {
		return true
	}
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// FetchResult is either a successful page body or a failure, with the
// number of attempts that were made either way.
type FetchResult struct {
	URL      string
	Body     string
	Attempts int
	Err      *FetchError
}

func (r FetchResult) OK() bool {
	return r.Err == nil
}
