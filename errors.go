package yahoohdd

import (
	"fmt"
	"strings"
)

// AuthError reports a failed session or crumb negotiation with the quote
// page. It is surfaced from the Connection collaborator and not retried by
// the fetch pipeline.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("yahoo session auth: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError reports a failed download or parse for a single ticker.
// Failures are collected per ticker and never abort the batch.
type FetchError struct {
	Ticker string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Ticker, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FetchErrors aggregates the per-ticker failures of one batch. It is
// returned alongside the merged table built from the succeeding tickers.
type FetchErrors []*FetchError

func (e FetchErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("%d ticker(s) failed: %s", len(e), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e FetchErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, fe := range e {
		errs[i] = fe
	}
	return errs
}

// MergeError reports an alignment failure while folding a ticker series onto
// the date axis. It indicates an internal invariant violation: validated
// requests and well-formed series never produce one.
type MergeError struct {
	Ticker string
	Err    error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge %s: %v", e.Ticker, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }
