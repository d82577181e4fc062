package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ProviderError reports a failed model invocation: a transport failure, a
// non-success HTTP status, or an envelope the dialect could not parse. It
// unwraps to the underlying cause so context cancellation stays visible to
// errors.Is.
type ProviderError struct {
	Provider   string
	StatusCode int // 0 for transport-level failures
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s: unexpected status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// UnsupportedProviderError reports a provider identifier with no registered
// dialect.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("provider %q is not supported", e.Provider)
}

// errTruncatedBody keeps a short excerpt of an error response body for
// diagnostics without logging whole payloads.
func errTruncatedBody(body []byte) error {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		s = s[:max] + "..."
	}
	return errors.New(s)
}
