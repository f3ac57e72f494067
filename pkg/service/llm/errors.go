package llm

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNotConfigured is returned when no LLM client has been supplied.
	// Callers decide per feature whether to degrade or surface the error.
	ErrNotConfigured = goerr.New("LLM client is not configured")

	// ErrRequestFailed wraps transport or provider failures.
	ErrRequestFailed = goerr.New("LLM request failed")

	// ErrMalformedResponse is returned when the provider replied but the
	// content could not be used (empty or undecodable).
	ErrMalformedResponse = goerr.New("LLM response is malformed")
)
