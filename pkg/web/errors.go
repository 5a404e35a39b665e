package web

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps input field names to validation messages. It is returned
// by the per-request validation functions and rendered as a 400 body.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// BusinessError is a domain rule violation surfaced to clients as a 400 with
// a plain message.
type BusinessError struct {
	Msg string
}

func (e *BusinessError) Error() string { return e.Msg }

// NotFoundError marks a missing order, product or customer resource.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// TransportError wraps a failure to reach a downstream collaborator. The
// orchestrator does not retry or classify these; they bubble to the client.
type TransportError struct {
	Target string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s unreachable: %v", e.Target, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
