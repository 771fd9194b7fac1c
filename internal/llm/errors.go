// Package llm - errors.go classifies generative/embedding backend
// failures so component boundaries can decide which fallback to take.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ParseError indicates the backend response contained no parseable JSON.
// Snippet carries a truncated copy of the raw response for diagnostics.
type ParseError struct {
	Message string
	Snippet string
}

// snippetLimit bounds how much of a raw response a ParseError retains
const snippetLimit = 500

func (e *ParseError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("parse error: %s (response: %s)", e.Message, e.Snippet)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError builds a ParseError carrying at most 500 characters of
// the raw response.
func NewParseError(message, raw string) *ParseError {
	snippet := strings.TrimSpace(raw)
	if len(snippet) > snippetLimit {
		snippet = snippet[:snippetLimit]
	}
	return &ParseError{Message: message, Snippet: snippet}
}

// DimensionError indicates two vectors of different lengths were handed
// to a similarity computation. It is an input validation failure, not a
// backend failure.
type DimensionError struct {
	LenA, LenB int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: %d vs %d", e.LenA, e.LenB)
}

// IsQuotaExceeded reports whether err looks like a quota or rate-limit
// rejection from the backend.
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "resource exhausted")
}

// IsTimeout reports whether err is a deadline expiry on an outbound call
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsMalformedResponse reports whether err came from the response sanitizer
func IsMalformedResponse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
