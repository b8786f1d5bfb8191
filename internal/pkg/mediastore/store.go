// Package mediastore resolves lecture media references. References may be
// plain URLs (passed through untouched) or inline "data:" payloads that must
// be persisted and replaced with a durable URL before they are stored on a
// lecture.
package mediastore

import (
	"context"
	"errors"
	"strings"
)

// Store errors
var (
	ErrNotConfigured  = errors.New("media store not configured")
	ErrInvalidPayload = errors.New("invalid inline media payload")
)

// Kind distinguishes media types for storage layout and extension mapping
type Kind string

const (
	KindVideo Kind = "video"
	KindPDF   Kind = "pdf"
)

// Store is the media port consumed by the course service
type Store interface {
	// Resolve returns a durable URL for the given media reference. Inline
	// "data:" payloads are uploaded; anything else passes through unchanged.
	Resolve(ctx context.Context, ref string, kind Kind) (string, error)
}

// IsInline reports whether ref is an inline payload rather than a URL
func IsInline(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// Disabled is a Store whose every upload reports the unconfigured state.
// Plain URLs still pass through, so courses with externally hosted media
// keep working when no store is wired.
type Disabled struct{}

// Resolve implements Store
func (Disabled) Resolve(ctx context.Context, ref string, kind Kind) (string, error) {
	if ref == "" || !IsInline(ref) {
		return ref, nil
	}
	return "", ErrNotConfigured
}
