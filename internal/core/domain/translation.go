package domain

import (
	"errors"
	"time"
)

// Backend failure taxonomy. Timeout and unreachable are transient and
// eligible for a single orchestrator-level retry; a rejection means the
// request itself is wrong and a retry cannot fix it.
var (
	ErrBackendTimeout     = errors.New("backend timed out")
	ErrBackendUnreachable = errors.New("backend unreachable")
	ErrBackendRejected    = errors.New("backend rejected the request")
	ErrModelUnavailable   = errors.New("model unavailable")
)

// BackendHealth is the result of one health probe. It is recomputed on every
// probe and never persisted.
type BackendHealth struct {
	Reachable bool
	CheckedAt time.Time
}

// TranslationRecord is the audit-trail entry written after a translation
// attempt when history is enabled.
type TranslationRecord struct {
	ID             string
	Subject        string
	Email          string
	Section        string
	TargetLanguage string
	Model          string
	Success        bool
	DurationMs     int64
	CreatedAt      time.Time
}
