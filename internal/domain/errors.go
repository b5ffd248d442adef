package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the pipeline failure taxonomy. Callers classify
// failures with errors.Is/errors.As; the orchestrator decides which ones
// abort a run and which ones degrade it.
var (
	// ErrInvalidInput means the submitted video URL matched no known pattern.
	ErrInvalidInput = errors.New("invalid video URL")

	// ErrNotFound means the video index has no record for the identifier.
	ErrNotFound = errors.New("video not found")

	// ErrUpstream covers network and API failures from external services.
	ErrUpstream = errors.New("upstream request failed")

	// ErrTranscriptUnavailable means the video has no captions. The pipeline
	// degrades to a placeholder transcript instead of aborting.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrDuplicateVideo means the video identifier is already in the catalog.
	ErrDuplicateVideo = errors.New("video already ingested")

	// ErrReviewFinalized means an approve/reject/edit was attempted on a
	// review that already reached a terminal status.
	ErrReviewFinalized = errors.New("review already finalized")
)

// Extraction stage names used to attribute AI extraction failures.
const (
	StageSummary    = "summary"
	StageTimestamps = "timestamps"
	StageTools      = "tools"
)

// ExtractionError reports which of the three extraction tasks failed.
type ExtractionError struct {
	Stage string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed at %s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError wraps err with the failing stage name.
func NewExtractionError(stage string, err error) *ExtractionError {
	return &ExtractionError{Stage: stage, Err: err}
}

// PersistenceError reports a catalog write failure, tagged with the
// operation that failed so partially-written runs are inspectable.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed at %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
