package model

import "errors"

// Failure taxonomy for the pipeline. Item-level errors (extraction,
// translation, synthesis, state write) are recovered at the item boundary:
// logged, the item is skipped for the run and retried on the next one.
// Only ErrConfigInvalid is fatal to the process.
var (
	// ErrSourceUnavailable marks a failed list or fetch against the bookmark
	// provider. A failed list aborts discovery for the run attempt.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrExtractionFailed marks malformed or empty content.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrTranslationFailed marks exhausted translation retries.
	ErrTranslationFailed = errors.New("translation failed")

	// ErrSynthesisFailed marks a speech engine error or a non-zero exit of
	// the isolated synthesis process.
	ErrSynthesisFailed = errors.New("synthesis failed")

	// ErrStateWrite marks a failed state commit (disk full, permissions).
	// The item stays absent from the episode map and is retried next run.
	ErrStateWrite = errors.New("state write failed")

	// ErrConfigInvalid marks missing or inconsistent required settings.
	ErrConfigInvalid = errors.New("invalid configuration")
)
