package domain

import "errors"

// Sentinel errors for the flow layer.
var (
	// ErrSubmissionInProgress is returned when a flow is asked to submit while
	// its previous request is still pending.
	ErrSubmissionInProgress = errors.New("submission already in progress")
)
