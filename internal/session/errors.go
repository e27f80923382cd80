package session

import "errors"

var (
	// ErrEmptySubmission is returned for a submission with no visible text.
	ErrEmptySubmission = errors.New("submission is empty")

	// ErrBusy is returned while another submission is being evaluated.
	ErrBusy = errors.New("an evaluation is already in progress")

	// ErrStale is returned when the active challenge changed while the
	// submission was being evaluated. The result was not applied.
	ErrStale = errors.New("challenge changed during evaluation")
)
