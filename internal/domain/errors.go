package domain

import "errors"

// Validation and coordination errors. These are surfaced to the user
// synchronously and never recorded in the conversation log.
var (
	// ErrEmptyUpload indicates an upload was requested with no files selected.
	ErrEmptyUpload = errors.New("no files selected")

	// ErrBlankQuestion indicates an ask was requested with a blank question.
	ErrBlankQuestion = errors.New("question is blank")

	// ErrBusy indicates an operation was rejected by the single-flight policy.
	ErrBusy = errors.New("an operation is already in flight")

	// ErrTurnNotFound indicates a replacement targeted a turn that no longer exists.
	ErrTurnNotFound = errors.New("turn not found")
)

// IsValidation checks if an error is a local validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyUpload) || errors.Is(err, ErrBlankQuestion)
}

// IsBusy checks if an error came from the single-flight policy.
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}
