package common

import "errors"

// Status is the discriminant of an Outcome.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
)

func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "failure"
}

// Outcome is the typed result presented to the user after an operation.
// Kind is the taxonomy sentinel for failures and nil on success.
type Outcome struct {
	Status  Status
	Kind    error
	Message string
}

var kinds = []error{
	ErrAuth,
	ErrInventoryUnavailable,
	ErrTooManyFiles,
	ErrUploadFailed,
	ErrDeleteFailed,
	ErrLinkGenerationFailed,
	ErrNotificationFailed,
	ErrClipboardUnavailable,
	ErrNoSession,
	ErrEmptyBatch,
	ErrUploadInProgress,
}

// Succeeded builds a success outcome.
func Succeeded(msg string) Outcome {
	return Outcome{Status: StatusSuccess, Message: msg}
}

// Failed classifies err into its taxonomy kind. Errors outside the
// taxonomy keep a nil Kind but are still failures.
func Failed(err error) Outcome {
	o := Outcome{Status: StatusFailure, Message: err.Error()}
	for _, k := range kinds {
		if errors.Is(err, k) {
			o.Kind = k
			break
		}
	}
	return o
}

// OutcomeOf returns Succeeded(okMsg) for a nil error and Failed(err) otherwise.
func OutcomeOf(err error, okMsg string) Outcome {
	if err == nil {
		return Succeeded(okMsg)
	}
	return Failed(err)
}
