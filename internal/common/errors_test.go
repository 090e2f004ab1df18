package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadError_MatchesKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	var err error = &UploadError{FileName: "report.pdf", Err: cause}

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "report.pdf")

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "report.pdf", ue.FileName)
}

func TestWrap(t *testing.T) {
	cause := errors.New("signature mismatch")

	err := Wrap(ErrLinkGenerationFailed, cause)
	assert.ErrorIs(t, err, ErrLinkGenerationFailed)
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, ErrDeleteFailed, Wrap(ErrDeleteFailed, nil))
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status Status
		kind   error
	}{
		{name: "success", err: nil, status: StatusSuccess, kind: nil},
		{name: "wrapped notification", err: Wrap(ErrNotificationFailed, errors.New("503")), status: StatusFailure, kind: ErrNotificationFailed},
		{name: "upload error", err: &UploadError{FileName: "a.txt", Err: errors.New("x")}, status: StatusFailure, kind: ErrUploadFailed},
		{name: "unknown", err: errors.New("boom"), status: StatusFailure, kind: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := OutcomeOf(tt.err, "done")
			assert.Equal(t, tt.status, o.Status)
			assert.Equal(t, tt.kind, o.Kind)
			if tt.err == nil {
				assert.Equal(t, "done", o.Message)
			} else {
				assert.Equal(t, tt.err.Error(), o.Message)
			}
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "failure", StatusFailure.String())
}
