package contact

import (
	"net/http"

	"github.com/programme-lv/contactform/srvcerror"
)

const ErrCodeSubmissionRejected = "submission_rejected"

// newErrSubmissionRejected is deliberately as bland as a validation error.
func newErrSubmissionRejected() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionRejected,
		"Unable to process submission.",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeRequiredFieldsMissing = "required_fields_missing"

func newErrRequiredFieldsMissing() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRequiredFieldsMissing,
		"First name, last name, and email are required.",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidEmail = "invalid_email"

func newErrInvalidEmail() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidEmail,
		"Please provide a valid email address.",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeStorageNotConfigured = "storage_not_configured"

func NewErrStorageNotConfigured() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeStorageNotConfigured,
		"Storage is not configured.",
	).SetHttpStatusCode(http.StatusInternalServerError)
}

const ErrCodeStorageWriteFailed = "storage_write_failed"

func newErrStorageWriteFailed(cause error) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeStorageWriteFailed,
		"Unable to save your message right now.",
	).SetHttpStatusCode(http.StatusInternalServerError).SetDebug(cause)
}
