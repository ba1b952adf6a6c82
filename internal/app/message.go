package app

import (
	"errors"

	"reportctl/internal/gateway"
	"reportctl/internal/report"
	"reportctl/internal/session"
	pkgErrors "reportctl/pkg/errors"
)

const (
	msgNetwork   = "Network error. Check your connection and try again."
	msgMalformed = "The server sent an unexpected response."
)

// MsgUnexpected is shown for errors that have no dedicated message.
const MsgUnexpected = "Something went wrong."

var validationMessages = []struct {
	err error
	msg string
}{
	{session.ErrNotAuthenticated, "Please log in first."},
	{session.ErrPasswordMismatch, "Passwords do not match."},
	{session.ErrInvalidEmail, "Invalid email address."},
	{session.ErrRequiredField, "Please fill in all required fields."},
	{report.ErrInvalidGithubURL, "Invalid GitHub URL format (https://github.com/owner/repo)."},
	{report.ErrInvalidEmail, "Invalid email address."},
	{report.ErrInvalidDate, "Dates must be in YYYY-MM-DD format."},
	{report.ErrEndBeforeStart, "End date must not be before start date."},
	{report.ErrRequiredField, "Please fill in all required fields."},
	{report.ErrReportIDRequired, "A report id is required."},
	{report.ErrArtifactTooLarge, "The report file is too large to download."},
}

// UserMessage picks the text to show for err. It returns false when nothing
// should be shown: session invalidation is reported through the session
// transition itself.
func UserMessage(err error) (string, bool) {
	if err == nil || errors.Is(err, gateway.ErrSessionInvalid) {
		return "", false
	}
	if se, ok := pkgErrors.IsServerError(err); ok {
		return se.Message, true
	}
	for _, v := range validationMessages {
		if errors.Is(err, v.err) {
			return v.msg, true
		}
	}
	switch {
	case errors.Is(err, pkgErrors.ErrTransport):
		return msgNetwork, true
	case errors.Is(err, pkgErrors.ErrMalformedResponse):
		return msgMalformed, true
	}
	return MsgUnexpected, true
}
