package report

import "errors"

var (
	ErrInvalidGithubURL = errors.New("invalid GitHub URL (expected https://github.com/owner/repo)")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidDate      = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrEndBeforeStart   = errors.New("end date is before start date")
	ErrRequiredField    = errors.New("required field is empty")
	ErrReportIDRequired = errors.New("report id is required")
	ErrArtifactTooLarge = errors.New("report artifact too large")
)
