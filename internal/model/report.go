package model

import (
	"strings"
	"time"
)

// ReportStatus is the server-side lifecycle state of a report.
type ReportStatus string

const (
	ReportStatusQueued     ReportStatus = "QUEUED"
	ReportStatusProcessing ReportStatus = "PROCESSING"
	ReportStatusCompleted  ReportStatus = "COMPLETED"
	ReportStatusFailed     ReportStatus = "FAILED"
)

// AnalysisStatus is the state of the AI analysis step of a report.
type AnalysisStatus string

const (
	AnalysisStatusPending    AnalysisStatus = "PENDING"
	AnalysisStatusProcessing AnalysisStatus = "PROCESSING"
	AnalysisStatusCompleted  AnalysisStatus = "COMPLETED"
	AnalysisStatusFailed     AnalysisStatus = "FAILED"
	AnalysisStatusSkipped    AnalysisStatus = "SKIPPED"
)

// TempIDPrefix marks ids assigned locally before the server confirms a report.
const TempIDPrefix = "temp-"

// Report is one code-quality report as displayed to the user.
type Report struct {
	ID             string
	GithubURL      string
	AuthorEmail    string
	DateRange      string
	Status         ReportStatus
	AnalysisStatus AnalysisStatus
	CreatedAt      time.Time
	HasArtifact    bool

	// Pending is set while the record is an optimistic local insertion
	// waiting for reconciliation.
	Pending bool
}

// IsTemporary reports whether the id was assigned locally.
func (r Report) IsTemporary() bool {
	return strings.HasPrefix(r.ID, TempIDPrefix)
}

// Downloadable reports whether the artifact can be fetched.
func (r Report) Downloadable() bool {
	return r.Status == ReportStatusCompleted && r.HasArtifact
}

// RepoName returns the last path segment of the GitHub URL, or "repo".
func (r Report) RepoName() string {
	return RepoNameFromURL(r.GithubURL)
}

// RepoNameFromURL returns the last path segment of a repository URL, or "repo".
func RepoNameFromURL(githubURL string) string {
	u := strings.TrimRight(strings.TrimSpace(githubURL), "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		u = u[i+1:]
	}
	if u == "" {
		return "repo"
	}
	return u
}

// StatusText is the short human description of where the report is.
func (r Report) StatusText() string {
	switch r.Status {
	case ReportStatusQueued:
		return "Queued"
	case ReportStatusProcessing:
		switch r.AnalysisStatus {
		case AnalysisStatusProcessing:
			return "Analyzing..."
		case AnalysisStatusPending:
			return "Fetching from GitHub..."
		}
		return "Processing..."
	case ReportStatusCompleted:
		return "Ready"
	case ReportStatusFailed:
		return "Failed"
	}
	return "Unknown"
}

// DownloadHint explains why a report cannot be downloaded yet.
func (r Report) DownloadHint() string {
	switch {
	case r.Downloadable():
		return ""
	case r.Status != ReportStatusCompleted:
		return "report is not ready yet"
	default:
		return "PDF generation failed"
	}
}
