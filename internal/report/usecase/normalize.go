package usecase

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"reportctl/internal/model"
	"reportctl/pkg/util"
)

// payload is a report as the backend sends it. Empty strings and a nil
// HasPdf mean the field was absent.
type payload struct {
	ID        string
	GithubURL string
	Email     string
	DateRange string
	Status    string
	CreatedAt string
	LLMStatus string
	HasPdf    *bool
}

func payloadFromJSON(r gjson.Result) payload {
	p := payload{
		ID:        r.Get("id").String(),
		GithubURL: r.Get("githubUrl").String(),
		Email:     r.Get("email").String(),
		DateRange: r.Get("dateRange").String(),
		Status:    r.Get("status").String(),
		CreatedAt: r.Get("createdAt").String(),
		LLMStatus: r.Get("llm_status").String(),
	}
	if v := r.Get("hasPdf"); v.Exists() && v.Type != gjson.Null {
		b := v.Bool()
		p.HasPdf = &b
	}
	return p
}

// toPayload is the inverse of normalize for an already normalized report.
func toPayload(r model.Report) payload {
	has := r.HasArtifact
	return payload{
		ID:        r.ID,
		GithubURL: r.GithubURL,
		Email:     r.AuthorEmail,
		DateRange: r.DateRange,
		Status:    strings.ToLower(string(r.Status)),
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
		LLMStatus: strings.ToLower(string(r.AnalysisStatus)),
		HasPdf:    &has,
	}
}

// normalize fills defaults the backend may omit. The client never invents a
// terminal state: unknown statuses become PROCESSING.
func normalize(p payload, now time.Time) model.Report {
	createdAt, ok := util.ParseServerTime(p.CreatedAt)
	if !ok {
		createdAt = now
	}

	return model.Report{
		ID:             p.ID,
		GithubURL:      p.GithubURL,
		AuthorEmail:    p.Email,
		DateRange:      p.DateRange,
		Status:         reportStatus(p.Status),
		AnalysisStatus: analysisStatus(p.LLMStatus),
		CreatedAt:      createdAt.UTC(),
		HasArtifact:    p.HasPdf != nil && *p.HasPdf,
	}
}

func reportStatus(s string) model.ReportStatus {
	switch st := model.ReportStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case model.ReportStatusQueued, model.ReportStatusProcessing,
		model.ReportStatusCompleted, model.ReportStatusFailed:
		return st
	}
	return model.ReportStatusProcessing
}

func analysisStatus(s string) model.AnalysisStatus {
	switch st := model.AnalysisStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case model.AnalysisStatusPending, model.AnalysisStatusProcessing,
		model.AnalysisStatusCompleted, model.AnalysisStatusFailed, model.AnalysisStatusSkipped:
		return st
	}
	return model.AnalysisStatusPending
}
