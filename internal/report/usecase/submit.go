package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"reportctl/internal/gateway"
	"reportctl/internal/model"
	"reportctl/internal/report"
	pkgErrors "reportctl/pkg/errors"
)

// Submit requests a new report. On success the record is inserted at the
// head of the list right away and one follow-up refresh is scheduled to
// reconcile it with the backend.
func (uc *implUseCase) Submit(ctx context.Context, form model.ReportForm) (model.Report, error) {
	if err := report.ValidateForm(form); err != nil {
		return model.Report{}, err
	}

	uc.mu.Lock()
	epoch := uc.epoch
	uc.mu.Unlock()

	resp, err := uc.gw.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   report.PathGenerate,
		Body:   form,
	})
	if err != nil {
		if !errors.Is(err, gateway.ErrSessionInvalid) {
			uc.l.Warnf(ctx, "report.usecase.Submit: %v", err)
		}
		return model.Report{}, err
	}
	if !resp.OK() {
		se := pkgErrors.NewServerError(resp.StatusCode, resp.Body, fmt.Sprintf("%s: %s", report.MsgCreateFailed, resp.StatusText()))
		uc.l.Warnf(ctx, "report.usecase.Submit: status %d: %s", resp.StatusCode, se.Message)
		return model.Report{}, se
	}

	var partial gjson.Result
	if len(bytes.TrimSpace(resp.Body)) > 0 {
		if !gjson.ValidBytes(resp.Body) {
			uc.l.Warnf(ctx, "report.usecase.Submit: response is not JSON")
			return model.Report{}, pkgErrors.Malformed("report.usecase.Submit", nil)
		}
		partial = gjson.ParseBytes(resp.Body)
	}

	now := uc.now()
	rec := normalize(overlay(payloadFromJSON(partial), form, now), now)

	uc.mu.Lock()
	if uc.epoch != epoch {
		uc.mu.Unlock()
		uc.l.Infof(ctx, "report.usecase.Submit: session changed, %s not inserted", rec.ID)
		return rec, nil
	}
	uc.seq++
	token := uc.seq
	uc.entries = append([]entry{{report: rec, optimistic: true, followUp: token}}, uc.entries...)
	uc.timers[token] = time.AfterFunc(uc.cfg.ReconcileDelay, func() {
		uc.reconcile(epoch, token)
	})
	uc.publishLocked()

	uc.l.Infof(ctx, "report.usecase.Submit: report %s requested for %s", rec.ID, rec.GithubURL)
	rec.Pending = true
	return rec, nil
}

// overlay fills the fields the backend left out from the submitted form.
func overlay(p payload, form model.ReportForm, now time.Time) payload {
	if p.ID == "" {
		p.ID = model.TempIDPrefix + strconv.FormatInt(now.UnixMilli(), 10)
	}
	if p.GithubURL == "" {
		p.GithubURL = form.GithubURL
	}
	if p.Email == "" {
		p.Email = form.Email
	}
	if p.DateRange == "" {
		p.DateRange = form.StartDate + " - " + form.EndDate
	}
	if p.Status == "" {
		p.Status = string(model.ReportStatusProcessing)
	}
	return p
}

// reconcile is the follow-up refresh of submission token.
func (uc *implUseCase) reconcile(epoch, token uint64) {
	uc.mu.Lock()
	delete(uc.timers, token)
	uc.mu.Unlock()

	ctx := context.Background()
	if err := uc.refresh(ctx, epoch, token); err != nil {
		uc.l.Warnf(ctx, "report.usecase.reconcile: follow-up refresh failed: %v", err)

		uc.mu.Lock()
		defer uc.mu.Unlock()
		if uc.epoch != epoch {
			return
		}
		for i := range uc.entries {
			if uc.entries[i].followUp == token {
				uc.entries[i].followUp = 0
			}
		}
	}
}
