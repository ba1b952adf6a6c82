package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"reportctl/internal/gateway"
	"reportctl/internal/model"
	"reportctl/internal/report"
	pkgErrors "reportctl/pkg/errors"
)

// Refresh replaces the list with the backend's current snapshot. A 401 is
// not reported: the session is already gone and the list with it.
func (uc *implUseCase) Refresh(ctx context.Context) error {
	uc.mu.Lock()
	epoch := uc.epoch
	uc.mu.Unlock()
	return uc.refresh(ctx, epoch, 0)
}

func (uc *implUseCase) List() []model.Report {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.listLocked()
}

func (uc *implUseCase) LastError() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.lastErr
}

func (uc *implUseCase) Subscribe(fn func([]model.Report)) func() {
	uc.subsMu.Lock()
	defer uc.subsMu.Unlock()
	id := uc.nextSub
	uc.nextSub++
	uc.subs[id] = fn
	return func() {
		uc.subsMu.Lock()
		defer uc.subsMu.Unlock()
		delete(uc.subs, id)
	}
}

// refresh fetches a snapshot on behalf of epoch. followUp is the token of
// the submission whose reconciliation this is, or 0.
func (uc *implUseCase) refresh(ctx context.Context, epoch, followUp uint64) error {
	if !uc.current(epoch) {
		return nil
	}

	resp, err := uc.gw.Do(ctx, gateway.Request{Method: http.MethodGet, Path: report.PathReports})
	if err != nil {
		if errors.Is(err, gateway.ErrSessionInvalid) {
			return nil
		}
		uc.l.Warnf(ctx, "report.usecase.refresh: %v", err)
		uc.recordError(epoch, err)
		return err
	}
	if !resp.OK() {
		se := pkgErrors.NewServerError(resp.StatusCode, resp.Body, fmt.Sprintf("%s: %s", report.MsgLoadFailed, resp.StatusText()))
		uc.l.Warnf(ctx, "report.usecase.refresh: status %d: %s", resp.StatusCode, se.Message)
		uc.recordError(epoch, se)
		return se
	}

	if !gjson.ValidBytes(resp.Body) || !gjson.ParseBytes(resp.Body).IsArray() {
		err := pkgErrors.Malformed("report.usecase.refresh", fmt.Errorf("expected a JSON array"))
		uc.l.Warnf(ctx, "report.usecase.refresh: %v", err)
		uc.recordError(epoch, err)
		return err
	}

	now := uc.now()
	items := gjson.ParseBytes(resp.Body).Array()
	snapshot := make([]model.Report, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		snapshot = append(snapshot, normalize(payloadFromJSON(item), now))
	}

	uc.mu.Lock()
	if uc.epoch != epoch {
		uc.mu.Unlock()
		uc.l.Debugf(ctx, "report.usecase.refresh: stale snapshot discarded")
		return nil
	}
	uc.entries = merge(uc.entries, snapshot, followUp)
	uc.lastErr = nil
	uc.publishLocked()
	return nil
}

// merge builds the list from a fresh snapshot. Optimistic entries stay at
// the head until their own follow-up refresh lands or the server returns a
// record with the same confirmed id.
func merge(cur []entry, snapshot []model.Report, followUp uint64) []entry {
	confirmed := make(map[string]struct{}, len(snapshot))
	for _, r := range snapshot {
		confirmed[r.ID] = struct{}{}
	}

	next := make([]entry, 0, len(cur)+len(snapshot))
	for _, e := range cur {
		if !e.optimistic || e.followUp == 0 || e.followUp == followUp {
			continue
		}
		if _, ok := confirmed[e.report.ID]; ok && !e.report.IsTemporary() {
			continue
		}
		next = append(next, e)
	}
	for _, r := range snapshot {
		next = append(next, entry{report: r})
	}
	return next
}

func (uc *implUseCase) current(epoch uint64) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.epoch == epoch
}

func (uc *implUseCase) recordError(epoch uint64, err error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.epoch == epoch {
		uc.lastErr = err
	}
}

func (uc *implUseCase) listLocked() []model.Report {
	out := make([]model.Report, len(uc.entries))
	for i, e := range uc.entries {
		out[i] = e.report
		out[i].Pending = e.optimistic
	}
	return out
}

// publishLocked delivers the current list to subscribers. It must be called
// with mu held and releases it.
func (uc *implUseCase) publishLocked() {
	snap := uc.listLocked()
	uc.publishMu.Lock()
	uc.mu.Unlock()
	defer uc.publishMu.Unlock()

	uc.subsMu.Lock()
	subs := make([]func([]model.Report), 0, len(uc.subs))
	for _, fn := range uc.subs {
		subs = append(subs, fn)
	}
	uc.subsMu.Unlock()

	for _, fn := range subs {
		fn(append([]model.Report(nil), snap...))
	}
}
