package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"reportctl/internal/gateway"
	"reportctl/internal/report"
	"reportctl/internal/report/repository"
	pkgErrors "reportctl/pkg/errors"
	pkghttp "reportctl/pkg/http"
)

// Download fetches the report artifact and saves it locally, mirroring it to
// object storage when configured. A failed mirror does not fail the download.
func (uc *implUseCase) Download(ctx context.Context, input report.DownloadInput) (report.DownloadOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return report.DownloadOutput{}, report.ErrReportIDRequired
	}

	resp, err := uc.gw.Do(ctx, gateway.Request{
		Method:  http.MethodGet,
		Path:    fmt.Sprintf(report.PathDownload, url.PathEscape(id)),
		Headers: map[string]string{pkghttp.HeaderAccept: report.ContentTypePDF + ", " + pkghttp.ContentTypeJSON},
	})
	if err != nil {
		if errors.Is(err, pkghttp.ErrBodyTooLarge) {
			return report.DownloadOutput{}, fmt.Errorf("%w: %w", report.ErrArtifactTooLarge, err)
		}
		return report.DownloadOutput{}, err
	}
	if !resp.OK() {
		se := pkgErrors.NewServerError(resp.StatusCode, resp.Body,
			fmt.Sprintf("%s: %s", report.MsgDownloadFailed, resp.StatusText()),
			"description", "error")
		uc.l.Warnf(ctx, "report.usecase.Download: %s: status %d: %s", id, resp.StatusCode, se.Message)
		return report.DownloadOutput{}, se
	}

	contentType := resp.Header.Get(pkghttp.HeaderContentType)
	if contentType == "" {
		contentType = report.ContentTypePDF
	}
	opt := repository.SaveOptions{
		ReportID:    id,
		Name:        report.FileName(input.DisplayName, id),
		ContentType: contentType,
		Data:        resp.Body,
	}

	path, err := uc.artifacts.Save(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.Download: save %s: %v", opt.Name, err)
		return report.DownloadOutput{}, fmt.Errorf("report.usecase.Download: save: %w", err)
	}

	out := report.DownloadOutput{
		FileName: opt.Name,
		Path:     path,
		Size:     int64(len(resp.Body)),
	}
	if uc.mirror != nil {
		loc, err := uc.mirror.Save(ctx, opt)
		if err != nil {
			uc.l.Warnf(ctx, "report.usecase.Download: mirror %s: %v", opt.Name, err)
		} else {
			out.MirrorLocation = loc
		}
	}

	uc.l.Infof(ctx, "report.usecase.Download: saved %s (%d bytes)", out.Path, out.Size)
	return out, nil
}
