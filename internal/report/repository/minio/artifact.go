package minio

import (
	"bytes"
	"context"

	"reportctl/internal/report/repository"
	pkgMinio "reportctl/pkg/minio"
)

func (r *implRepository) Save(ctx context.Context, opt repository.SaveOptions) (string, error) {
	info, err := r.minio.UploadFile(ctx, &pkgMinio.UploadRequest{
		BucketName:   r.bucket,
		ObjectName:   objectPrefix + opt.Name,
		OriginalName: opt.Name,
		Reader:       bytes.NewReader(opt.Data),
		Size:         int64(len(opt.Data)),
		ContentType:  opt.ContentType,
		Metadata: map[string]string{
			"report_id": opt.ReportID,
		},
	})
	if err != nil {
		r.l.Errorf(ctx, "report.repository.minio.Save: %v", err)
		return "", err
	}
	return info.BucketName + "/" + info.ObjectName, nil
}
