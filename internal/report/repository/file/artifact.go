package file

import (
	"context"
	"os"
	"path/filepath"

	"reportctl/internal/report/repository"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

func (r *implRepository) Save(ctx context.Context, opt repository.SaveOptions) (string, error) {
	if err := os.MkdirAll(r.dir, dirPerm); err != nil {
		r.l.Errorf(ctx, "report.repository.file.Save: %v", err)
		return "", err
	}

	path := filepath.Join(r.dir, filepath.Base(opt.Name))
	if err := os.WriteFile(path, opt.Data, filePerm); err != nil {
		r.l.Errorf(ctx, "report.repository.file.Save: %v", err)
		return "", err
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}
