package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

func (r *implRepository) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		r.l.Errorf(ctx, "session.repository.file.Load: %v", err)
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (r *implRepository) Save(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), dirPerm); err != nil {
		r.l.Errorf(ctx, "session.repository.file.Save: %v", err)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".token-*")
	if err != nil {
		r.l.Errorf(ctx, "session.repository.file.Save: %v", err)
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("session.repository.file.Save: %w", err)
	}
	if _, err := tmp.WriteString(token); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("session.repository.file.Save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session.repository.file.Save: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		r.l.Errorf(ctx, "session.repository.file.Save: %v", err)
		return err
	}
	return nil
}

func (r *implRepository) Clear(ctx context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.l.Errorf(ctx, "session.repository.file.Clear: %v", err)
		return err
	}
	return nil
}
