package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"
)

// LocalUploader writes files under Dir and serves them from PublicPath.
type LocalUploader struct {
	Dir        string
	PublicPath string
}

func NewLocalUploader(dir, publicPath string) *LocalUploader {
	return &LocalUploader{Dir: dir, PublicPath: publicPath}
}

func (u *LocalUploader) Upload(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating upload dir: %w", err)
	}

	name := ObjectName(filename, time.Now())
	f, err := os.Create(filepath.Join(u.Dir, name))
	if err != nil {
		return "", fmt.Errorf("error creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("error writing file: %w", err)
	}

	return path.Join(u.PublicPath, name), nil
}
