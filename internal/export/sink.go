package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalSink writes artifacts into a directory. Files appear under their final name
// only once fully written; an existing file is never overwritten.
type LocalSink struct {
	Dir string
}

func NewLocalSink(dir string) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create export dir: %w", err)
	}
	return &LocalSink{Dir: dir}, nil
}

func (s *LocalSink) Save(ctx context.Context, a Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.Dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("could not create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("could not write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("could not write export: %w", err)
	}

	path, err := s.claim(a.Filename)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("could not move export into place: %w", err)
	}
	return path, nil
}

// Remove deletes a file previously returned by Save.
func (s *LocalSink) Remove(_ context.Context, location string) error {
	if err := os.Remove(location); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not remove export: %w", err)
	}
	return nil
}

// claim reserves a free name in Dir, adding "-1", "-2"... before the extension the
// way browsers do for repeated downloads.
func (s *LocalSink) claim(name string) (string, error) {
	name = filepath.Base(name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < 1000; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		path := filepath.Join(s.Dir, candidate)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("could not reserve %s: %w", candidate, err)
		}
		f.Close()
		return path, nil
	}
	return "", fmt.Errorf("no free file name for %s", name)
}

// Uploader stores a named blob remotely and returns where it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// UploadSink mirrors artifacts to remote object storage.
type UploadSink struct {
	Uploader Uploader
}

func (s UploadSink) Save(ctx context.Context, a Artifact) (string, error) {
	return s.Uploader.Upload(ctx, a.Filename, a.ContentType, a.Data)
}

func (s UploadSink) Remove(ctx context.Context, location string) error {
	return s.Uploader.Delete(ctx, location)
}
