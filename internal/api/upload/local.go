package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var _ Transport = (*LocalTransport)(nil)

// ErrUnsafePath is returned for keys that would resolve outside the upload directory.
var ErrUnsafePath = errors.New("unsafe upload path")

// LocalTransport writes uploads below a directory that the API serves itself.
type LocalTransport struct {
	dir       string
	urlPrefix string
}

// NewLocalTransport creates dir if needed. urlPrefix is the public route the files are served under.
func NewLocalTransport(dir, urlPrefix string) (*LocalTransport, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("error resolving upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("error creating upload dir: %w", err)
	}
	return &LocalTransport{dir: abs, urlPrefix: urlPrefix}, nil
}

func (t *LocalTransport) Name() string { return "local" }

func (t *LocalTransport) Dir() string { return t.dir }

func (t *LocalTransport) Put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := t.Resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("error creating upload folder: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("error writing upload: %w", err)
	}
	return joinURL(t.urlPrefix, key), nil
}

// Resolve maps a slash-separated key onto a path inside the upload directory.
func (t *LocalTransport) Resolve(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") || strings.ContainsRune(key, 0) {
		return "", ErrUnsafePath
	}
	full := filepath.Join(t.dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(t.dir, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrUnsafePath
	}
	return full, nil
}
