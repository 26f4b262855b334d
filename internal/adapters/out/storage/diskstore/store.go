// Package diskstore keeps invoice artifacts on the local filesystem for development.
package diskstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"
)

type Store struct {
	root      string
	publicURL string
}

var _ ports.ObjectStorage = (*Store)(nil)

// New stores objects below root, creating it if needed. Returned locations are
// publicURL joined with the key, or file paths when publicURL is empty.
func New(root, publicURL string) (*Store, error) {
	if root == "" {
		return nil, errs.NewValueIsRequiredError("root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{root: abs, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (s *Store) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	// Write to a sibling temp file first so readers never see a partial artifact.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(body); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}

	if s.publicURL == "" {
		return path, nil
	}
	return s.publicURL + "/" + filepath.ToSlash(key), nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.NewObjectNotFoundError("object", key)
	}
	return body, err
}

func (s *Store) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) path(key string) (string, error) {
	local := filepath.FromSlash(key)
	if key == "" || !filepath.IsLocal(local) {
		return "", errs.NewValueIsInvalidError("key")
	}
	return filepath.Join(s.root, local), nil
}
