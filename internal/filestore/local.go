package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	appErr "github.com/xxxsen/wikid/internal/pkg/errors"
)

type localConfig struct {
	Dir string `json:"dir"`
}

type localStore struct {
	dir string
}

func init() {
	Register("local", createLocalStore)
}

func createLocalStore(args interface{}) (Store, error) {
	config := &localConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.Dir == "" {
		return nil, fmt.Errorf("local store dir is required")
	}
	dir, err := filepath.Abs(config.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve local store dir: %w", err)
	}
	return &localStore{dir: dir}, nil
}

func (s *localStore) Type() string {
	return "local"
}

func (s *localStore) Get(ctx context.Context, key string) ([]byte, error) {
	_ = ctx
	p, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, appErr.ErrNotFound
	}
	return os.ReadFile(p)
}

func (s *localStore) Put(ctx context.Context, key string, data []byte) error {
	_ = ctx
	p, err := s.resolve(key)
	if err != nil {
		return err
	}
	if p == s.dir {
		return fmt.Errorf("invalid file key: %q", key)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(p, bytes.NewReader(data))
}

func (s *localStore) List(ctx context.Context, key string) ([]string, error) {
	_ = ctx
	p, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (s *localStore) Stat(ctx context.Context, key string) (Kind, error) {
	_ = ctx
	p, err := s.resolve(key)
	if err != nil {
		return KindNone, err
	}
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return KindNone, nil
		}
		return KindNone, err
	}
	if info.IsDir() {
		return KindDir, nil
	}
	return KindFile, nil
}

func (s *localStore) resolve(key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	p := filepath.Join(s.dir, filepath.FromSlash(cleaned))
	rel, err := filepath.Rel(s.dir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid file key: %q", key)
	}
	return p, nil
}
