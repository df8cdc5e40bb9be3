package repo

import (
	"context"
	"sort"
	"strings"

	"github.com/xxxsen/wikid/internal/filestore"
	appErr "github.com/xxxsen/wikid/internal/pkg/errors"
)

type PageRepo struct {
	store filestore.Store
}

func NewPageRepo(store filestore.Store) *PageRepo {
	return &PageRepo{store: store}
}

func (r *PageRepo) Read(ctx context.Context, username, rel string) ([]byte, error) {
	key, err := pageKey(username, rel)
	if err != nil {
		return nil, err
	}
	return r.store.Get(ctx, key)
}

// Write overwrites the page unconditionally.
func (r *PageRepo) Write(ctx context.Context, username, rel string, data []byte) error {
	key, err := pageKey(username, rel)
	if err != nil {
		return err
	}
	cleaned, err := CleanPath(rel)
	if err != nil {
		return err
	}
	if cleaned == "" {
		return appErr.ErrInvalid
	}
	return r.store.Put(ctx, key, data)
}

// List returns the visible children of a directory in ascending order.
func (r *PageRepo) List(ctx context.Context, username, rel string) ([]string, error) {
	key, err := pageKey(username, rel)
	if err != nil {
		return nil, err
	}
	names, err := r.store.List(ctx, key)
	if err != nil {
		return nil, err
	}
	visible := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, ".") {
			continue
		}
		visible = append(visible, name)
	}
	sort.Strings(visible)
	return visible, nil
}

func (r *PageRepo) Stat(ctx context.Context, username, rel string) (filestore.Kind, error) {
	key, err := pageKey(username, rel)
	if err != nil {
		return filestore.KindNone, err
	}
	return r.store.Stat(ctx, key)
}
