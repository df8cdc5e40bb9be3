package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/xxxsen/wikid/internal/filestore"
	"github.com/xxxsen/wikid/internal/model"
	appErr "github.com/xxxsen/wikid/internal/pkg/errors"
)

type UserRepo struct {
	store filestore.Store
}

func NewUserRepo(store filestore.Store) *UserRepo {
	return &UserRepo{store: store}
}

// Exists reports whether anything is stored under the user root.
func (r *UserRepo) Exists(ctx context.Context, username string) (bool, error) {
	root, err := userRoot(username)
	if err != nil {
		return false, err
	}
	kind, err := r.store.Stat(ctx, root)
	if err != nil {
		return false, err
	}
	return kind != filestore.KindNone, nil
}

// Create writes the credential file into a fresh user root. It returns
// ErrConflict when the root already exists.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	root, err := userRoot(user.Username)
	if err != nil {
		return err
	}
	exists, err := r.Exists(ctx, user.Username)
	if err != nil {
		return err
	}
	if exists {
		return appErr.ErrConflict
	}
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user config: %w", err)
	}
	return r.store.Put(ctx, path.Join(root, configFileName), data)
}

func (r *UserRepo) Get(ctx context.Context, username string) (*model.User, error) {
	root, err := userRoot(username)
	if err != nil {
		return nil, err
	}
	data, err := r.store.Get(ctx, path.Join(root, configFileName))
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user config: %w", err)
	}
	user.Username = username
	return &user, nil
}
