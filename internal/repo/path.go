package repo

import (
	"path"
	"strings"

	appErr "github.com/xxxsen/wikid/internal/pkg/errors"
	"github.com/xxxsen/wikid/internal/pkg/validate"
)

const configFileName = ".config.json"

// userRoot fans users out by the first character of their name.
func userRoot(username string) (string, error) {
	if !validate.Username(username) {
		return "", appErr.ErrInvalid
	}
	return path.Join(username[:1], username), nil
}

// CleanPath normalizes a page path taken from a URL tail. Traversal
// segments, hidden segments and backslashes are rejected so that every
// resolved key stays inside the user root and never reaches .config.json.
func CleanPath(rel string) (string, error) {
	if strings.ContainsAny(rel, "\\\x00") {
		return "", appErr.ErrInvalid
	}
	var parts []string
	for _, seg := range strings.Split(rel, "/") {
		switch {
		case seg == "" || seg == ".":
			continue
		case strings.HasPrefix(seg, "."):
			return "", appErr.ErrInvalid
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, "/"), nil
}

func pageKey(username, rel string) (string, error) {
	root, err := userRoot(username)
	if err != nil {
		return "", err
	}
	cleaned, err := CleanPath(rel)
	if err != nil {
		return "", err
	}
	if cleaned == "" {
		return root, nil
	}
	return path.Join(root, cleaned), nil
}
