package files

import (
	"fmt"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// Resolver maps a request path to a path on disk under a fixed root
type Resolver struct {
	root    string
	contain bool
}

// NewResolver creates a resolver that prefixes every request path with root.
//
// With contain unset the mapping is a plain string concatenation: nothing is
// cleaned and "../" segments are passed through to the filesystem. With
// contain set the joined path is canonicalized and clamped inside root.
func NewResolver(root string, contain bool) *Resolver {
	return &Resolver{root: root, contain: contain}
}

// Resolve returns the disk path for logicalPath
func (r *Resolver) Resolve(logicalPath string) (string, error) {
	if !r.contain {
		return r.root + logicalPath, nil
	}

	diskPath, err := securejoin.SecureJoin(r.root, logicalPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q under %q: %w", logicalPath, r.root, err)
	}
	return diskPath, nil
}
