package fetch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// Dir serves resources from a local directory.
type Dir struct {
	Root string
	fsys fs.FS
}

// NewDir returns a Source rooted at root.
func NewDir(root string) *Dir {
	return &Dir{Root: root, fsys: os.DirFS(root)}
}

// Fetch reads the file at p below the root. Paths that would escape the root
// are rejected.
func (d *Dir) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ResourceError{Path: p, Err: err}
	}

	name := path.Clean(p)
	if len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	if !fs.ValidPath(name) || name == "." {
		return nil, &ResourceError{Path: p, Err: fmt.Errorf("invalid path %q", p)}
	}

	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return nil, &ResourceError{Path: p, Err: err}
	}
	return data, nil
}
