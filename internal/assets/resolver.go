// Package assets locates the optional local files of the portfolio: profile images, the
// resume document and the stylesheet. A missing file is a normal outcome, never an error.
package assets

import (
	"os"
	"path/filepath"
	"strings"
)

// Reference is a resolved pointer to an optional local file.
type Reference struct {
	LogicalName  string
	RelativePath string
	Exists       bool
}

// Resolver checks files under a fixed root directory.
type Resolver struct {
	root string
}

// NewResolver returns a resolver rooted at dir. An empty dir means the working directory.
func NewResolver(dir string) *Resolver {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	return &Resolver{root: dir}
}

// Root is the directory assets are resolved under.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve checks whether path names a regular file under the root. It never fails:
// missing files, directories and paths leaving the root, directly or through a symlink,
// all report Exists=false.
func (r *Resolver) Resolve(path string) Reference {
	ref := Reference{
		LogicalName:  logicalName(path),
		RelativePath: strings.TrimSpace(path),
	}
	full, ok := r.abs(path)
	if !ok {
		return ref
	}
	info, err := os.Stat(full)
	ref.Exists = err == nil && info.Mode().IsRegular() && r.contains(full)
	return ref
}

// Open opens a resolved asset for reading. Callers check Exists first.
func (r *Resolver) Open(ref Reference) (*os.File, error) {
	full, ok := r.abs(ref.RelativePath)
	if !ok || !r.contains(full) {
		return nil, os.ErrNotExist
	}
	return os.Open(full)
}

// Path returns the filesystem path of a reference.
func (r *Resolver) Path(ref Reference) (string, bool) {
	return r.abs(ref.RelativePath)
}

func (r *Resolver) abs(path string) (string, bool) {
	rel := clean(path)
	if rel == "" {
		return "", false
	}
	return filepath.Join(r.root, filepath.FromSlash(rel)), true
}

// contains reports whether full, with symlinks resolved, is still inside the root.
func (r *Resolver) contains(full string) bool {
	root, err := filepath.EvalSymlinks(r.root)
	if err != nil {
		return false
	}
	target, err := filepath.EvalSymlinks(full)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// clean normalises a relative asset path, rejecting absolute paths and parent traversal.
func clean(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || strings.HasPrefix(path, "/") || filepath.IsAbs(path) {
		return ""
	}
	path = filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
	if path == "." || path == ".." || strings.HasPrefix(path, "../") {
		return ""
	}
	return path
}

func logicalName(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
