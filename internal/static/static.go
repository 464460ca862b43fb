// Package static serves a directory of files over HTTP the way the frontend
// expects: index.html for directories, 404 for anything else that is not a
// regular file.
package static

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const indexFile = "index.html"

// NewHandler returns a handler serving files below root. Paths are cleaned by
// http.Dir, so requests cannot escape root.
func NewHandler(root string) http.Handler {
	files := restrictedFS{fs: http.Dir(root)}
	return &handler{
		files:  files,
		server: http.FileServer(files),
	}
}

type handler struct {
	files  restrictedFS
	server http.Handler
}

// ServeHTTP answers explicit index.html requests in place; http.FileServer
// would redirect them to the enclosing directory.
func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/"+indexFile) {
		h.server.ServeHTTP(w, r)
		return
	}

	f, err := h.files.Open(path.Clean(r.URL.Path))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// restrictedFS hides dotfiles and directories that have no index page.
type restrictedFS struct {
	fs http.FileSystem
}

func (r restrictedFS) Open(name string) (http.File, error) {
	if hasDotSegment(name) {
		return nil, fs.ErrNotExist
	}

	f, err := r.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !info.IsDir() {
		return f, nil
	}

	index, err := r.fs.Open(path.Join(name, indexFile))
	if err != nil {
		_ = f.Close()
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fs.ErrNotExist
		}
		return nil, err
	}
	_ = index.Close()

	return f, nil
}

func hasDotSegment(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
