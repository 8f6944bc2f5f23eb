package delivery

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the prebuilt frontend bundle. Unknown paths fall back
// to index.html so client-side routing works on page reload.
type StaticHandler struct {
	dir string
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

func (h *StaticHandler) Serve(w http.ResponseWriter, r *http.Request) {
	// collapse any ".." segments; ServeFile refuses paths that contain them
	r.URL.Path = filepath.Clean("/" + r.URL.Path)
	rel := strings.TrimPrefix(r.URL.Path, "/")

	if rel != "" && rel != "." {
		target := filepath.Join(h.dir, rel)
		if info, err := os.Stat(target); err == nil && !info.IsDir() {
			http.ServeFile(w, r, target)
			return
		}
	}

	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
