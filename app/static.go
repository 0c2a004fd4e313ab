package main

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// staticFileHandler serves unmatched GET and HEAD requests from the public
// directory. Anything else is a JSON 404.
func (app *application) staticFileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		name := path.Clean("/" + r.URL.Path)
		if name != "/" {
			full := filepath.Join(app.config.PublicDir, filepath.FromSlash(name))
			if info, err := os.Stat(full); err == nil && !info.IsDir() {
				http.ServeFile(w, r, full)
				return
			}
		}
	}

	app.notFoundErrorResponse(w, r)
}
