package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed views public
var files embed.FS

// Index returns the landing page.
func Index() ([]byte, error) {
	return files.ReadFile("views/index.html")
}

// Public serves the stylesheet and other assets under /public.
func Public() http.FileSystem {
	sub, err := fs.Sub(files, "public")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
