// Package web provides the embedded page templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed views static
var webFS embed.FS

// Views returns the embedded templates with the views/ prefix stripped.
func Views() fs.FS {
	sub, err := fs.Sub(webFS, "views")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the embedded static assets with the static/ prefix stripped.
func Static() fs.FS {
	sub, err := fs.Sub(webFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
