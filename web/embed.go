// Package web embeds the dashboard page served at /.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed all:static
var static embed.FS

// FS returns a filesystem rooted at the embedded static/ directory.
func FS() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		log.Fatalf("web.FS: %v", err)
	}
	return sub
}
