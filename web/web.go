// Package web embeds the site's page content, templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed content templates static
var FS embed.FS

// Static returns the static asset tree (css, js, assets).
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
