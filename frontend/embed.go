package frontend

import "embed"

// StaticFiles holds the built dashboard assets. Run the frontend build
// before packaging to replace the placeholder dist contents.
//
//go:embed all:dist
var StaticFiles embed.FS
