package web

import "embed"

// Static holds the embedded web/static directory.
// Handlers access it via fs.Sub(Static, "static").
//
//go:embed static
var Static embed.FS

// Templates holds the html/template sources under web/templates.
//
//go:embed templates/layouts/*.html templates/pages/*.html
var Templates embed.FS
