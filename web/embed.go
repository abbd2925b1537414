package web

import "embed"

// TemplatesFS embeds the HTML templates used to render report output.
//
//go:embed templates/*.html
var TemplatesFS embed.FS
