// Package web holds the embedded page templates served by the web service.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
