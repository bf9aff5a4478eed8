// Package web bundles the HTML templates and the fallback stylesheet into the binary.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html static/*
var FS embed.FS

// FallbackCSS is inlined when no local stylesheet is present.
//
//go:embed static/fallback.css
var FallbackCSS []byte

// Templates parses every page and fragment template.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(FS, "templates/*.html")
}
