package assets

import (
	"html/template"
	"io"
)

// maxStylesheetBytes bounds how much of a local stylesheet is inlined into the page.
const maxStylesheetBytes = 1 << 20

// Stylesheet returns the stylesheet at path when it exists and can be read, otherwise the
// fallback. The result is inlined into a <style> element.
func (r *Resolver) Stylesheet(path string, fallback []byte) (template.CSS, Reference) {
	ref := r.Resolve(path)
	if !ref.Exists {
		return template.CSS(fallback), ref
	}
	f, err := r.Open(ref)
	if err != nil {
		ref.Exists = false
		return template.CSS(fallback), ref
	}
	defer f.Close()
	b, err := io.ReadAll(io.LimitReader(f, maxStylesheetBytes))
	if err != nil {
		ref.Exists = false
		return template.CSS(fallback), ref
	}
	return template.CSS(b), ref
}
