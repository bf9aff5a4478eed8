// Package render turns content blocks into HTML fragments.
package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/mujakkirdv/portfolio/internal/content"
)

// Renderer converts markdown bodies and frames blocks. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	cards  *template.Template
}

// New builds a renderer with GFM markdown and a sanitising policy for its output.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		policy: newPolicy(),
		cards:  template.Must(template.New("card").Parse(cardTemplates)),
	}
}

func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// Markdown converts markdown to sanitised HTML. If conversion fails the text is escaped
// and returned as a paragraph.
func (r *Renderer) Markdown(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(src) + "</p>")
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// Inline renders a one-line markdown string without the wrapping paragraph.
func (r *Renderer) Inline(src string) template.HTML {
	out := strings.TrimSpace(string(r.Markdown(src)))
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return template.HTML(out)
}

type cardView struct {
	Title    string
	Subtitle string
	Caption  string
	Icon     string
	Body     template.HTML
	Link     *content.Link
	Expanded bool
}

// Card renders one block. The title is always present; subtitle, caption, body and link
// appear only when set. The output depends on the block alone.
func (r *Renderer) Card(b content.Block) template.HTML {
	v := cardView{
		Title:    b.Title,
		Subtitle: b.Subtitle,
		Caption:  b.Caption,
		Icon:     b.Icon,
		Body:     r.Markdown(b.Body),
		Link:     b.Link,
		Expanded: b.Expanded,
	}
	if v.Link != nil && (v.Link.Text == "" || v.Link.URL == "") {
		v.Link = nil
	}

	name := string(content.VariantCard)
	switch b.Variant {
	case content.VariantExpander, content.VariantQuote, content.VariantText:
		name = string(b.Variant)
	}
	var buf bytes.Buffer
	if err := r.cards.ExecuteTemplate(&buf, name, v); err != nil {
		return template.HTML(`<article class="card"><h3>` + template.HTMLEscapeString(b.Title) + `</h3></article>`)
	}
	return template.HTML(buf.String())
}

const cardTemplates = `
{{- define "title" -}}
{{if .Icon}}{{.Icon}} {{end}}{{.Title}}
{{- end -}}

{{- define "card" -}}
<article class="card">
<h3 class="card-title">{{template "title" .}}</h3>
{{- if .Subtitle}}
<div class="subtitle">{{.Subtitle}}</div>
{{- end}}
{{- if .Caption}}
<div class="caption">{{.Caption}}</div>
{{- end}}
{{- if .Body}}
<div class="card-body">{{.Body}}</div>
{{- end}}
{{- if .Link}}
<a class="button link-button" href="{{.Link.URL}}" target="_blank" rel="noopener noreferrer">{{.Link.Text}}</a>
{{- end}}
</article>
{{- end -}}

{{- define "expander" -}}
<details class="expander"{{if .Expanded}} open{{end}}>
<summary>{{template "title" .}}</summary>
{{- if .Caption}}
<div class="caption">{{.Caption}}</div>
{{- end}}
{{- if .Body}}
<div class="card-body">{{.Body}}</div>
{{- end}}
{{- if .Link}}
<a class="button link-button" href="{{.Link.URL}}" target="_blank" rel="noopener noreferrer">{{.Link.Text}}</a>
{{- end}}
</details>
{{- end -}}

{{- define "quote" -}}
<figure class="card quote">
<blockquote>{{.Body}}</blockquote>
<figcaption><strong class="card-title">— {{template "title" .}}</strong>
{{- if .Subtitle}} <span class="subtitle">{{.Subtitle}}</span>{{end}}</figcaption>
</figure>
{{- end -}}

{{- define "text" -}}
<section class="text-block">
<h3>{{template "title" .}}</h3>
{{- if .Subtitle}}
<div class="subtitle">{{.Subtitle}}</div>
{{- end}}
{{- if .Caption}}
<div class="caption">{{.Caption}}</div>
{{- end}}
{{- if .Body}}
<div class="card-body">{{.Body}}</div>
{{- end}}
</section>
{{- end -}}
`
