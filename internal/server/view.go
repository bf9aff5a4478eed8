package server

import (
	"html/template"

	"github.com/mujakkirdv/portfolio/internal/contact"
	"github.com/mujakkirdv/portfolio/internal/content"
	"github.com/mujakkirdv/portfolio/internal/nav"
	"github.com/mujakkirdv/portfolio/web"
)

// pageView is the view model of the full page layout.
type pageView struct {
	Site       content.Site
	Profile    content.Profile
	Stylesheet template.CSS
	Nav        []nav.Item
	Panel      panelView
}

type panelView struct {
	Key      nav.Key
	Heading  template.HTML
	Intro    template.HTML
	Sections []sectionView
	Metrics  []content.Metric

	// Set only for the Home and Contact panels.
	Home    *homeView
	Contact *contactView
}

type sectionView struct {
	Title   string
	Columns int
	Cards   []template.HTML
}

type homeView struct {
	Images []imageView
	Resume resumeView
}

type imageView struct {
	Caption string
	Path    string
	Src     string
	Exists  bool
}

type resumeView struct {
	Path         string
	Href         string
	PreviewHref  string
	DownloadName string
	Exists       bool
}

type contactView struct {
	Form    contactForm
	Profile content.Profile
}

// contactForm is the state of the contact form: entered values, outcome and blank fields.
type contactForm struct {
	Values  contact.Submission
	Success string
	Error   string
	Missing map[string]bool
}

func (s *Server) buildPanel(p content.Panel) panelView {
	v := panelView{
		Key:     p.Key,
		Heading: s.renderer.Inline(p.Heading),
		Intro:   s.renderer.Markdown(p.Intro),
		Metrics: p.Metrics,
	}
	for _, sec := range p.Sections {
		sv := sectionView{Title: sec.Title, Columns: sec.Columns}
		for _, b := range sec.Blocks {
			sv.Cards = append(sv.Cards, s.renderer.Card(b))
		}
		v.Sections = append(v.Sections, sv)
	}
	return v
}

// pageFor assembles the view for the selected panel. Asset existence is checked here, on
// every render, so files added while the server runs show up without a restart.
func (s *Server) pageFor(state nav.State, form contactForm) pageView {
	profile := s.registry.Profile()
	css, _ := s.resolver.Stylesheet(s.stylesheet, web.FallbackCSS)
	return pageView{
		Site:       s.registry.Site(),
		Profile:    profile,
		Stylesheet: css,
		Nav:        nav.Build(state),
		Panel:      s.panelFor(state.Active(), profile, form),
	}
}

func (s *Server) panelFor(k nav.Key, profile content.Profile, form contactForm) panelView {
	v := s.panels[k]
	switch k {
	case nav.Home:
		v.Home = s.homeAssets(profile)
	case nav.Contact:
		v.Contact = &contactView{Form: form, Profile: profile}
	}
	return v
}

func (s *Server) homeAssets(profile content.Profile) *homeView {
	h := &homeView{}
	for _, img := range profile.Images {
		ref := s.resolver.Resolve(img.Path)
		h.Images = append(h.Images, imageView{
			Caption: img.Caption,
			Path:    ref.RelativePath,
			Src:     "/images/" + ref.RelativePath,
			Exists:  ref.Exists,
		})
	}
	ref := s.resolver.Resolve(profile.Resume.Path)
	h.Resume = resumeView{
		Path:         ref.RelativePath,
		Href:         "/resume",
		PreviewHref:  "/resume?inline=1",
		DownloadName: profile.Resume.DownloadName,
		Exists:       ref.Exists,
	}
	return h
}
