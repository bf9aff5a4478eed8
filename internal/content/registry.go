package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mujakkirdv/portfolio/internal/nav"
)

//go:embed content.yaml
var defaultContent []byte

// ErrInvalidContent is wrapped by every validation failure of a content file.
var ErrInvalidContent = errors.New("content: invalid content")

// Registry is the read-only table of panels keyed by navigation key.
type Registry struct {
	site    Site
	profile Profile
	panels  map[nav.Key]Panel
}

// Default decodes the content bundled with the binary.
func Default() (*Registry, error) {
	return Load(bytes.NewReader(defaultContent))
}

// LoadFile decodes a content file from disk.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content %s: %w", path, err)
	}
	defer f.Close()
	reg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", path, err)
	}
	return reg, nil
}

// Load decodes and validates a YAML content document.
func Load(r io.Reader) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return doc.registry()
}

// GetBlocks returns the ordered blocks of a panel. It is total over the key set and returns
// a fresh copy on every call.
func (r *Registry) GetBlocks(k nav.Key) []Block {
	return r.Panel(k).Blocks()
}

// Panel returns a copy of the panel for k. Keys without authored content get an empty
// panel headed by the key's label.
func (r *Registry) Panel(k nav.Key) Panel {
	if p, ok := r.panels[k]; ok {
		return p.clone()
	}
	return Panel{Key: k, Heading: k.String()}
}

func (r *Registry) Profile() Profile {
	return r.profile.clone()
}

func (r *Registry) Site() Site {
	return r.site
}

type document struct {
	Site    siteDoc    `yaml:"site"`
	Profile profileDoc `yaml:"profile"`
	Panels  []panelDoc `yaml:"panels"`
}

type siteDoc struct {
	Title       string `yaml:"title"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
}

type linkDoc struct {
	Text string `yaml:"text"`
	URL  string `yaml:"url"`
}

type imageDoc struct {
	Path    string `yaml:"path"`
	Caption string `yaml:"caption"`
}

type profileDoc struct {
	Name    string     `yaml:"name"`
	Address string     `yaml:"address"`
	Email   string     `yaml:"email"`
	Phones  []string   `yaml:"phones"`
	Socials []linkDoc  `yaml:"socials"`
	Images  []imageDoc `yaml:"images"`
	Resume  struct {
		Path         string `yaml:"path"`
		DownloadName string `yaml:"download_name"`
	} `yaml:"resume"`
	Footer string `yaml:"footer"`
}

type panelDoc struct {
	Key      *nav.Key     `yaml:"key"`
	Heading  string       `yaml:"heading"`
	Intro    string       `yaml:"intro"`
	Sections []sectionDoc `yaml:"sections"`
	Metrics  []metricDoc  `yaml:"metrics"`
}

type sectionDoc struct {
	Title   string     `yaml:"title"`
	Columns int        `yaml:"columns"`
	Blocks  []blockDoc `yaml:"blocks"`
}

type blockDoc struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Caption  string `yaml:"caption"`
	Body     string `yaml:"body"`
	Icon     string `yaml:"icon"`
	LinkText string `yaml:"link_text"`
	LinkURL  string `yaml:"link_url"`
	Variant  string `yaml:"variant"`
	Expanded bool   `yaml:"expanded"`
}

type metricDoc struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Help  string `yaml:"help"`
}

func (d document) registry() (*Registry, error) {
	reg := &Registry{
		site: Site{
			Title:       strings.TrimSpace(d.Site.Title),
			Icon:        strings.TrimSpace(d.Site.Icon),
			Description: strings.TrimSpace(d.Site.Description),
		},
		panels: make(map[nav.Key]Panel, len(d.Panels)),
	}

	profile, err := d.Profile.profile()
	if err != nil {
		return nil, err
	}
	reg.profile = profile

	for i, pd := range d.Panels {
		if pd.Key == nil {
			return nil, fmt.Errorf("%w: panel %d has no key", ErrInvalidContent, i)
		}
		key := *pd.Key
		if _, dup := reg.panels[key]; dup {
			return nil, fmt.Errorf("%w: panel %s declared twice", ErrInvalidContent, key)
		}
		p, err := pd.panel(key)
		if err != nil {
			return nil, fmt.Errorf("panel %d (%s): %w", i, key, err)
		}
		reg.panels[key] = p
	}
	return reg, nil
}

func (pd profileDoc) profile() (Profile, error) {
	p := Profile{
		Name:    strings.TrimSpace(pd.Name),
		Address: strings.TrimSpace(pd.Address),
		Email:   strings.TrimSpace(pd.Email),
		Footer:  strings.TrimSpace(pd.Footer),
		Resume: Resume{
			Path:         strings.TrimSpace(pd.Resume.Path),
			DownloadName: strings.TrimSpace(pd.Resume.DownloadName),
		},
	}
	for _, ph := range pd.Phones {
		if ph = strings.TrimSpace(ph); ph != "" {
			p.Phones = append(p.Phones, ph)
		}
	}
	for _, s := range pd.Socials {
		l := NewLink(strings.TrimSpace(s.Text), strings.TrimSpace(s.URL))
		if l == nil {
			return Profile{}, fmt.Errorf("%w: social link needs text and url", ErrInvalidContent)
		}
		if err := checkURL(l.URL); err != nil {
			return Profile{}, err
		}
		p.Socials = append(p.Socials, *l)
	}
	for _, img := range pd.Images {
		if strings.TrimSpace(img.Path) == "" {
			return Profile{}, fmt.Errorf("%w: profile image without path", ErrInvalidContent)
		}
		p.Images = append(p.Images, Image{Path: strings.TrimSpace(img.Path), Caption: strings.TrimSpace(img.Caption)})
	}
	if p.Resume.Path != "" && p.Resume.DownloadName == "" {
		p.Resume.DownloadName = "resume.pdf"
	}
	return p, nil
}

func (pd panelDoc) panel(key nav.Key) (Panel, error) {
	p := Panel{
		Key:     key,
		Heading: strings.TrimSpace(pd.Heading),
		Intro:   pd.Intro,
	}
	if p.Heading == "" {
		p.Heading = key.String()
	}
	for _, sd := range pd.Sections {
		s := Section{Title: strings.TrimSpace(sd.Title), Columns: sd.Columns}
		if s.Columns <= 0 {
			s.Columns = 1
		}
		for _, bd := range sd.Blocks {
			b, err := bd.block()
			if err != nil {
				return Panel{}, err
			}
			s.Blocks = append(s.Blocks, b)
		}
		p.Sections = append(p.Sections, s)
	}
	for _, md := range pd.Metrics {
		p.Metrics = append(p.Metrics, Metric{
			Label: strings.TrimSpace(md.Label),
			Value: strings.TrimSpace(md.Value),
			Help:  strings.TrimSpace(md.Help),
		})
	}
	return p, nil
}

func (bd blockDoc) block() (Block, error) {
	b := Block{
		Title:    strings.TrimSpace(bd.Title),
		Subtitle: strings.TrimSpace(bd.Subtitle),
		Caption:  strings.TrimSpace(bd.Caption),
		Body:     bd.Body,
		Icon:     strings.TrimSpace(bd.Icon),
		Link:     NewLink(strings.TrimSpace(bd.LinkText), strings.TrimSpace(bd.LinkURL)),
		Variant:  Variant(strings.ToLower(strings.TrimSpace(bd.Variant))),
		Expanded: bd.Expanded,
	}
	if b.Variant == "" {
		b.Variant = VariantCard
	}
	if !b.Variant.valid() {
		return Block{}, fmt.Errorf("%w: block %q has unknown variant %q", ErrInvalidContent, b.Title, b.Variant)
	}
	if b.Title == "" {
		return Block{}, fmt.Errorf("%w: block without title", ErrInvalidContent)
	}
	if b.Link != nil {
		if err := checkURL(b.Link.URL); err != nil {
			return Block{}, err
		}
	}
	return b, nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: link %q: %v", ErrInvalidContent, raw, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%w: link %q has no host", ErrInvalidContent, raw)
		}
	case "mailto":
	default:
		return fmt.Errorf("%w: link %q must be http, https or mailto", ErrInvalidContent, raw)
	}
	return nil
}
