// Package content holds the authored portfolio data: the panels shown for each navigation
// key, the profile used by the sidebar and footer, and the page metadata.
//
// The data is decoded once from YAML and is read-only afterwards.
package content

import "github.com/mujakkirdv/portfolio/internal/nav"

// Variant selects how a block is framed when rendered.
type Variant string

const (
	// VariantCard is a bordered card with an optional link button.
	VariantCard Variant = "card"
	// VariantExpander is a collapsible entry; Expanded opens it by default.
	VariantExpander Variant = "expander"
	// VariantQuote is a testimonial quote attributed to Subtitle.
	VariantQuote Variant = "quote"
	// VariantText is a plain heading with a markdown body and no frame.
	VariantText Variant = "text"
)

func (v Variant) valid() bool {
	switch v {
	case VariantCard, VariantExpander, VariantQuote, VariantText:
		return true
	}
	return false
}

// Link is an outbound link. A Link value always has both fields set.
type Link struct {
	Text string
	URL  string
}

// NewLink returns a link only when both text and URL are non-empty.
func NewLink(text, url string) *Link {
	if text == "" || url == "" {
		return nil
	}
	return &Link{Text: text, URL: url}
}

// Block is one renderable unit of a panel.
type Block struct {
	Title    string
	Subtitle string
	// Caption is the date range or issuer line under the title.
	Caption  string
	Body     string // markdown
	Icon     string
	Link     *Link
	Variant  Variant
	Expanded bool
}

func (b Block) clone() Block {
	if b.Link != nil {
		l := *b.Link
		b.Link = &l
	}
	return b
}

// Section groups blocks laid out in a fixed number of columns.
type Section struct {
	Title   string
	Columns int
	Blocks  []Block
}

// Metric is a headline counter shown on the home panel.
type Metric struct {
	Label string
	Value string
	Help  string
}

// Panel is everything shown for one navigation key.
type Panel struct {
	Key      nav.Key
	Heading  string
	Intro    string // markdown
	Sections []Section
	Metrics  []Metric
}

// Blocks flattens the panel's sections in order.
func (p Panel) Blocks() []Block {
	var n int
	for _, s := range p.Sections {
		n += len(s.Blocks)
	}
	out := make([]Block, 0, n)
	for _, s := range p.Sections {
		for _, b := range s.Blocks {
			out = append(out, b.clone())
		}
	}
	return out
}

func (p Panel) clone() Panel {
	cp := p
	cp.Sections = make([]Section, len(p.Sections))
	for i, s := range p.Sections {
		blocks := make([]Block, len(s.Blocks))
		for j, b := range s.Blocks {
			blocks[j] = b.clone()
		}
		s.Blocks = blocks
		cp.Sections[i] = s
	}
	cp.Metrics = append([]Metric(nil), p.Metrics...)
	return cp
}

// Image is an optional profile picture resolved under the asset root.
type Image struct {
	Path    string
	Caption string
}

// Resume is the optional downloadable resume document.
type Resume struct {
	Path         string
	DownloadName string
}

// Profile is the owner's contact card, social links and personal assets.
type Profile struct {
	Name    string
	Address string
	Email   string
	Phones  []string
	Socials []Link
	Images  []Image
	Resume  Resume
	Footer  string
}

func (p Profile) clone() Profile {
	cp := p
	cp.Phones = append([]string(nil), p.Phones...)
	cp.Socials = append([]Link(nil), p.Socials...)
	cp.Images = append([]Image(nil), p.Images...)
	return cp
}

// Site is the page-level metadata.
type Site struct {
	Title       string
	Icon        string
	Description string
}
