// Package nav defines the fixed set of portfolio panels and the sidebar selection state.
package nav

import (
	"strconv"
	"strings"
)

// Key identifies one content panel.
type Key int

const (
	Home Key = iota
	Projects
	Services
	Skills
	Experience
	Education
	Testimonials
	Contact
)

type keyInfo struct {
	label string
	slug  string
	icon  string
}

var keys = [...]keyInfo{
	Home:         {label: "Home", slug: "home", icon: "🏠"},
	Projects:     {label: "Projects", slug: "projects", icon: "📊"},
	Services:     {label: "Services", slug: "services", icon: "🛠️"},
	Skills:       {label: "Skills", slug: "skills", icon: "⚡"},
	Experience:   {label: "Experience", slug: "experience", icon: "💼"},
	Education:    {label: "Education", slug: "education", icon: "🎓"},
	Testimonials: {label: "Testimonials", slug: "testimonials", icon: "⭐"},
	Contact:      {label: "Contact", slug: "contact", icon: "📬"},
}

// Keys returns every panel key in sidebar order.
func Keys() []Key {
	out := make([]Key, len(keys))
	for i := range keys {
		out[i] = Key(i)
	}
	return out
}

// Valid reports whether k belongs to the fixed key set.
func (k Key) Valid() bool {
	return k >= 0 && int(k) < len(keys)
}

func (k Key) String() string {
	if !k.Valid() {
		return "Key(" + strconv.Itoa(int(k)) + ")"
	}
	return keys[k].label
}

// Slug is the URL path segment of the panel.
func (k Key) Slug() string {
	if !k.Valid() {
		return ""
	}
	return keys[k].slug
}

func (k Key) Icon() string {
	if !k.Valid() {
		return ""
	}
	return keys[k].icon
}

// Href is the page URL for the panel. Home lives at the root.
func (k Key) Href() string {
	if k == Home {
		return "/"
	}
	return "/" + k.Slug()
}

// Parse maps a slug or label to its key, ignoring case and surrounding slashes.
// An empty value selects Home.
func Parse(s string) (Key, bool) {
	s = strings.ToLower(strings.Trim(strings.TrimSpace(s), "/"))
	if s == "" {
		return Home, true
	}
	for i, info := range keys {
		if s == info.slug {
			return Key(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the key as its slug so it can be used in data files.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.Slug()), nil
}

// UnmarshalText accepts a slug or label.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok || strings.TrimSpace(string(text)) == "" {
		return &UnknownKeyError{Value: string(text)}
	}
	*k = parsed
	return nil
}

// UnknownKeyError reports a value outside the fixed key set.
type UnknownKeyError struct {
	Value string
}

func (e *UnknownKeyError) Error() string {
	return "nav: unknown panel " + strings.TrimSpace(e.Value)
}

// State is the current sidebar selection. The zero value selects Home.
type State struct {
	active Key
}

// NewState returns a state with Home selected.
func NewState() State {
	return State{active: Home}
}

// Active returns the selected key.
func (s State) Active() Key {
	return s.active
}

// Select makes k the active panel. Keys come from the fixed set; the sidebar cannot
// produce anything else.
func (s *State) Select(k Key) Key {
	s.active = k
	return s.active
}

// Item is a rendered sidebar entry.
type Item struct {
	Key    Key
	Label  string
	Icon   string
	Href   string
	Active bool
}

// Build renders the sidebar entries with the active flag set for the current selection.
func Build(s State) []Item {
	items := make([]Item, 0, len(keys))
	for _, k := range Keys() {
		items = append(items, Item{
			Key:    k,
			Label:  k.String(),
			Icon:   k.Icon(),
			Href:   k.Href(),
			Active: k == s.active,
		})
	}
	return items
}
