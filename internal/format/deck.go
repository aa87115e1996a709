package format

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var deckFrontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n(.*)`)

// Deck is a parsed slide deck: markdown slides separated by --- lines, with
// optional YAML frontmatter.
type Deck struct {
	Slides         []string       `json:"slides"`
	Meta           map[string]any `json:"meta,omitempty"`
	HasFrontmatter bool           `json:"has_frontmatter"`
	HasSeparators  bool           `json:"has_separators"`
}

// NonStandard reports whether the content showed neither of the two deck
// markers. Such content still renders (as a single slide) but carries a
// "non-standard format" warning.
func (d *Deck) NonStandard() bool {
	return !d.HasFrontmatter && !d.HasSeparators
}

// ParseDeck splits raw into slides. A leading ---\n...\n--- block is parsed
// as YAML frontmatter; the remaining body splits on bare --- separator
// lines. When no separators are found, the whole trimmed document is one
// slide. ParseDeck is total: it never returns nil.
func ParseDeck(raw string) *Deck {
	deck := &Deck{}
	body := raw

	if m := deckFrontmatterPattern.FindStringSubmatch(raw); len(m) == 3 {
		deck.HasFrontmatter = true
		body = m[2]
		var meta map[string]any
		if err := yaml.Unmarshal([]byte(m[1]), &meta); err == nil {
			deck.Meta = meta
		}
	}

	parts := strings.Split(body, "\n---\n")
	deck.HasSeparators = len(parts) > 1

	for _, part := range parts {
		slide := strings.TrimSpace(part)
		if slide != "" {
			deck.Slides = append(deck.Slides, slide)
		}
	}
	if len(deck.Slides) == 0 {
		deck.Slides = []string{strings.TrimSpace(body)}
	}
	return deck
}
