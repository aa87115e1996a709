package render

import (
	"fmt"
	"strings"

	"asset-service/internal/asset"
	"asset-service/internal/format"
	"asset-service/internal/sniff"
	"asset-service/pkg/metrics"
)

// Dispatcher maps a canonical type tag to a parser/presentation pair,
// delegating to the sniffing ladder when the tag is absent, generic, or
// contradicted by the content. Dispatch is stateless and deterministic.
type Dispatcher struct {
	deckCompiler bool
}

// NewDispatcher builds a dispatcher. deckCompiler selects the full slide
// presentation for PRESENTATION_DECK assets; when disabled, or when the
// content lacks both frontmatter and separators, decks degrade to markdown.
func NewDispatcher(deckCompiler bool) *Dispatcher {
	return &Dispatcher{deckCompiler: deckCompiler}
}

// Render classifies and parses content into a presentation tree. It never
// returns nil and never panics on any input: every failure path ends in a
// fallback presentation or an explicit error tree.
func (d *Dispatcher) Render(fileType asset.FileType, fileName, mimeType, content string) *Tree {
	if strings.TrimSpace(content) == "" {
		return emptyContentTree()
	}

	switch fileType {
	case asset.TypeOrgChart:
		return d.renderOrgChart(fileName, mimeType, content)
	case asset.TypeStakeholderProfiles:
		return d.renderStakeholders(fileName, mimeType, content)
	case asset.TypeMarketDataset:
		return d.renderMarketDataset(fileName, mimeType, content)
	case asset.TypeFinancialData:
		return d.renderFinancialData(fileName, mimeType, content)
	case asset.TypePresentationDeck:
		return d.renderDeck(content)
	case asset.TypeSQLDump:
		if t := format.ParseSQLInserts(content); t != nil {
			return &Tree{Kind: KindTable, Table: t}
		}
		return d.sniffAndRender(fileName, mimeType, content).
			notice(NoticeInfo, fallbackNotice("SQL"))
	case asset.TypeMarkdownDoc:
		return markdownTree(content)
	}

	return d.sniffAndRender(fileName, mimeType, content)
}

func (d *Dispatcher) renderOrgChart(fileName, mimeType, content string) *Tree {
	nodes, ok := format.ParseOrgChart(content)
	switch {
	case ok && len(nodes) > 0:
		return &Tree{Kind: KindOrgChart, Org: nodes}
	case ok:
		// Parsed, but nothing chart-shaped: show whatever records exist
		// rather than a blank pane.
		return d.recordTableFallback(fileName, mimeType, content, "org chart")
	default:
		return d.sniffAndRender(fileName, mimeType, content).
			notice(NoticeInfo, fallbackNotice("org chart"))
	}
}

func (d *Dispatcher) renderStakeholders(fileName, mimeType, content string) *Tree {
	profiles, ok := format.ParseStakeholders(content)
	switch {
	case ok && len(profiles) > 0:
		return &Tree{Kind: KindRecords, Profiles: profiles}
	case ok:
		return d.recordTableFallback(fileName, mimeType, content, "stakeholder profiles")
	default:
		return d.sniffAndRender(fileName, mimeType, content).
			notice(NoticeInfo, fallbackNotice("stakeholder profiles"))
	}
}

func (d *Dispatcher) renderMarketDataset(fileName, mimeType, content string) *Tree {
	if ts, ok := format.ParseTimeSeries(content); ok {
		return &Tree{Kind: KindChart, Series: ts}
	}
	return d.recordTableFallback(fileName, mimeType, content, "time series")
}

func (d *Dispatcher) renderFinancialData(fileName, mimeType, content string) *Tree {
	if t := format.ParseCSV(content); t != nil && len(t.Headers) > 1 {
		return &Tree{Kind: KindTable, Table: t}
	}
	if t := format.ParseRecordTable(content); !t.Empty() {
		return &Tree{Kind: KindTable, Table: t}
	}
	return d.sniffAndRender(fileName, mimeType, content).
		notice(NoticeInfo, fallbackNotice("financial data"))
}

func (d *Dispatcher) renderDeck(content string) *Tree {
	deck := format.ParseDeck(content)

	tree := markdownTree(content)
	if d.deckCompiler && !deck.NonStandard() {
		tree = &Tree{Kind: KindSlides, Deck: deck}
	}
	if deck.NonStandard() {
		tree.notice(NoticeWarning, "non-standard slide format: no frontmatter or slide separators found")
	}
	return tree
}

// recordTableFallback is the "parsed, but nothing to show" path: the generic
// record table is offered before dropping to the terminal monospace view.
func (d *Dispatcher) recordTableFallback(fileName, mimeType, content, wanted string) *Tree {
	if t := format.ParseRecordTable(content); !t.Empty() {
		return (&Tree{Kind: KindTable, Table: t}).
			notice(NoticeInfo, fmt.Sprintf("no %s structure found, showing raw records", wanted))
	}
	return d.sniffAndRender(fileName, mimeType, content).
		notice(NoticeInfo, fallbackNotice(wanted))
}

// sniffAndRender walks the sniffing ladder, trying each candidate's parser
// and terminating at the monospace fallback.
func (d *Dispatcher) sniffAndRender(fileName, mimeType, content string) *Tree {
	for _, candidate := range sniff.Candidates(fileName, mimeType, content) {
		switch candidate {
		case sniff.FormatCSV:
			if t := format.ParseCSV(content); t != nil && len(t.Headers) > 1 {
				return &Tree{Kind: KindTable, Table: t}
			}
		case sniff.FormatSQL:
			if t := format.ParseSQLInserts(content); t != nil {
				return &Tree{Kind: KindTable, Table: t}
			}
		case sniff.FormatMarkdown:
			return markdownTree(content)
		case sniff.FormatJSON:
			// No recovery transforms here: content claiming to be JSON but
			// failing to parse lands on the monospace terminal fallback.
			if t := format.ParseRecordTable(content); !t.Empty() {
				return &Tree{Kind: KindTable, Table: t}
			}
		case sniff.FormatMonospace:
			return monospaceTree(content)
		}
	}
	return monospaceTree(content)
}

func fallbackNotice(wanted string) string {
	metrics.CountParseFallback()
	return fmt.Sprintf("unable to parse as %s, showing as plain text", wanted)
}
