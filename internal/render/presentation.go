// Package render maps a classified asset to a presentation tree, with an
// explicit fallback ladder for unknown or mismatched type tags and a
// containment boundary so one malformed asset cannot take down the rest of
// the list.
package render

import "asset-service/internal/format"

// Kind discriminates the presentation selected for an asset.
type Kind string

const (
	KindTable     Kind = "table"
	KindRecords   Kind = "records"
	KindOrgChart  Kind = "org_chart"
	KindChart     Kind = "chart"
	KindSlides    Kind = "slides"
	KindMarkdown  Kind = "markdown"
	KindMonospace Kind = "monospace"
	KindError     Kind = "error"
)

// Fault codes carried by KindError trees. Empty content is a data-integrity
// defect upstream of us; a render fault is our own presentation code
// breaking. The two must stay distinguishable from a mere parse fallback,
// which is never an error tree at all.
const (
	FaultEmptyContent = "empty-content"
	FaultRender       = "render-fault"
)

// NoticeLevel grades how loudly a notice should be surfaced.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a soft, non-blocking annotation on a rendered tree, e.g.
// "unable to parse as org chart, showing as plain text".
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Tree is the language-neutral presentation of one asset: exactly one
// payload matching Kind, plus any notices accumulated on the way there.
type Tree struct {
	Kind Kind `json:"kind"`

	Table    *format.Table      `json:"table,omitempty"`
	Profiles []format.Profile   `json:"profiles,omitempty"`
	Org      []format.OrgNode   `json:"org,omitempty"`
	Series   *format.TimeSeries `json:"series,omitempty"`
	Deck     *format.Deck       `json:"deck,omitempty"`

	// Text carries markdown or monospace bodies, or the error summary for
	// KindError trees.
	Text string `json:"text,omitempty"`

	// Fault and Detail are set only on KindError trees. Detail is populated
	// only when verbose diagnostics are enabled.
	Fault  string `json:"fault,omitempty"`
	Detail string `json:"detail,omitempty"`

	Notices []Notice `json:"notices,omitempty"`
}

func (t *Tree) notice(level NoticeLevel, message string) *Tree {
	t.Notices = append(t.Notices, Notice{Level: level, Message: message})
	return t
}

func monospaceTree(content string) *Tree {
	return &Tree{Kind: KindMonospace, Text: content}
}

func markdownTree(content string) *Tree {
	return &Tree{Kind: KindMarkdown, Text: content}
}

func emptyContentTree() *Tree {
	return &Tree{
		Kind:  KindError,
		Fault: FaultEmptyContent,
		Text:  "asset has no content to display",
	}
}
