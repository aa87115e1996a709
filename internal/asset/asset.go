package asset

import "strings"

// FileType is the canonical type tag assigned by the generation service.
// It is trusted first but never blindly: the render dispatcher falls back to
// content sniffing when the tag is absent, generic, or contradicted by the
// observed content.
type FileType string

const (
	TypeUnclassified        FileType = ""
	TypeOrgChart            FileType = "ORG_CHART"
	TypeStakeholderProfiles FileType = "STAKEHOLDER_PROFILES"
	TypeMarketDataset       FileType = "MARKET_DATASET"
	TypeFinancialData       FileType = "FINANCIAL_DATA"
	TypePresentationDeck    FileType = "PRESENTATION_DECK"
	TypeSQLDump             FileType = "SQL_DUMP"
	TypeMarkdownDoc         FileType = "MARKDOWN_DOC"
	TypeText                FileType = "TEXT"
)

// TruncationSentinel is embedded in a preview body by the upstream service
// when the preview was cut short of the full content.
const TruncationSentinel = "\n...[truncated]"

// Asset is one named, typed, generated content unit belonging to a case.
type Asset struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`

	FileType   FileType `json:"fileType"`
	SourceType string   `json:"sourceType,omitempty"`
	MimeType   string   `json:"mimeType,omitempty"`

	Exists        bool   `json:"exists"`
	FilePath      string `json:"filePath,omitempty"`
	FileSize      int64  `json:"fileSize,omitempty"`
	CanRegenerate bool   `json:"canRegenerate"`

	// Preview is a cheap, possibly truncated copy of the body fetched with
	// the asset list. Never authoritative for JSON-shaped assets.
	Preview   string `json:"preview,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`

	ValidationErrors []string `json:"validationErrors,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
}

// PreviewTruncated reports whether the preview cannot be trusted to be the
// full body, either via the explicit flag or the embedded sentinel.
func (a *Asset) PreviewTruncated() bool {
	return a.Truncated || strings.Contains(a.Preview, TruncationSentinel)
}

// JSONShaped reports whether content of the given type must be parsed only
// from a full fetch. Truncation corrupts JSON syntax, so a truncated preview
// of any of these is unusable.
func JSONShaped(fileType FileType, content string) bool {
	switch fileType {
	case TypeOrgChart, TypeStakeholderProfiles, TypeMarketDataset:
		return true
	}
	trimmed := strings.TrimSpace(content)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// Canonical reports whether t is one of the known generation-time tags.
func (t FileType) Canonical() bool {
	switch t {
	case TypeOrgChart, TypeStakeholderProfiles, TypeMarketDataset,
		TypeFinancialData, TypePresentationDeck, TypeSQLDump,
		TypeMarkdownDoc, TypeText:
		return true
	}
	return false
}

// Generic reports whether t carries no format signal beyond "some text".
func (t FileType) Generic() bool {
	return t == TypeUnclassified || t == TypeText
}
