package sniff

import (
	"path/filepath"
	"strings"
)

// Format is one concrete content interpretation a sample can be read as.
type Format string

const (
	FormatCSV       Format = "csv"
	FormatSQL       Format = "sql"
	FormatMarkdown  Format = "markdown"
	FormatJSON      Format = "json"
	FormatMonospace Format = "monospace"
)

// rule is one rung of the sniffing ladder: a predicate over the observed
// signals paired with the format it vouches for. Rules are evaluated in
// declaration order, most specific signal first; JSON sniffing is last among
// the positive checks because a SQL or CSV fragment can coincidentally open
// with a brace inside a string literal, whereas extension and MIME signals
// are higher confidence.
type rule struct {
	format Format
	match  func(ext, mimeType, sample string) bool
}

var ladder = []rule{
	{FormatCSV, func(ext, mimeType, _ string) bool {
		return ext == ".csv" || mimeType == "text/csv"
	}},
	{FormatSQL, func(ext, mimeType, sample string) bool {
		if ext == ".sql" || mimeType == "application/sql" {
			return true
		}
		upper := strings.ToUpper(strings.TrimSpace(sample))
		return strings.HasPrefix(upper, "SELECT") ||
			strings.HasPrefix(upper, "INSERT") ||
			strings.HasPrefix(upper, "CREATE")
	}},
	{FormatMarkdown, func(ext, mimeType, _ string) bool {
		switch ext {
		case ".md", ".markdown", ".txt":
			return true
		}
		return mimeType == "text/plain" || mimeType == "text/markdown"
	}},
	{FormatJSON, func(ext, mimeType, sample string) bool {
		if ext == ".json" || mimeType == "application/json" {
			return true
		}
		trimmed := strings.TrimSpace(sample)
		return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
	}},
}

// Candidates returns the ranked set of interpretations for the given signals.
// It never fails: the monospace terminal fallback is always the final entry,
// so callers can walk the slice and stop at the first parser that succeeds.
// Sniffing is stateless; the same inputs always yield the same ranking.
func Candidates(fileName, mimeType, contentSample string) []Format {
	ext := strings.ToLower(filepath.Ext(fileName))
	mime := normalizeMime(mimeType)

	out := make([]Format, 0, len(ladder)+1)
	for _, r := range ladder {
		if r.match(ext, mime, contentSample) {
			out = append(out, r.format)
		}
	}
	return append(out, FormatMonospace)
}

// Best returns the single highest-confidence interpretation.
func Best(fileName, mimeType, contentSample string) Format {
	return Candidates(fileName, mimeType, contentSample)[0]
}

func normalizeMime(mimeType string) string {
	// Strip parameters such as "; charset=utf-8".
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
