package sniff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidates_ExtensionWins(t *testing.T) {
	got := Candidates("revenue.csv", "", "a,b\n1,2")
	assert.Equal(t, FormatCSV, got[0])
	assert.Equal(t, FormatMonospace, got[len(got)-1])
}

func TestCandidates_SQLByContent(t *testing.T) {
	got := Best("dump", "", "  insert into t (a) values (1);")
	assert.Equal(t, FormatSQL, got)

	got = Best("query", "", "SELECT * FROM users")
	assert.Equal(t, FormatSQL, got)
}

func TestCandidates_MarkdownBeforeJSON(t *testing.T) {
	// A .md file whose body happens to open with a brace stays markdown.
	got := Candidates("memo.md", "text/plain", "{not actually json")
	assert.Equal(t, FormatMarkdown, got[0])
}

func TestCandidates_JSONSniffIsLastPositiveCheck(t *testing.T) {
	got := Candidates("blob", "", `{"rows": []}`)
	assert.Equal(t, []Format{FormatJSON, FormatMonospace}, got)

	got = Candidates("blob", "", `[1, 2, 3]`)
	assert.Equal(t, FormatJSON, got[0])
}

func TestCandidates_TerminalFallbackAlwaysPresent(t *testing.T) {
	got := Candidates("", "", "no signal at all")
	assert.Equal(t, []Format{FormatMonospace}, got)
}

func TestCandidates_MimeParametersIgnored(t *testing.T) {
	got := Best("export", "text/csv; charset=utf-8", "")
	assert.Equal(t, FormatCSV, got)
}

func TestCandidates_Deterministic(t *testing.T) {
	a := Candidates("data.sql", "text/plain", "INSERT INTO t VALUES (1)")
	b := Candidates("data.sql", "text/plain", "INSERT INTO t VALUES (1)")
	assert.Equal(t, a, b)
}
