package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_QuotedFieldWithComma(t *testing.T) {
	table := ParseCSV("Name,Revenue\n\"Acme, Inc.\",100\nBeta,200")
	require.NotNil(t, table)

	assert.Equal(t, []string{"Name", "Revenue"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Acme, Inc.", "100"}, table.Rows[0])
	assert.Equal(t, []string{"Beta", "200"}, table.Rows[1])
}

func TestParseCSV_EscapedQuotes(t *testing.T) {
	table := ParseCSV("quote\n\"she said \"\"hi\"\"\"")
	require.NotNil(t, table)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, `she said "hi"`, table.Rows[0][0])
}

func TestParseCSV_FieldCountMatchesHeaders(t *testing.T) {
	raw := "a,b,c\n1,2,3\n\"x,y\",5,6\n7,8,9"
	table := ParseCSV(raw)
	require.NotNil(t, table)

	assert.Len(t, table.Rows, 3) // lines - 1
	for _, row := range table.Rows {
		assert.Len(t, row, len(table.Headers))
	}
}

func TestParseCSV_QuotedNewline(t *testing.T) {
	table := ParseCSV("note\n\"line one\nline two\"")
	require.NotNil(t, table)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "line one\nline two", table.Rows[0][0])
}

func TestParseCSV_BlankLinesSkipped(t *testing.T) {
	table := ParseCSV("a,b\n\n1,2\n   \n")
	require.NotNil(t, table)
	assert.Len(t, table.Rows, 1)
}

func TestParseCSV_EmptyInput(t *testing.T) {
	assert.Nil(t, ParseCSV(""))
	assert.Nil(t, ParseCSV("\n\n  \n"))
}
