package format

import "strings"

// ParseCSV scans raw as comma-separated values with double-quoted fields.
// Fields are split only on unquoted commas; a doubled quote inside a quoted
// field ("") is an escaped literal quote; quoted fields may span newlines.
// The first non-blank line is the header row. Returns nil when the input has
// zero non-blank lines.
//
// encoding/csv is deliberately not used here: it fails hard on ragged rows
// and stray quotes, and a parser in this set must be total.
func ParseCSV(raw string) *Table {
	lines := splitCSVRecords(raw)
	if len(lines) == 0 {
		return nil
	}

	headers := splitCSVFields(lines[0])
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, splitCSVFields(line))
	}
	return &Table{Headers: headers, Rows: rows}
}

// splitCSVRecords splits raw into records on unquoted newlines, dropping
// blank records.
func splitCSVRecords(raw string) []string {
	var records []string
	var cur strings.Builder
	inQuotes := false

	flush := func() {
		rec := strings.TrimRight(cur.String(), "\r")
		if strings.TrimSpace(rec) != "" {
			records = append(records, rec)
		}
		cur.Reset()
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == '\n' && !inQuotes:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return records
}

// splitCSVFields splits one record into fields on unquoted commas.
func splitCSVFields(record string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(record); i++ {
		c := record[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(record) && record[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}
