package format

import (
	"regexp"
	"strings"
)

var insertPattern = regexp.MustCompile(
	`(?is)INSERT\s+INTO\s+[\w."\x60]+\s*\(([^)]+)\)\s*VALUES\s*`)

// ParseSQLInserts extracts tabular data from INSERT INTO statements. Column
// names come from the first statement's column list; every VALUES tuple in
// every statement becomes one row. NULL tokens become empty cells and string
// literals lose their surrounding quotes. Returns nil when no INSERT
// statements are present: a bare SELECT yields nil, this parser does not
// execute queries.
func ParseSQLInserts(raw string) *Table {
	matches := insertPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return nil
	}

	var headers []string
	var rows [][]string
	for _, m := range matches {
		cols := splitSQLList(raw[m[2]:m[3]])
		if headers == nil {
			headers = make([]string, len(cols))
			for i, c := range cols {
				headers[i] = strings.Trim(c, "`\"")
			}
		}
		for _, tuple := range scanValueTuples(raw[m[1]:]) {
			row := make([]string, 0, len(tuple))
			for _, v := range tuple {
				row = append(row, normalizeSQLValue(v))
			}
			rows = append(rows, row)
		}
	}
	if headers == nil {
		return nil
	}
	return &Table{Headers: headers, Rows: rows}
}

// scanValueTuples reads parenthesized tuples following a VALUES keyword,
// stopping at the statement terminator or at anything that is not another
// tuple. Single-quoted literals may contain commas, parens, and doubled
// quotes.
func scanValueTuples(s string) [][]string {
	var tuples [][]string
	i := 0
	for {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' || s[i] == ',') {
			i++
		}
		if i >= len(s) || s[i] != '(' {
			return tuples
		}
		i++
		start := i
		inQuotes := false
		depth := 0
		for i < len(s) {
			c := s[i]
			if inQuotes {
				if c == '\'' {
					if i+1 < len(s) && s[i+1] == '\'' {
						i++
					} else {
						inQuotes = false
					}
				}
			} else {
				switch c {
				case '\'':
					inQuotes = true
				case '(':
					depth++
				case ')':
					if depth == 0 {
						tuples = append(tuples, splitSQLList(s[start:i]))
						i++
						goto next
					}
					depth--
				case ';':
					return tuples
				}
			}
			i++
		}
		return tuples
	next:
	}
}

// splitSQLList splits a comma-separated SQL list, respecting single-quoted
// literals.
func splitSQLList(s string) []string {
	var parts []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			if inQuotes && i+1 < len(s) && s[i+1] == '\'' {
				cur.WriteByte('\'')
				cur.WriteByte('\'')
				i++
				continue
			}
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ',' && !inQuotes:
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, strings.TrimSpace(cur.String()))
	return parts
}

// normalizeSQLValue strips literal quoting and maps NULL to an empty cell.
func normalizeSQLValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "NULL") {
		return ""
	}
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return strings.ReplaceAll(v[1:len(v)-1], "''", "'")
	}
	return strings.Trim(v, "\"")
}
