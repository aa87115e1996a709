// Package format holds one parser per concrete content format. Every parser
// is a total, side-effect-free function: raw string in, structured data or a
// "not this format" signal out. Parsers never panic and never return errors;
// the render dispatcher treats a nil result as "fall through to the next
// candidate".
package format

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Table is a parsed rectangular dataset: one header row plus data rows.
type Table struct {
	Headers []string          `json:"headers"`
	Rows    [][]string        `json:"rows"`
	Units   map[string]string `json:"units,omitempty"`
}

// Empty reports whether the table carries no data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// FormatCell renders a single cell value honoring the column's declared unit.
// Currency units scale large magnitudes to $K/$M/$B; percent units append the
// suffix. Unknown units pass the value through untouched.
func FormatCell(value, unit string) string {
	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "":
		return value
	case "%", "PERCENT", "PCT":
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			return value + "%"
		}
		return value
	case "$", "USD", "CURRENCY":
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return value
		}
		return formatCurrency(n)
	default:
		return value
	}
}

func formatCurrency(n float64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	scaled, suffix := n, ""
	switch {
	case abs >= 1e9:
		scaled, suffix = n/1e9, "B"
	case abs >= 1e6:
		scaled, suffix = n/1e6, "M"
	case abs >= 1e3:
		scaled, suffix = n/1e3, "K"
	default:
		return "$" + trimZeros(fmt.Sprintf("%.2f", n))
	}
	return "$" + trimZeros(fmt.Sprintf("%.1f", scaled)) + suffix
}

func trimZeros(s string) string {
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// cellString renders an arbitrary decoded JSON value as a table cell.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(b)
	}
}

// orderedKeys extracts the keys of the first JSON object in raw in document
// order. encoding/json maps lose key order, which matters because derived
// table headers should match the order the generator emitted.
func orderedKeys(raw []byte) []string {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return keys
		}
	}
	return keys
}

func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	if d == '{' || d == '[' {
		depth := 1
		for depth > 0 {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			if d, ok := tok.(json.Delim); ok {
				switch d {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
				}
			}
		}
	}
	return nil
}
