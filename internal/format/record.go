package format

import (
	"encoding/json"
	"strings"
)

// jsonEnvelope is the loose shape a generic JSON dataset may arrive in.
type jsonEnvelope struct {
	Data  json.RawMessage   `json:"data"`
	Rows  json.RawMessage   `json:"rows"`
	Units map[string]string `json:"units"`
}

// ParseRecordTable turns generic JSON records into a table. Accepted shapes:
// a bare array of objects, an object whose data or rows field is such an
// array, or an object whose data field is itself a CSV string (a CSV payload
// nested inside a JSON envelope), which is handed back to ParseCSV. Headers
// come from the first record's keys in document order. Returns nil when raw
// is not valid JSON or no records can be located.
func ParseRecordTable(raw string) *Table {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	var units map[string]string
	records := json.RawMessage(trimmed)

	if strings.HasPrefix(trimmed, "{") {
		var env jsonEnvelope
		if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
			return nil
		}
		units = env.Units
		switch {
		case len(env.Data) > 0:
			// A CSV string nested inside the envelope.
			var nested string
			if err := json.Unmarshal(env.Data, &nested); err == nil {
				t := ParseCSV(nested)
				if t != nil {
					t.Units = units
				}
				return t
			}
			records = env.Data
		case len(env.Rows) > 0:
			records = env.Rows
		default:
			return nil
		}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(records, &items); err != nil {
		return nil
	}
	if len(items) == 0 {
		return &Table{Headers: nil, Rows: nil, Units: units}
	}

	headers := orderedKeys(items[0])
	if headers == nil {
		// Rows of scalars rather than objects.
		rows := make([][]string, 0, len(items))
		for _, item := range items {
			var v any
			if err := json.Unmarshal(item, &v); err != nil {
				return nil
			}
			rows = append(rows, []string{cellString(v)})
		}
		return &Table{Headers: []string{"value"}, Rows: rows, Units: units}
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil
		}
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = cellString(obj[h])
		}
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows, Units: units}
}
