package format

import (
	"encoding/json"
	"strings"
)

// Chart presentation selected for a parsed time series.
const (
	ChartLine = "line"
	ChartBars = "bars"
)

// timeAxisVocabulary lists the keys recognized as a time axis, checked in
// the order the first data point declares its keys.
var timeAxisVocabulary = map[string]bool{
	"date":      true,
	"period":    true,
	"month":     true,
	"quarter":   true,
	"year":      true,
	"time":      true,
	"timestamp": true,
}

// TimeSeries is a parsed plottable dataset: one time axis plus one or more
// numeric series.
type TimeSeries struct {
	TimeKey    string           `json:"time_key"`
	SeriesKeys []string         `json:"series_keys"`
	Points     []map[string]any `json:"points"`
	Chart      string           `json:"chart"`
}

// ParseTimeSeries locates the first array-valued field among data, values,
// and series (or accepts a bare array), identifies the time axis as the
// first key matching a fixed vocabulary, and treats every other
// numeric-valued key as a plotted series. A single numeric series selects a
// line presentation, anything else multi-bar. ok is false when no plottable
// structure is found.
func ParseTimeSeries(raw string) (*TimeSeries, bool) {
	trimmed := strings.TrimSpace(raw)

	var items []json.RawMessage
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, false
		}
	} else {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
			return nil, false
		}
		for _, key := range []string{"data", "values", "series"} {
			rawList, found := envelope[key]
			if !found {
				continue
			}
			if err := json.Unmarshal(rawList, &items); err == nil {
				break
			}
			items = nil
		}
	}
	if len(items) == 0 {
		return nil, false
	}

	points := make([]map[string]any, 0, len(items))
	for _, item := range items {
		var p map[string]any
		if err := json.Unmarshal(item, &p); err != nil {
			return nil, false
		}
		points = append(points, p)
	}

	keys := orderedKeys(items[0])
	first := points[0]

	var timeKey string
	for _, k := range keys {
		if timeAxisVocabulary[strings.ToLower(k)] {
			timeKey = k
			break
		}
	}
	if timeKey == "" {
		return nil, false
	}

	var seriesKeys []string
	for _, k := range keys {
		if k == timeKey {
			continue
		}
		if _, isNum := first[k].(float64); isNum {
			seriesKeys = append(seriesKeys, k)
		}
	}
	if len(seriesKeys) == 0 {
		return nil, false
	}

	chart := ChartBars
	if len(seriesKeys) == 1 {
		chart = ChartLine
	}
	return &TimeSeries{
		TimeKey:    timeKey,
		SeriesKeys: seriesKeys,
		Points:     points,
		Chart:      chart,
	}, true
}
