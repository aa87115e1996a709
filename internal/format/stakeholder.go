package format

import (
	"encoding/json"
	"strings"
)

// Profile is one stakeholder record. Generated profiles vary wildly in
// schema, so the full key/value set is preserved and common identity fields
// are surfaced through accessors.
type Profile map[string]any

func (p Profile) str(keys ...string) string {
	for _, k := range keys {
		if v, ok := p[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Name returns the best available display name for the profile.
func (p Profile) Name() string {
	return p.str("name", "title", "stakeholder", "fullName")
}

// Role returns the profile's role or position, if present.
func (p Profile) Role() string {
	return p.str("role", "position", "title")
}

// ParseStakeholders extracts stakeholder profiles from permissively shaped
// JSON, running the recovery pipeline (fence stripping, quote unwrapping,
// jsonrepair) when the content does not parse as-is. Accepted shapes: a bare
// array, {"stakeholders":[...]}, {"profiles":[...]}, {"people":[...]}, or a
// single profile object, which is wrapped as a one-element list. ok is false
// when even the recovered content is not valid JSON.
func ParseStakeholders(raw string) (profiles []Profile, ok bool) {
	cleaned, _, ok := RecoverJSON(raw)
	if !ok {
		return nil, false
	}
	trimmed := strings.TrimSpace(cleaned)

	if strings.HasPrefix(trimmed, "[") {
		var list []Profile
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, false
		}
		if list == nil {
			list = []Profile{}
		}
		return list, true
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return nil, false
	}
	for _, key := range []string{"stakeholders", "profiles", "people"} {
		rawList, found := envelope[key]
		if !found {
			continue
		}
		var list []Profile
		if err := json.Unmarshal(rawList, &list); err == nil {
			return list, true
		}
	}

	// An object without title/summary keys is treated as a single profile.
	var single Profile
	if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
		return nil, false
	}
	if _, hasTitle := single["title"]; hasTitle {
		if _, hasSummary := single["summary"]; hasSummary {
			// Looks like a document wrapper, not a profile.
			return []Profile{}, true
		}
	}
	return []Profile{single}, true
}
