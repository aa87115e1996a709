package format

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// recoverTransform is one step of the JSON recovery pipeline: a cleanup
// applied to the output of the previous step, followed by a parse attempt.
type recoverTransform struct {
	name  string
	apply func(string) string
}

// The pipeline runs in fixed order and stops at the first candidate that is
// valid JSON. Generation models wrap JSON in markdown fences or an extra
// layer of string quoting often enough that these two cheap transforms
// recover most failures; jsonrepair is the heavyweight last attempt.
var recoverPipeline = []recoverTransform{
	{"as-is", func(s string) string { return s }},
	{"strip-code-fences", stripCodeFences},
	{"unwrap-quotes", unwrapQuotes},
	{"jsonrepair", func(s string) string {
		repaired, err := jsonrepair.JSONRepair(s)
		if err != nil {
			return s
		}
		return repaired
	}},
}

// RecoverJSON returns the first transformation of raw that is a valid JSON
// object or array, along with the name of the transform that produced it.
// A bare JSON string does not count as recovered: double-encoded content is
// itself valid JSON, and accepting it would stop the pipeline one step short
// of the unwrap that exposes the real structure. ok is false when the
// pipeline is exhausted.
func RecoverJSON(raw string) (cleaned, transform string, ok bool) {
	s := raw
	for _, t := range recoverPipeline {
		s = t.apply(s)
		if structuredJSON(s) {
			return s, t.name, true
		}
	}
	return "", "", false
}

func structuredJSON(s string) bool {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return false
	}
	return json.Valid([]byte(trimmed))
}

// stripCodeFences removes a single enclosing markdown code fence, with or
// without a language tag.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		// Drop the language tag line.
		if lang := strings.TrimSpace(trimmed[:i]); lang == "" || isFenceLang(lang) {
			trimmed = trimmed[i+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func isFenceLang(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// unwrapQuotes strips one layer of enclosing double quotes and unescapes
// embedded escaped quotes, recovering JSON that was serialized twice.
func unwrapQuotes(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 2 || trimmed[0] != '"' || trimmed[len(trimmed)-1] != '"' {
		return s
	}
	inner := trimmed[1 : len(trimmed)-1]
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, `\n`, "\n")
	return inner
}
