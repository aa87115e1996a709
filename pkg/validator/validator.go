package validator

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	maxFileNameLen   = 255
	maxContentBytes  = 10 * 1024 * 1024
	asciiControlMax  = 32
	asciiDelete      = 127

	errFileNameEmptyFmt        = "file name cannot be empty"
	errFileNameMaxLengthFmt    = "file name must not exceed %d characters"
	errFileNamePathSepFmt      = "file name cannot contain path separators"
	errFileNameControlCharsFmt = "file name cannot contain control characters"
	errContentEmptyFmt         = "content cannot be empty"
	errContentMaxSizeFmt       = "content must not exceed %d bytes"
	errDraftNotJSONFmt         = "draft is not valid JSON: %v"
)

func FileName(name string) error {
	if name == "" {
		return fmt.Errorf(errFileNameEmptyFmt)
	}
	if len(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf(errFileNamePathSepFmt)
	}
	for _, r := range name {
		if r < asciiControlMax || r == asciiDelete {
			return fmt.Errorf(errFileNameControlCharsFmt)
		}
	}
	return nil
}

func ContentSize(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf(errContentEmptyFmt)
	}
	if len(content) > maxContentBytes {
		return fmt.Errorf(errContentMaxSizeFmt, maxContentBytes)
	}
	return nil
}

// Verdict is the result of a cheap structural check on a draft, run on every
// draft update independently of server-side validation.
type Verdict struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Draft runs the local structural validation appropriate for the asset's
// file name. Only .json-named assets get a structural check today; all other
// content is accepted as-is.
func Draft(fileName, draft string) Verdict {
	if strings.ToLower(filepath.Ext(fileName)) != ".json" {
		return Verdict{Valid: true}
	}
	var v any
	if err := json.Unmarshal([]byte(draft), &v); err != nil {
		return Verdict{Valid: false, Message: fmt.Sprintf(errDraftNotJSONFmt, err)}
	}
	return Verdict{Valid: true}
}
