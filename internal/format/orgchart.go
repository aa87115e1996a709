package format

import (
	"encoding/json"
	"strings"
)

// OrgNode is one position in an organization chart. Children are direct
// reports; ReportsTo is the flat-form alternative some generations emit.
type OrgNode struct {
	Name      string    `json:"name"`
	Title     string    `json:"title,omitempty"`
	Role      string    `json:"role,omitempty"`
	ReportsTo string    `json:"reportsTo,omitempty"`
	Children  []OrgNode `json:"children,omitempty"`
}

// ParseOrgChart extracts org-chart nodes from permissively shaped JSON.
// Accepted shapes: a bare array of nodes, {"organization":[...]},
// {"employees":[...]}, {"departments":[...]}, {"root":{...}}, or a single
// root-node object. ok is false only when raw is not valid JSON; a parsed
// document with no recognizable shape yields an empty, non-nil slice so the
// caller can offer the generic record-table fallback instead of an error.
func ParseOrgChart(raw string) (nodes []OrgNode, ok bool) {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "[") {
		var list []OrgNode
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, false
		}
		return nonNil(list), true
	}

	var envelope struct {
		Organization []OrgNode       `json:"organization"`
		Employees    []OrgNode       `json:"employees"`
		Departments  []OrgNode       `json:"departments"`
		Root         json.RawMessage `json:"root"`
	}
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return nil, false
	}

	switch {
	case len(envelope.Organization) > 0:
		return envelope.Organization, true
	case len(envelope.Employees) > 0:
		return envelope.Employees, true
	case len(envelope.Departments) > 0:
		return envelope.Departments, true
	case len(envelope.Root) > 0:
		var root OrgNode
		if err := json.Unmarshal(envelope.Root, &root); err != nil || root.Name == "" {
			return []OrgNode{}, true
		}
		return []OrgNode{root}, true
	}

	// A single node object is itself the chart root.
	var single OrgNode
	if err := json.Unmarshal([]byte(trimmed), &single); err == nil && single.Name != "" {
		return []OrgNode{single}, true
	}
	return []OrgNode{}, true
}

// CountNodes returns the total node count including nested reports.
func CountNodes(nodes []OrgNode) int {
	n := 0
	for _, node := range nodes {
		n += 1 + CountNodes(node.Children)
	}
	return n
}

func nonNil(nodes []OrgNode) []OrgNode {
	if nodes == nil {
		return []OrgNode{}
	}
	return nodes
}
