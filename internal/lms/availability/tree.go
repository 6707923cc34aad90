package availability

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

const (
	opAnd    = "&"
	opOr     = "|"
	opNotAnd = "!&"
	opNotOr  = "!|"

	conditionCompletion = "completion"
)

// node is either a subtree (Op set) or a single condition (Type set), in the
// JSON layout the host stores on sections and modules.
type node struct {
	Op       string          `json:"op,omitempty"`
	Children []node          `json:"c,omitempty"`
	Type     string          `json:"type,omitempty"`
	Module   uuid.UUID       `json:"cm,omitempty"`
	Expected int             `json:"e"`
	ShowC    json.RawMessage `json:"showc,omitempty"`
}

// Tree is a parsed availability rule.
type Tree struct {
	root *node
}

// Parse decodes a stored availability rule. An empty rule places no restriction.
func Parse(raw string) (*Tree, error) {
	if raw == "" || raw == "null" {
		return &Tree{}, nil
	}
	var n node
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return nil, fmt.Errorf("decode availability: %w", err)
	}
	if n.Op == "" {
		return nil, fmt.Errorf("decode availability: root has no operator")
	}
	return &Tree{root: &n}, nil
}

// Available evaluates the tree against the user's completion states.
func (t *Tree) Available(states map[uuid.UUID]int) bool {
	if t.root == nil || len(t.root.Children) == 0 {
		return true
	}
	return t.root.eval(states)
}

func (n *node) eval(states map[uuid.UUID]int) bool {
	if n.Op == "" {
		return n.condition(states)
	}

	switch n.Op {
	case opAnd:
		for i := range n.Children {
			if !n.Children[i].eval(states) {
				return false
			}
		}
		return true
	case opOr:
		if len(n.Children) == 0 {
			return true
		}
		for i := range n.Children {
			if n.Children[i].eval(states) {
				return true
			}
		}
		return false
	case opNotAnd:
		// every child must fail
		for i := range n.Children {
			if n.Children[i].eval(states) {
				return false
			}
		}
		return true
	case opNotOr:
		for i := range n.Children {
			if !n.Children[i].eval(states) {
				return true
			}
		}
		return len(n.Children) == 0
	default:
		return false
	}
}

// condition evaluates a leaf. Condition types other than completion are
// owned by the host and count as not met here.
func (n *node) condition(states map[uuid.UUID]int) bool {
	if n.Type != conditionCompletion {
		return false
	}

	state := states[n.Module]
	switch n.Expected {
	case models.CompletionIncomplete:
		return state == models.CompletionIncomplete
	case models.CompletionComplete:
		return state == models.CompletionComplete ||
			state == models.CompletionCompletePass ||
			state == models.CompletionCompleteFail
	case models.CompletionCompletePass:
		return state == models.CompletionCompletePass
	case models.CompletionCompleteFail:
		return state == models.CompletionCompleteFail
	default:
		return false
	}
}

// CompletionRule builds the stored JSON for "module must reach expected
// state", the form the host writes for a single completion condition.
func CompletionRule(module uuid.UUID, expected int) string {
	rule := map[string]any{
		"op":    opAnd,
		"c":     []map[string]any{{"type": conditionCompletion, "cm": module, "e": expected}},
		"showc": []bool{true},
	}
	data, _ := json.Marshal(rule)
	return string(data)
}
