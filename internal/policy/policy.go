// Package policy holds the approver-group policy: which groups must approve a
// change, how many members of each, and which groups apply during a release freeze.
package policy

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Group is a named set of reviewers of which Required must approve.
type Group struct {
	Name      string
	Members   []string
	Required  int
	ForFreeze bool
}

// Grantable reports whether the group's quorum can be reached at all.
func (g Group) Grantable() bool {
	return g.Required <= len(g.Members)
}

// Policy is an ordered, immutable set of approver groups. The order is the
// order in which groups appear in configuration.
type Policy struct {
	groups []Group
}

// groupSpec is the on-disk shape of one group.
type groupSpec struct {
	Members   []string `yaml:"members"`
	Required  int      `yaml:"required"`
	ForFreeze bool     `yaml:"for_freeze"`
}

var groupKeys = map[string]struct{}{
	"members":    {},
	"required":   {},
	"for_freeze": {},
}

// New builds a policy from already validated groups.
func New(groups ...Group) *Policy {
	p := &Policy{groups: make([]Group, 0, len(groups))}
	for _, g := range groups {
		g.Members = slices.Clone(g.Members)
		p.groups = append(p.groups, g)
	}
	return p
}

// Parse decodes a YAML mapping of group name to group definition:
//
//	core:
//	  members: [alice, bob]
//	  required: 1
//	  for_freeze: false
//
// Any decoding problem is reported as an error wrapping ErrConfig.
func Parse(raw []byte) (*Policy, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if len(doc.Content) == 0 {
		return New(), nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return New(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping of group name to group", ErrConfig, root.Line)
	}

	p := &Policy{}
	seen := make(map[string]struct{}, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		name := keyNode.Value
		if name == "" {
			return nil, fmt.Errorf("%w: line %d: group name is empty", ErrConfig, keyNode.Line)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: line %d: group %q is defined more than once", ErrConfig, keyNode.Line, name)
		}
		seen[name] = struct{}{}

		g, err := decodeGroup(name, valNode)
		if err != nil {
			return nil, err
		}
		p.groups = append(p.groups, g)
	}
	return p, nil
}

func decodeGroup(name string, node *yaml.Node) (Group, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return Group{}, fmt.Errorf("%w: group %q (line %d): expected a mapping", ErrConfig, name, node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if _, ok := groupKeys[node.Content[i].Value]; !ok {
			return Group{}, fmt.Errorf("%w: group %q (line %d): unknown field %q", ErrConfig, name, node.Content[i].Line, node.Content[i].Value)
		}
	}

	if err := checkQuorum(name, node); err != nil {
		return Group{}, err
	}

	var decoded groupSpec
	if err := node.Decode(&decoded); err != nil {
		return Group{}, fmt.Errorf("%w: group %q: %w", ErrConfig, name, err)
	}
	if decoded.Required < 1 {
		return Group{}, fmt.Errorf("%w: group %q: required must be at least 1, got %d", ErrConfig, name, decoded.Required)
	}

	members := make([]string, 0, len(decoded.Members))
	for _, m := range decoded.Members {
		if m == "" {
			return Group{}, fmt.Errorf("%w: group %q: member identity is empty", ErrConfig, name)
		}
		if !slices.Contains(members, m) {
			members = append(members, m)
		}
	}

	return Group{
		Name:      name,
		Members:   members,
		Required:  decoded.Required,
		ForFreeze: decoded.ForFreeze,
	}, nil
}

// checkQuorum rejects a "required" value that is not a YAML integer. Decoding
// a float into an int field silently truncates it.
func checkQuorum(name string, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "required" {
			continue
		}
		value := resolveAlias(node.Content[i+1])
		if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!int" {
			return fmt.Errorf("%w: group %q (line %d): required must be an integer, got %q", ErrConfig, name, value.Line, value.Value)
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// Groups returns a copy of the groups in configuration order.
func (p *Policy) Groups() []Group {
	out := make([]Group, len(p.groups))
	for i, g := range p.groups {
		g.Members = slices.Clone(g.Members)
		out[i] = g
	}
	return out
}

// Len returns the number of groups.
func (p *Policy) Len() int {
	return len(p.groups)
}

// SelectForMode returns the groups whose ForFreeze flag equals freeze.
func (p *Policy) SelectForMode(freeze bool) *Policy {
	out := &Policy{}
	for _, g := range p.groups {
		if g.ForFreeze == freeze {
			out.groups = append(out.groups, g)
		}
	}
	return out
}

// Effective selects the policy for the given mode. When freeze is active but no
// group is marked for freeze, the normal groups apply instead; the second
// return value reports that fallback. The fallback is applied once.
func (p *Policy) Effective(freeze bool) (*Policy, bool) {
	selected := p.SelectForMode(freeze)
	if freeze && selected.Len() == 0 {
		return p.SelectForMode(false), true
	}
	return selected, false
}

// Lint returns human-readable warnings for groups that can never be satisfied.
func (p *Policy) Lint() []string {
	var warnings []string
	for _, g := range p.groups {
		if !g.Grantable() {
			warnings = append(warnings, fmt.Sprintf("group %q requires %d approvals but has only %d members", g.Name, g.Required, len(g.Members)))
		}
	}
	return warnings
}
