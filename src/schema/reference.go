package schema

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reference renders every declared key as annotated YAML: defaults as
// values, help text as comments, null where no default exists.
func (s *Schema) Reference() ([]byte, error) {
	root, err := s.root.referenceValue()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("rendering reference: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) referenceValue() (*yaml.Node, error) {
	switch n.typ {
	case groupNode:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, c := range n.children {
			v, err := c.referenceValue()
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.name}
			if c.info != "" {
				key.HeadComment = commentLines(c.info)
			}
			m.Content = append(m.Content, key, v)
		}
		if len(m.Content) == 0 {
			m.Style = yaml.FlowStyle
		}
		return m, nil
	case prototypeNode:
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}, nil
	case listNode:
		return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}, nil
	}

	if !n.hasDefault {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}, nil
	}
	var v yaml.Node
	if err := v.Encode(n.def); err != nil {
		return nil, fmt.Errorf("encoding default of %q: %w", n.name, err)
	}
	return &v, nil
}

func commentLines(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "# " + l
	}
	return strings.Join(lines, "\n")
}
