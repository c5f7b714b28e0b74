package schema

import "fmt"

// Normalize checks raw against the schema and returns the fully defaulted tree.
// A nil document is treated as an empty mapping.
func (s *Schema) Normalize(raw any) (*Map, error) {
	if raw == nil {
		raw = NewMap()
	}
	v, err := s.root.normalize("", raw)
	if err != nil {
		return nil, err
	}
	return v.(*Map), nil
}

func (n *Node) normalize(path string, v any) (any, error) {
	switch n.typ {
	case groupNode:
		return n.normalizeGroup(path, v)
	case prototypeNode:
		return n.normalizePrototype(path, v)
	case listNode:
		return n.normalizeList(path, v)
	default:
		return n.normalizeScalar(path, v)
	}
}

func (n *Node) normalizeScalar(path string, v any) (any, error) {
	if k, ok := ShapeOf(v); !ok || k != KindScalar {
		return nil, shapeError(path, KindScalar, v)
	}
	return v, nil
}

func (n *Node) normalizeGroup(path string, v any) (any, error) {
	if v == nil {
		v = NewMap()
	}
	in, ok := AsMap(v)
	if !ok {
		return nil, shapeError(path, KindMapping, v)
	}

	out := NewMap()
	for _, child := range n.children {
		childPath := join(path, child.name)
		raw, present := in.Get(child.name)

		if present && !(raw == nil && child.typ == scalarNode) {
			norm, err := child.normalize(childPath, raw)
			if err != nil {
				return nil, err
			}
			out.Set(child.name, norm)
			continue
		}

		// Absent, or a null scalar.
		switch {
		case child.hasDefault:
			out.Set(child.name, cloneValue(child.def))
		case child.typ == groupNode && child.materialize:
			norm, err := child.normalize(childPath, NewMap())
			if err != nil {
				return nil, err
			}
			out.Set(child.name, norm)
		case child.typ == prototypeNode:
			out.Set(child.name, NewMap())
		case child.typ == listNode:
			out.Set(child.name, []any{})
		}
	}

	for _, key := range in.Keys() {
		if _, known := n.Child(key); known {
			continue
		}
		if !n.passthrough {
			return nil, &Error{Path: join(path, key), Msg: "unrecognized option"}
		}
		raw, _ := in.Get(key)
		if _, ok := ShapeOf(raw); !ok {
			return nil, shapeError(join(path, key), KindScalar, raw)
		}
		out.Set(key, cloneValue(raw))
	}
	return out, nil
}

func (n *Node) normalizePrototype(path string, v any) (any, error) {
	if v == nil {
		return NewMap(), nil
	}
	in, ok := AsMap(v)
	if !ok {
		return nil, shapeError(path, KindMapping, v)
	}
	out := NewMap()
	for _, key := range in.Keys() {
		item, _ := in.Get(key)
		if k, ok := ShapeOf(item); !ok || k != KindScalar {
			return nil, shapeError(join(path, key), KindScalar, item)
		}
		out.Set(key, item)
	}
	return out, nil
}

func (n *Node) normalizeList(path string, v any) (any, error) {
	if v == nil {
		return []any{}, nil
	}
	in, ok := AsSequence(v)
	if !ok {
		return nil, shapeError(path, KindSequence, v)
	}
	out := make([]any, 0, len(in))
	for i, item := range in {
		if k, ok := ShapeOf(item); !ok || k != KindScalar {
			return nil, shapeError(fmt.Sprintf("%s[%d]", path, i), KindScalar, item)
		}
		out = append(out, item)
	}
	return out, nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
