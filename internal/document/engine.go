package document

import (
	"fmt"
	"slices"
)

// FindNearest walks from the node at sel towards the root and returns the
// path of the first targetable node whose type is in types. With no types
// any targetable node matches. The node at sel itself is considered first.
// Parts of sel that do not exist in the tree are ignored.
func FindNearest(doc *Node, sel Path, types ...NodeType) (Path, bool) {
	if doc == nil {
		return nil, false
	}
	valid := doc.resolve(sel)
	for depth := len(valid); depth >= 1; depth-- {
		node := doc.At(valid[:depth])
		spec, ok := schema[node.Type]
		if !ok || !spec.Targetable {
			continue
		}
		if len(types) == 0 || slices.Contains(types, node.Type) {
			return slices.Clone(valid[:depth]), true
		}
	}
	return nil, false
}

// Insert adds a new node of type t after the block enclosing sel, in the
// nearest ancestor whose content rule accepts t. A selected empty container
// that accepts t receives the node as its child, and an empty top-level
// paragraph is replaced. Container types come with their required children.
// The returned path addresses the new node.
func Insert(doc *Node, sel Path, t NodeType, attrs Attrs) (*Node, Path, error) {
	spec, ok := schema[t]
	if !ok {
		return doc, nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, t)
	}
	if !spec.Insertable {
		return doc, nil, fmt.Errorf("%w: %s", ErrNotInsertable, t)
	}

	node, err := New(t, attrs)
	if err != nil {
		return doc, nil, err
	}

	out := doc.Clone()
	if out == nil {
		out = Empty()
	}
	valid := out.resolve(sel)

	if selected := out.At(valid); len(valid) > 0 && len(selected.Content) == 0 && allows(schema[selected.Type], t) && hasRoom(selected) {
		selected.Content = append(selected.Content, node)
		return out, append(valid, 0), nil
	}

	for depth := len(valid); depth >= 1; depth-- {
		parentPath := valid[:depth-1]
		parent := out.At(parentPath)
		if !allows(schema[parent.Type], t) {
			continue
		}
		idx := valid[depth-1]
		if len(parentPath) == 0 && isEmptyParagraph(parent.Content[idx]) {
			parent.Content[idx] = node
			return out, Path{idx}, nil
		}
		if !hasRoom(parent) {
			continue
		}
		parent.Content = slices.Insert(parent.Content, idx+1, node)
		return out, append(slices.Clone(parentPath), idx+1), nil
	}

	out.Content = append(out.Content, node)
	return out, Path{len(out.Content) - 1}, nil
}

// UpdateAttrs merges patch into the attributes of the nearest node of type t.
// Children are left untouched. It reports false when no such node encloses sel.
func UpdateAttrs(doc *Node, sel Path, t NodeType, patch Attrs) (*Node, bool) {
	target, ok := FindNearest(doc, sel, t)
	if !ok {
		return doc, false
	}
	out := doc.Clone()
	node := out.At(target)
	node.Attrs = mergeAttrs(schema[node.Type].Attrs, node.Attrs, patch)
	return out, true
}

// Delete removes the nearest node of one of types (any targetable type when
// none are given) together with its subtree. Ancestors left with content
// their rule forbids are removed as well. A document emptied this way gets a
// single empty paragraph. It reports false when nothing matched.
func Delete(doc *Node, sel Path, types ...NodeType) (*Node, bool) {
	target, ok := FindNearest(doc, sel, types...)
	if !ok {
		return doc, false
	}

	out := doc.Clone()
	path := target
	for {
		parentPath := path.Parent()
		parent := out.At(parentPath)
		parent.Content = slices.Delete(parent.Content, path.Last(), path.Last()+1)

		if len(parentPath) == 0 {
			if len(parent.Content) == 0 {
				parent.Content = []*Node{mustNew(TypeParagraph, nil)}
			}
			break
		}
		if satisfied(parent) {
			break
		}
		path = parentPath
	}
	return out, true
}

// ConvertToSingleColumn replaces the nearest two-column section with its
// columns' content lifted into the parent. The media node comes first when
// the section's media is on the left and last otherwise; media without a
// source is dropped, as are the column widths and gap.
func ConvertToSingleColumn(doc *Node, sel Path) (*Node, bool) {
	target, ok := FindNearest(doc, sel, TypeTwoColumnSection)
	if !ok {
		return doc, false
	}

	out := doc.Clone()
	section := out.At(target)

	var mediaNodes, contentNodes []*Node
	for _, column := range section.Content {
		switch column.Type {
		case TypeColumnMedia:
			for _, child := range column.Content {
				if child.Attrs.String("src") != "" {
					mediaNodes = append(mediaNodes, child)
				}
			}
		case TypeColumnContent:
			contentNodes = append(contentNodes, column.Content...)
		}
	}

	var lifted []*Node
	if section.Attrs.String("mediaPosition") == "right" {
		lifted = append(contentNodes, mediaNodes...)
	} else {
		lifted = append(mediaNodes, contentNodes...)
	}
	if len(lifted) == 0 {
		lifted = []*Node{mustNew(TypeParagraph, nil)}
	}

	parent := out.At(target.Parent())
	idx := target.Last()
	parent.Content = slices.Replace(parent.Content, idx, idx+1, lifted...)
	return out, true
}
