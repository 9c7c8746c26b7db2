package document

import (
	"fmt"
	"slices"
)

// Validate checks the tree against the schema and returns the first violation.
func Validate(doc *Node) error {
	if doc == nil || doc.Type != TypeDoc {
		return fmt.Errorf("%w: root must be a doc node", ErrSchemaViolation)
	}
	return validateNode(doc, Path{})
}

func validateNode(n *Node, path Path) error {
	spec, ok := schema[n.Type]
	if !ok {
		return fmt.Errorf("%w: unknown node type %q at %s", ErrSchemaViolation, n.Type, path)
	}

	for name, value := range n.Attrs {
		attr, ok := spec.attr(name)
		if !ok {
			return fmt.Errorf("%w: unknown attribute %q on %s at %s", ErrSchemaViolation, name, n.Type, path)
		}
		if _, ok := coerceAttr(attr, value); !ok {
			return fmt.Errorf("%w: invalid value for %s.%s at %s", ErrSchemaViolation, n.Type, name, path)
		}
	}

	if n.Type == TypeText {
		if n.Text == "" {
			return fmt.Errorf("%w: empty text node at %s", ErrSchemaViolation, path)
		}
		for _, mark := range n.Marks {
			if _, ok := markAttrs[mark.Type]; !ok {
				return fmt.Errorf("%w: unknown mark %q at %s", ErrSchemaViolation, mark.Type, path)
			}
		}
		return nil
	}
	if n.Text != "" || len(n.Marks) > 0 {
		return fmt.Errorf("%w: %s cannot carry text at %s", ErrSchemaViolation, n.Type, path)
	}
	if spec.Leaf {
		if len(n.Content) > 0 {
			return fmt.Errorf("%w: leaf %s has content at %s", ErrSchemaViolation, n.Type, path)
		}
		return nil
	}

	for i, child := range n.Content {
		childPath := append(slices.Clone(path), i)
		if child == nil {
			return fmt.Errorf("%w: nil child at %s", ErrSchemaViolation, childPath)
		}
		if !allows(spec, child.Type) {
			return fmt.Errorf("%w: %s not allowed in %s at %s", ErrSchemaViolation, child.Type, n.Type, childPath)
		}
		if spec.PlainText && len(child.Marks) > 0 {
			return fmt.Errorf("%w: marks not allowed in %s at %s", ErrSchemaViolation, n.Type, childPath)
		}
		if err := validateNode(child, childPath); err != nil {
			return err
		}
	}
	if !satisfied(n) {
		return fmt.Errorf("%w: %s has invalid content at %s", ErrSchemaViolation, n.Type, path)
	}
	return nil
}

// Normalize repairs a loaded tree so that it validates: unknown nodes and
// marks are dropped, attributes get their defaults, stray inline content is
// wrapped in paragraphs and required children are created. The input is not
// modified. A nil or non-doc root is wrapped in a new document.
func Normalize(doc *Node) *Node {
	root := doc
	if root == nil || root.Type != TypeDoc {
		root = &Node{Type: TypeDoc}
		if doc != nil {
			root.Content = []*Node{doc}
		}
	}
	out := normalizeNode(root)
	if out == nil {
		return Empty()
	}
	return out
}

func normalizeNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	spec, ok := schema[n.Type]
	if !ok {
		return nil
	}

	out := &Node{Type: n.Type, Attrs: mergeAttrs(spec.Attrs, nil, n.Attrs)}
	if n.Type == TypeText {
		if n.Text == "" {
			return nil
		}
		out.Text = n.Text
		out.Marks = normalizeMarks(n.Marks)
		return out
	}
	if spec.Leaf {
		return out
	}

	var pendingInline []*Node
	flushInline := func() {
		if len(pendingInline) == 0 {
			return
		}
		if allows(spec, TypeParagraph) {
			out.Content = append(out.Content, mustNew(TypeParagraph, nil, pendingInline...))
		}
		pendingInline = nil
	}

	for _, child := range n.Content {
		normalized := normalizeNode(child)
		if normalized == nil {
			continue
		}
		if spec.PlainText && normalized.Type == TypeText {
			normalized.Marks = nil
		}
		if allows(spec, normalized.Type) {
			flushInline()
			out.Content = append(out.Content, normalized)
			continue
		}
		if schema[normalized.Type].inGroup(GroupInline) {
			pendingInline = append(pendingInline, normalized)
		}
	}
	flushInline()

	fill(out)
	return out
}

func normalizeMarks(marks []Mark) []Mark {
	var out []Mark
	seen := make(map[MarkType]bool, len(marks))
	for _, mark := range marks {
		specs, ok := markAttrs[mark.Type]
		if !ok || seen[mark.Type] {
			continue
		}
		seen[mark.Type] = true
		out = append(out, Mark{Type: mark.Type, Attrs: mergeAttrs(specs, nil, mark.Attrs)})
	}
	return out
}
