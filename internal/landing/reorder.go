package landing

import "slices"

// Reorder moves moved to the position target occupies once moved has been
// taken out. The result is a new slice holding the same keys. When either key
// is missing or they are equal the order is returned unchanged.
func Reorder[K comparable](order []K, moved, target K) []K {
	out := slices.Clone(order)
	if moved == target {
		return out
	}
	from := slices.Index(out, moved)
	if from < 0 || !slices.Contains(out, target) {
		return out
	}

	out = slices.Delete(out, from, from+1)
	to := slices.Index(out, target)
	return slices.Insert(out, to, moved)
}

// ReorderSections applies Reorder to the section order. The floating button
// source is not affected.
func ReorderSections(d TemplateData, moved, target SectionKey) TemplateData {
	out := d.Clone()
	out.SectionOrder = Reorder(out.SectionOrder, moved, target)
	return out
}

// MoveSection swaps key with its neighbour offset positions away (-1 up,
// +1 down). Moves past either end leave the order unchanged.
func MoveSection(d TemplateData, key SectionKey, offset int) TemplateData {
	out := d.Clone()
	from := slices.Index(out.SectionOrder, key)
	to := from + offset
	if from < 0 || to < 0 || to >= len(out.SectionOrder) || offset == 0 {
		return out
	}
	item := out.SectionOrder[from]
	out.SectionOrder = slices.Delete(out.SectionOrder, from, from+1)
	out.SectionOrder = slices.Insert(out.SectionOrder, to, item)
	return out
}
