// Package catalog holds the category field registry: the extra fields each
// product category carries on top of the shared product form.
package catalog

import (
	"strings"

	"stockroom/internal/domain"
)

// Registry maps a category to its extra fields. It is built once and never
// mutated; share it freely.
type Registry struct {
	fields map[domain.Category][]domain.FieldDescriptor
}

var defaultRegistry = NewRegistry(map[domain.Category][]domain.FieldDescriptor{
	domain.CategoryShoes: {
		{Label: "Material", Kind: domain.KindString},
		{Label: "Sole Type", Kind: domain.KindString},
	},
	domain.CategoryBags: {
		{Label: "Strap Length", Kind: domain.KindNumber},
		{Label: "Material", Kind: domain.KindString},
		{Label: "Dimensions", Kind: domain.KindString},
	},
	domain.CategoryPerfumes: {
		{Label: "Scent Notes", Kind: domain.KindString},
		{Label: "Volume", Kind: domain.KindNumber},
	},
	domain.CategoryBelts: {
		{Label: "Belt Width", Kind: domain.KindNumber},
		{Label: "Buckle Type", Kind: domain.KindString},
	},
	domain.CategoryClothes: {
		{Label: "Fabric Type", Kind: domain.KindString},
		{Label: "Care Instructions", Kind: domain.KindString},
	},
	domain.CategorySnacks: {
		{Label: "Ingredients", Kind: domain.KindString},
		{Label: "Nutritional Information", Kind: domain.KindString},
	},
})

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// NewRegistry copies m so later changes to it are not observed. Every known
// category gets an entry, empty if m has none. Duplicate labels within a
// category panic: the table is static and a duplicate is a programming error.
func NewRegistry(m map[domain.Category][]domain.FieldDescriptor) *Registry {
	r := &Registry{fields: make(map[domain.Category][]domain.FieldDescriptor, len(domain.Categories))}
	for _, c := range domain.Categories {
		seen := map[string]bool{}
		list := make([]domain.FieldDescriptor, 0, len(m[c]))
		for _, f := range m[c] {
			if seen[f.Label] {
				panic("catalog: duplicate field " + f.Label + " in " + string(c))
			}
			seen[f.Label] = true
			list = append(list, f)
		}
		r.fields[c] = list
	}
	return r
}

// FieldsFor returns the extra fields for c in declaration order. The slice is
// a copy.
func (r *Registry) FieldsFor(c domain.Category) []domain.FieldDescriptor {
	src := r.fields[c]
	out := make([]domain.FieldDescriptor, len(src))
	copy(out, src)
	return out
}

// Field looks up one descriptor by label.
func (r *Registry) Field(c domain.Category, label string) (domain.FieldDescriptor, bool) {
	for _, f := range r.fields[c] {
		if f.Label == label {
			return f, true
		}
	}
	return domain.FieldDescriptor{}, false
}

// Categories returns the closed set of categories.
func (r *Registry) Categories() []domain.Category {
	out := make([]domain.Category, len(domain.Categories))
	copy(out, domain.Categories)
	return out
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (domain.Category, bool) {
	for _, c := range domain.Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}
