package domain

import (
	"math"
	"sort"
)

// AxisSets holds the distinct selectable values per variant attribute axis,
// derived from a product's variant list. Colors and storages keep the
// variant list's insertion order; RAM values are sorted ascending.
type AxisSets struct {
	Colors   []string `json:"colors"`
	RAMGb    []int    `json:"ram_gb"`
	Storages []string `json:"storages"`
}

// Selection is the user's current choice per axis. A nil axis means no
// constraint (wildcard) for that axis.
type Selection struct {
	Color   *string `json:"color"`
	RAMGb   *int    `json:"ram_gb"`
	Storage *string `json:"storage"`
}

// EffectiveValues are the display values for a product after applying
// variant-over-base-product fallback per field. Nil/empty fields are
// omitted from display.
type EffectiveValues struct {
	Price   *int64 `json:"price,omitempty"`
	RAMGb   *int   `json:"ram_gb,omitempty"`
	Storage string `json:"storage,omitempty"`
	Color   string `json:"color,omitempty"`
}

// VariantResolution is the full result of resolving a selection against a
// product's variant list.
type VariantResolution struct {
	AxisSets        AxisSets        `json:"axis_sets"`
	Selection       Selection       `json:"selection"`
	SelectedVariant *Variant        `json:"selected_variant,omitempty"`
	Effective       EffectiveValues `json:"effective"`
	DiscountPercent *int            `json:"discount_percent,omitempty"`
}

// DeriveAxisSets scans the variant list once and collects the distinct
// values per axis. Absent values are excluded from their axis set.
func DeriveAxisSets(variants []Variant) AxisSets {
	var sets AxisSets

	seenColor := make(map[string]struct{})
	seenRAM := make(map[int]struct{})
	seenStorage := make(map[string]struct{})

	for _, v := range variants {
		if c := v.Attributes.Color; c != "" {
			if _, ok := seenColor[c]; !ok {
				seenColor[c] = struct{}{}
				sets.Colors = append(sets.Colors, c)
			}
		}
		if v.Attributes.RAMGb != nil && *v.Attributes.RAMGb > 0 {
			if _, ok := seenRAM[*v.Attributes.RAMGb]; !ok {
				seenRAM[*v.Attributes.RAMGb] = struct{}{}
				sets.RAMGb = append(sets.RAMGb, *v.Attributes.RAMGb)
			}
		}
		if s := v.Attributes.Storage; s != "" {
			if _, ok := seenStorage[s]; !ok {
				seenStorage[s] = struct{}{}
				sets.Storages = append(sets.Storages, s)
			}
		}
	}

	sort.Ints(sets.RAMGb)

	return sets
}

// InitialSelection seeds a selection for a freshly loaded product: from the
// product's pre-selected variant when one exists, otherwise from the first
// value of each derived axis set. Empty axes stay nil.
func InitialSelection(p *Product) Selection {
	if p == nil {
		return Selection{}
	}

	if p.SelectedVariantID != nil {
		for i := range p.Variants {
			if p.Variants[i].ID == *p.SelectedVariantID {
				return selectionFromVariant(p.Variants[i])
			}
		}
	}

	sets := DeriveAxisSets(p.Variants)

	var sel Selection
	if len(sets.Colors) > 0 {
		sel.Color = &sets.Colors[0]
	}
	if len(sets.RAMGb) > 0 {
		sel.RAMGb = &sets.RAMGb[0]
	}
	if len(sets.Storages) > 0 {
		sel.Storage = &sets.Storages[0]
	}
	return sel
}

func selectionFromVariant(v Variant) Selection {
	var sel Selection
	if v.Attributes.Color != "" {
		c := v.Attributes.Color
		sel.Color = &c
	}
	if v.Attributes.RAMGb != nil && *v.Attributes.RAMGb > 0 {
		r := *v.Attributes.RAMGb
		sel.RAMGb = &r
	}
	if v.Attributes.Storage != "" {
		s := v.Attributes.Storage
		sel.Storage = &s
	}
	return sel
}

// Matches reports whether the variant satisfies every non-nil axis of the
// selection. Nil axes match any value.
func (s Selection) Matches(v Variant) bool {
	if s.Color != nil && v.Attributes.Color != *s.Color {
		return false
	}
	if s.RAMGb != nil {
		if v.Attributes.RAMGb == nil || *v.Attributes.RAMGb != *s.RAMGb {
			return false
		}
	}
	if s.Storage != nil && v.Attributes.Storage != *s.Storage {
		return false
	}
	return true
}

// ResolveVariant returns the first variant in list order satisfying all
// non-nil axes of the selection, or nil when none match or the list is
// empty. First match wins; there is no scoring among multiple matches.
func ResolveVariant(variants []Variant, sel Selection) *Variant {
	for i := range variants {
		if sel.Matches(variants[i]) {
			return &variants[i]
		}
	}
	return nil
}

// DeriveEffectiveValues applies the per-field fallback: the variant's value
// when present, else the base product's, else omitted.
func DeriveEffectiveValues(p *Product, v *Variant) EffectiveValues {
	var eff EffectiveValues

	if v != nil && v.Price != nil {
		price := *v.Price
		eff.Price = &price
	} else if p != nil {
		price := p.Price
		eff.Price = &price
	}

	if v != nil && v.Attributes.RAMGb != nil {
		ram := *v.Attributes.RAMGb
		eff.RAMGb = &ram
	} else if p != nil && p.RAMGb != nil {
		ram := *p.RAMGb
		eff.RAMGb = &ram
	}

	if v != nil && v.Attributes.Storage != "" {
		eff.Storage = v.Attributes.Storage
	} else if p != nil {
		eff.Storage = p.Storage
	}

	if v != nil && v.Attributes.Color != "" {
		eff.Color = v.Attributes.Color
	} else if p != nil {
		eff.Color = p.Color
	}

	return eff
}

// DeriveDiscountPercent returns the product's own discount percent when
// set, otherwise computes round(((mrp - effectivePrice) / mrp) * 100) when
// both are positive. Non-positive discounts are nil, so they are omitted
// from display.
func DeriveDiscountPercent(p *Product, effectivePrice *int64) *int {
	if p == nil {
		return nil
	}
	if p.DiscountPercent != nil {
		if d := *p.DiscountPercent; d > 0 {
			return &d
		}
		return nil
	}
	if p.MRP == nil || *p.MRP <= 0 || effectivePrice == nil || *effectivePrice <= 0 {
		return nil
	}
	d := int(math.Round(float64(*p.MRP-*effectivePrice) / float64(*p.MRP) * 100))
	if d <= 0 {
		return nil
	}
	return &d
}

// ResolveSelection runs the full variant resolution for a product and
// selection: axis sets, matching variant, effective values, and discount.
// It is a pure computation; it never errors and never mutates its inputs.
func ResolveSelection(p *Product, sel Selection) VariantResolution {
	res := VariantResolution{Selection: sel}
	if p == nil {
		return res
	}

	res.AxisSets = DeriveAxisSets(p.Variants)
	res.SelectedVariant = ResolveVariant(p.Variants, sel)
	res.Effective = DeriveEffectiveValues(p, res.SelectedVariant)
	res.DiscountPercent = DeriveDiscountPercent(p, res.Effective.Price)

	return res
}
