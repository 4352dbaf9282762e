// Package pricing computes effective prices for configured products. All
// functions are pure; data-quality problems (unparsable numbers, unknown
// option ids) contribute zero instead of failing.
package pricing

import (
	"strconv"

	"gamestore/internal/domain"
)

// FieldKey is the selection-map key for a custom field.
func FieldKey(f domain.CustomField) string {
	return strconv.Itoa(f.ID)
}

// EffectiveUnitPrice computes the unit price of a product under the given
// custom-field selections: the base price plus each visible field's
// contribution. Fields gated behind an unchecked parent checkbox are
// skipped entirely.
func EffectiveUnitPrice(p domain.Product, selections map[string]any) float64 {
	price := p.Price
	for _, f := range p.CustomFields {
		if !FieldVisible(p, f, selections) {
			continue
		}
		price += fieldCharge(f, selections[FieldKey(f)])
	}
	return price
}

// LineTotal computes the cart contribution of a single entry. Donation
// entries contribute the pledged amount alone, regardless of quantity.
func LineTotal(e domain.CartEntry) float64 {
	if e.Product.Donation && e.DonationAmount != nil {
		return *e.DonationAmount
	}
	return EffectiveUnitPrice(e.Product, e.CustomFields) * float64(e.Quantity)
}

// Total sums LineTotal over all entries.
func Total(entries []domain.CartEntry) float64 {
	var total float64
	for _, e := range entries {
		total += LineTotal(e)
	}
	return total
}

// FieldVisible reports whether a field is currently shown to the buyer. A
// field with a parent relation is visible only while the referenced sibling
// checkbox field is checked.
func FieldVisible(p domain.Product, f domain.CustomField, selections map[string]any) bool {
	if f.Parent == nil {
		return true
	}
	for _, parent := range p.CustomFields {
		if parent.ID != *f.Parent {
			continue
		}
		if parent.Type != domain.FieldCheckbox {
			return true
		}
		return isTruthy(selections[FieldKey(parent)])
	}
	// Dangling parent reference: treat the field as unconditionally visible.
	return true
}

func fieldCharge(f domain.CustomField, value any) float64 {
	switch {
	case f.Type == domain.FieldCheckbox:
		if isTruthy(value) {
			return f.Price
		}
	case domain.IsSelectType(f.Type):
		return optionCharge(f, value)
	case f.Type == domain.FieldNumber || f.Type == domain.FieldRange:
		return NumberRangeCharge(f, value)
	}
	// text/textarea carry no price.
	return 0
}

func optionCharge(f domain.CustomField, value any) float64 {
	if value == nil || value == "" {
		return 0
	}
	selected := stringify(value)
	for _, opt := range f.Options {
		if strconv.Itoa(opt.ID) == selected {
			return opt.Price
		}
	}
	return 0
}

// NumberRangeCharge bills a number/range field for usage above the included
// baseline. The baseline is the field's default value when set, otherwise
// its minimum, otherwise zero.
func NumberRangeCharge(f domain.CustomField, value any) float64 {
	if value == nil || value == "" {
		return 0
	}
	v, ok := parseNumber(value)
	if !ok {
		return 0
	}
	baseline := 0.0
	if f.DefaultValue != nil {
		baseline, _ = parseNumber(f.DefaultValue)
	} else if f.Minimum != nil {
		baseline = *f.Minimum
	}
	billable := v - baseline
	if billable < 0 {
		billable = 0
	}
	return f.Price * billable
}

// parseNumber coerces a selection value to a float. Values arrive from JSON
// either as numbers or as strings typed into an input.
func parseNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// isTruthy mirrors how the storefront UI treats checkbox values: a bool is
// taken as-is, numbers are truthy when non-zero, strings when non-empty.
func isTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	default:
		n, ok := parseNumber(value)
		return ok && n != 0
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
