package cart

import (
	"sort"
	"strconv"

	"gamestore/internal/domain"
)

// sameEntry decides whether an add for (productID, customFields) should
// merge into an existing entry. The entry must reference the same product,
// carry structurally equal custom fields, and hold no donation amount:
// donation lines never merge, each pledge stays its own line.
func sameEntry(e domain.CartEntry, productID int, customFields map[string]any) bool {
	if e.Product.ID != productID {
		return false
	}
	if len(e.CustomFields) == 0 && len(customFields) == 0 {
		return e.DonationAmount == nil
	}
	return fieldsEqual(e.CustomFields, customFields) && e.DonationAmount == nil
}

// matchesSelector is the matching rule shared by remove/update operations:
// with no custom fields given, an entry matches when it has none either;
// otherwise the maps must be structurally equal.
func matchesSelector(e domain.CartEntry, productID int, customFields map[string]any) bool {
	if e.Product.ID != productID {
		return false
	}
	if len(customFields) == 0 {
		return len(e.CustomFields) == 0
	}
	return fieldsEqual(e.CustomFields, customFields)
}

// fieldsEqual is a canonical deep equality over custom-field maps:
// order-independent key comparison with value equality that treats numeric
// strings and numbers uniformly. Empty and absent maps are equivalent.
func fieldsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		bv, ok := b[k]
		if !ok {
			return false
		}
		if !valuesEqual(a[k], bv) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		return ok && fieldsEqual(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	// Scalars: numbers and numeric strings compare by value, so "5" and 5
	// describe the same selection whichever way they were serialized.
	if an, aok := asNumber(a); aok {
		if bn, bok := asNumber(b); bok {
			return an == bn
		}
		return false
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	return aok && bok && as == bs
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
