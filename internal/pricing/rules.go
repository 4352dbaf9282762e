package pricing

import (
	"fmt"
	"sort"
	"strings"

	"gamestore/internal/domain"
)

// RuleValidation is the evaluated state of one custom rule.
type RuleValidation struct {
	Rule  domain.CustomRule
	Total float64
	Valid bool
}

// RuleTotal sums the numeric values of the fields a rule references. Empty
// and unparsable values contribute zero.
func RuleTotal(rule domain.CustomRule, selections map[string]any) float64 {
	var total float64
	for _, fieldID := range rule.Fields {
		value := selections[fmt.Sprint(fieldID)]
		if value == nil || value == "" {
			continue
		}
		if n, ok := parseNumber(value); ok {
			total += n
		}
	}
	return total
}

// ValidateRules evaluates every rule against the current selections, in
// rule order. A rule with neither bound is vacuously valid.
func ValidateRules(rules []domain.CustomRule, selections map[string]any) []RuleValidation {
	if len(rules) == 0 {
		return nil
	}
	sorted := make([]domain.CustomRule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	out := make([]RuleValidation, 0, len(sorted))
	for _, rule := range sorted {
		total := RuleTotal(rule, selections)
		valid := (rule.Min == nil || total >= *rule.Min) && (rule.Max == nil || total <= *rule.Max)
		out = append(out, RuleValidation{Rule: rule, Total: total, Valid: valid})
	}
	return out
}

// AllRulesValid reports whether every validation passed.
func AllRulesValid(validations []RuleValidation) bool {
	for _, v := range validations {
		if !v.Valid {
			return false
		}
	}
	return true
}

// RulesErrorMessage renders the violated rules as a single human-readable
// message, or "" when everything is valid.
func RulesErrorMessage(validations []RuleValidation) string {
	var messages []string
	for _, v := range validations {
		if v.Valid {
			continue
		}
		rule := v.Rule
		switch {
		case rule.Min != nil && rule.Max != nil:
			messages = append(messages, fmt.Sprintf("%s: must be between %g and %g (currently %g)", rule.Name, *rule.Min, *rule.Max, v.Total))
		case rule.Min != nil:
			messages = append(messages, fmt.Sprintf("%s: must be at least %g (currently %g)", rule.Name, *rule.Min, v.Total))
		case rule.Max != nil:
			messages = append(messages, fmt.Sprintf("%s: must be at most %g (currently %g)", rule.Name, *rule.Max, v.Total))
		default:
			messages = append(messages, fmt.Sprintf("%s: invalid value", rule.Name))
		}
	}
	return strings.Join(messages, "; ")
}

// MissingRequired returns the visible required fields that have no value in
// the selections. Fields hidden behind an unchecked parent checkbox are not
// required while hidden.
func MissingRequired(p domain.Product, selections map[string]any) []domain.CustomField {
	var missing []domain.CustomField
	for _, f := range p.CustomFields {
		if !f.Required || !FieldVisible(p, f, selections) {
			continue
		}
		value := selections[FieldKey(f)]
		if value == nil || value == "" {
			missing = append(missing, f)
			continue
		}
		if f.Type == domain.FieldCheckbox && !isTruthy(value) {
			missing = append(missing, f)
		}
	}
	return missing
}
