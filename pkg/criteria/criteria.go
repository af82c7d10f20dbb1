// Package criteria implements the rule mini-language used to target forms at
// agents. Rules are data, not code: a closed set of string operators applied
// to a flat field lookup, AND-combined.
package criteria

import (
	"errors"
	"fmt"
	"strings"
)

type Operator string

const (
	OpEquals     Operator = "equals"
	OpNotEquals  Operator = "not_equals"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "starts_with"
	OpEndsWith   Operator = "ends_with"
)

// Rule is one predicate against a single-valued string field.
type Rule struct {
	Field    string   `json:"field" binding:"required"`
	Operator Operator `json:"operator" binding:"required"`
	Value    string   `json:"value"`
}

// ErrInvalidCriteria marks a configuration error (unknown field or operator)
// as opposed to a rule that simply evaluated to false. Callers must not
// conflate the two.
var ErrInvalidCriteria = errors.New("invalid criteria")

// Evaluate applies all rules against the subject. An empty or nil rule list
// means no restriction and evaluates to true. Rules are AND-combined and
// evaluation stops at the first failing rule. Comparison is case-sensitive.
func Evaluate(rules []Rule, subject map[string]string) (bool, error) {
	for _, r := range rules {
		fieldValue, ok := subject[r.Field]
		if !ok {
			return false, fmt.Errorf("%w: unknown field %q", ErrInvalidCriteria, r.Field)
		}

		match, err := apply(r.Operator, fieldValue, r.Value)
		if err != nil {
			return false, err
		}
		if !match {
			return false, nil
		}
	}
	return true, nil
}

// Validate checks rules against the allowed field set without evaluating
// them. Used at attachment-save time so misconfiguration is rejected before
// it can poison visibility checks.
func Validate(rules []Rule, allowedFields []string) error {
	allowed := make(map[string]struct{}, len(allowedFields))
	for _, f := range allowedFields {
		allowed[f] = struct{}{}
	}

	for _, r := range rules {
		if _, ok := allowed[r.Field]; !ok {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidCriteria, r.Field)
		}
		if !r.Operator.valid() {
			return fmt.Errorf("%w: unknown operator %q", ErrInvalidCriteria, r.Operator)
		}
	}
	return nil
}

func (op Operator) valid() bool {
	switch op {
	case OpEquals, OpNotEquals, OpContains, OpStartsWith, OpEndsWith:
		return true
	}
	return false
}

func apply(op Operator, fieldValue, ruleValue string) (bool, error) {
	switch op {
	case OpEquals:
		return fieldValue == ruleValue, nil
	case OpNotEquals:
		return fieldValue != ruleValue, nil
	case OpContains:
		return strings.Contains(fieldValue, ruleValue), nil
	case OpStartsWith:
		return strings.HasPrefix(fieldValue, ruleValue), nil
	case OpEndsWith:
		return strings.HasSuffix(fieldValue, ruleValue), nil
	default:
		return false, fmt.Errorf("%w: unknown operator %q", ErrInvalidCriteria, op)
	}
}
