package core

import (
	"fmt"
	"strings"
)

// Operator is a SQL comparison operator. The set is closed: anything not
// listed below fails at compile time with ErrUnsupportedOperator.
type Operator string

// Operator constants for the supported comparison operators.
const (
	OpEq         Operator = "="
	OpNotEq      Operator = "!="
	OpGt         Operator = ">"
	OpGtEq       Operator = ">="
	OpLt         Operator = "<"
	OpLtEq       Operator = "<="
	OpLike       Operator = "LIKE"
	OpNotLike    Operator = "NOT LIKE"
	OpIn         Operator = "IN"
	OpNotIn      Operator = "NOT IN"
	OpBetween    Operator = "BETWEEN"
	OpNotBetween Operator = "NOT BETWEEN"
	OpIs         Operator = "IS"
	OpIsNot      Operator = "IS NOT"
)

var operators = map[string]Operator{
	"=":           OpEq,
	"==":          OpEq,
	"!=":          OpNotEq,
	"<>":          OpNotEq,
	">":           OpGt,
	">=":          OpGtEq,
	"<":           OpLt,
	"<=":          OpLtEq,
	"LIKE":        OpLike,
	"NOT LIKE":    OpNotLike,
	"IN":          OpIn,
	"NOT IN":      OpNotIn,
	"BETWEEN":     OpBetween,
	"NOT BETWEEN": OpNotBetween,
	"IS":          OpIs,
	"IS NOT":      OpIsNot,
}

// ParseOperator normalizes a textual operator token (case-insensitive,
// whitespace collapsed) and returns the canonical Operator.
func ParseOperator(s string) (Operator, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	op, ok := operators[normalized]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOperator, s)
	}
	return op, nil
}

// IsRange returns true for BETWEEN/NOT BETWEEN, which take exactly two values.
func (op Operator) IsRange() bool {
	return op == OpBetween || op == OpNotBetween
}

// IsSet returns true for IN/NOT IN, which take a value sequence or a nested statement.
func (op Operator) IsSet() bool {
	return op == OpIn || op == OpNotIn
}

// String returns the SQL keyword for the operator.
func (op Operator) String() string { return string(op) }
