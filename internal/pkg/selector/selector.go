// Package selector builds typed label/field selector expressions that
// serialize to the cluster's selector syntax, so reconcilers never hand-roll
// selector strings.
package selector

import "strings"

// Expression is a single selector term.
type Expression struct {
	op     string
	key    string
	values []string
}

// Eq builds a "key=value" expression.
func Eq(key, value string) Expression { return Expression{op: "eq", key: key, values: []string{value}} }

// Neq builds a "key!=value" expression.
func Neq(key, value string) Expression {
	return Expression{op: "neq", key: key, values: []string{value}}
}

// In builds a "key in (a,b,...)" expression. Duplicate values are removed.
func In(key string, values ...string) Expression {
	return Expression{op: "in", key: key, values: dedup(values)}
}

// NotIn builds a "key notin (a,b,...)" expression. Duplicate values are
// removed.
func NotIn(key string, values ...string) Expression {
	return Expression{op: "notin", key: key, values: dedup(values)}
}

// Exists builds a "key" existence expression.
func Exists(key string) Expression { return Expression{op: "exists", key: key} }

// NotExists builds a "!key" non-existence expression.
func NotExists(key string) Expression { return Expression{op: "!exists", key: key} }

// String renders the expression in the cluster's selector grammar.
func (e Expression) String() string {
	switch e.op {
	case "eq":
		return e.key + "=" + e.values[0]
	case "neq":
		return e.key + "!=" + e.values[0]
	case "in":
		return e.key + " in (" + strings.Join(e.values, ",") + ")"
	case "notin":
		return e.key + " notin (" + strings.Join(e.values, ",") + ")"
	case "exists":
		return e.key
	case "!exists":
		return "!" + e.key
	default:
		return ""
	}
}

func dedup(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Selector is an ordered set of expressions, ANDed together.
type Selector []Expression

// New builds a Selector from zero or more expressions.
func New(exprs ...Expression) Selector {
	return Selector(exprs)
}

// With appends an expression and returns the receiver for chaining.
func (s Selector) With(expr Expression) Selector {
	return append(s, expr)
}

// String renders the selector in the cluster's selector grammar:
// "key=val,key in (a,b),!key".
func (s Selector) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}

// Well-known field selector paths, usable with field selectors alongside
// label Expressions.
const (
	FieldName      = "metadata.name"
	FieldNamespace = "metadata.namespace"
)
