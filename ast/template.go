package ast

import (
	"regexp"
	"strings"
)

const (
	stringSpanPattern = ".*"
	numberSpanPattern = `-?\d+(\.\d+)?`
)

// Pattern returns the anchored regular-expression source matching exactly
// the language of the template literal: head, then per span the span
// alphabet followed by the span's literal.
func (n *TemplateLiteral) Pattern() string {
	var b strings.Builder
	b.WriteString("^")
	b.WriteString(regexp.QuoteMeta(n.Head))
	for _, sp := range n.Spans {
		switch spanBaseKind(sp.Type) {
		case KindNumber:
			b.WriteString(numberSpanPattern)
		default:
			b.WriteString(stringSpanPattern)
		}
		b.WriteString(regexp.QuoteMeta(sp.Literal))
	}
	b.WriteString("$")
	return b.String()
}

func spanBaseKind(a AST) Kind {
	for {
		if r, ok := a.(*Refinement); ok {
			a = r.From
			continue
		}
		return a.Kind()
	}
}

// Source renders the template literal for messages, e.g. `a${string}b`.
func (n *TemplateLiteral) Source() string {
	var b strings.Builder
	b.WriteString("`")
	b.WriteString(n.Head)
	for _, sp := range n.Spans {
		b.WriteString("${")
		b.WriteString(spanBaseKind(sp.Type).String())
		b.WriteString("}")
		b.WriteString(sp.Literal)
	}
	b.WriteString("`")
	return b.String()
}
