package ast

import (
	"regexp"
	"testing"
)

func TestTemplateLiteral_Pattern(t *testing.T) {
	cases := []struct {
		name    string
		node    *TemplateLiteral
		match   []string
		nomatch []string
	}{
		{
			name:    "head only",
			node:    NewTemplateLiteral("exact", nil),
			match:   []string{"exact"},
			nomatch: []string{"exact!", "Exact", ""},
		},
		{
			name:    "string span",
			node:    NewTemplateLiteral("a", []TemplateSpan{{Type: StringKeyword, Literal: "b"}}),
			match:   []string{"ab", "axxb", "a b"},
			nomatch: []string{"a", "b", "xab-"},
		},
		{
			name:    "number span",
			node:    NewTemplateLiteral("v", []TemplateSpan{{Type: NumberKeyword}}),
			match:   []string{"v1", "v-12", "v3.14"},
			nomatch: []string{"v", "vx", "v1.2.3x"},
		},
		{
			name: "head is quoted",
			node: NewTemplateLiteral("a.b", []TemplateSpan{{Type: NumberKeyword}}),
			match:   []string{"a.b1"},
			nomatch: []string{"aXb1"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			re := regexp.MustCompile(tc.node.Pattern())
			for _, s := range tc.match {
				if !re.MatchString(s) {
					t.Fatalf("%q should match %s", s, tc.node.Pattern())
				}
			}
			for _, s := range tc.nomatch {
				if re.MatchString(s) {
					t.Fatalf("%q should not match %s", s, tc.node.Pattern())
				}
			}
		})
	}
}

func TestTemplateLiteral_RefinedSpanKeepsAlphabet(t *testing.T) {
	ref := NewRefinement(NumberKeyword, func(any) bool { return true }, nil)
	node := NewTemplateLiteral("n", []TemplateSpan{{Type: ref}})
	re := regexp.MustCompile(node.Pattern())
	if !re.MatchString("n42") || re.MatchString("nx") {
		t.Fatalf("refined number span should keep the number alphabet: %s", node.Pattern())
	}
}

func TestTemplateLiteral_Source(t *testing.T) {
	node := NewTemplateLiteral("id-", []TemplateSpan{{Type: NumberKeyword, Literal: "!"}})
	if got := node.Source(); got != "`id-${number}!`" {
		t.Fatalf("unexpected source rendering: %s", got)
	}
}
