package ui

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

//go:embed default.css
var defaultCSS string

// DefaultStylesheet returns the built-in sidebar stylesheet.
func DefaultStylesheet() *Stylesheet {
	sheet, err := ParseCSS(defaultCSS)
	if err != nil {
		panic(fmt.Sprintf("ui: default stylesheet: %v", err))
	}
	return sheet
}

// ParseCSS parses a primitive stylesheet: selectors .class, #id or a node type, and blocks of "key: value;".
// Comma-separated selector lists produce one rule per selector; selectors with combinators are skipped.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(content), false)
	var selectors []string
	var props map[string]string
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.Err() == io.EOF {
				return sheet, nil
			}
			return nil, fmt.Errorf("ui: parse css: %w", p.Err())
		case css.QualifiedRuleGrammar:
			selectors = append(selectors, splitSelectors(p.Values())...)
		case css.BeginRulesetGrammar:
			selectors = append(selectors, splitSelectors(p.Values())...)
			props = make(map[string]string)
		case css.DeclarationGrammar:
			if props != nil {
				props[strings.ToLower(string(data))] = joinTokens(p.Values())
			}
		case css.EndRulesetGrammar:
			for _, sel := range selectors {
				if simpleSelector(sel) {
					sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
				}
			}
			selectors, props = nil, nil
		}
	}
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

// splitSelectors splits a selector list on its comma tokens.
func splitSelectors(tokens []css.Token) []string {
	var out []string
	start := 0
	for i, t := range tokens {
		if t.TokenType == css.CommaToken {
			out = append(out, joinTokens(tokens[start:i]))
			start = i + 1
		}
	}
	return append(out, joinTokens(tokens[start:]))
}

func simpleSelector(sel string) bool {
	return sel != "" && !strings.ContainsAny(sel, " \t\n>+~,:[") && !strings.ContainsAny(sel[1:], ".#")
}
