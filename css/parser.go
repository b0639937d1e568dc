package css

import (
	"bytes"
	"fmt"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Parsing never fails: anything the
// tokenizer cannot make sense of produces a warning and is skipped.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			if string(data) == "@media" {
				// Flatten: our output has no media dimension, take the
				// rules and drop the query.
				p.parseBlock(parser, sheet)
			} else {
				sheet.Warnings = append(sheet.Warnings, fmt.Sprintf("skipped at-rule %s", string(data)))
				p.skipBlock(parser)
			}

		case css.AtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, fmt.Sprintf("skipped at-rule %s", string(data)))

		case css.BeginRulesetGrammar:
			selectors := splitSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser)
			if len(selectors) > 0 && len(decls) > 0 {
				sheet.Rules = append(sheet.Rules, Rule{Selectors: selectors, Declarations: decls})
			}
		}
	}
}

// parseBlock consumes rulesets until the enclosing block ends, appending
// them to the sheet.
func (p *Parser) parseBlock(parser *css.Parser, sheet *Stylesheet) {
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return
		case css.BeginRulesetGrammar:
			selectors := splitSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser)
			if len(selectors) > 0 && len(decls) > 0 {
				sheet.Rules = append(sheet.Rules, Rule{Selectors: selectors, Declarations: decls})
			}
		}
	}
}

// skipBlock consumes tokens until the current at-rule block ends.
func (p *Parser) skipBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseDeclarations collects property declarations until the ruleset ends.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls
		case css.DeclarationGrammar:
			var val strings.Builder
			for _, t := range parser.Values() {
				val.Write(t.Data)
			}
			value := strings.TrimSpace(val.String())
			if value != "" {
				decls = append(decls, Declaration{Property: string(data), Value: value})
			}
		}
	}
}

// splitSelectors reassembles the selector text and splits grouped selectors.
func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}
