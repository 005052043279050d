// Package filter classifies raw paragraphs as content or noise.
//
// Filtering is a pure subset operation: paragraphs are never split or merged,
// and the relative order of retained paragraphs is preserved. A paragraph is
// discarded when any rule matches. Rules are data-driven (predicate plus
// reason) so each heuristic can be tested independently and new document
// templates only need new pattern entries, not new code.
package filter

import (
	"regexp"
	"sort"
	"strings"

	"coalign/core/errors"
	"coalign/core/para"
)

// Discard reasons for the built-in structural rules. Pattern rules carry
// their reason from configuration.
const (
	// ReasonBlank marks text that is empty or whitespace-only.
	ReasonBlank = "blank"

	// ReasonNonBody marks paragraphs extracted outside the document body
	// (table cell, header, footer, footnote, caption).
	ReasonNonBody = "non-body"
)

// Rule is one discard heuristic.
type Rule struct {
	// Name identifies the rule for diagnostics.
	Name string

	// Reason is recorded when the rule fires.
	Reason string

	// Match reports whether the paragraph should be discarded.
	Match func(para.RawParagraph) bool
}

// Config is the filter configuration. It is an explicit value passed into
// NewFilter rather than package state, so runs with different rule sets can
// coexist.
type Config struct {
	// Patterns maps regular expressions to the reason recorded when the
	// trimmed paragraph text matches. Matching is case-insensitive.
	Patterns map[string]string `yaml:"patterns" json:"patterns"`

	// KeepNonBody retains paragraphs with non-body provenance instead of
	// discarding them. Off by default.
	KeepNonBody bool `yaml:"keep_non_body" json:"keep_non_body"`
}

// DefaultConfig returns the pattern set for the government document
// templates this pipeline was built for.
func DefaultConfig() Config {
	return Config{
		Patterns: map[string]string{
			`^(página|pàgina|orrialdea?)?\s*\d+(\s*(de|/)\s*\d+)?$`: "page number",
			`^(figura|irudia|táboa|taula|tabla)\s*\d+`:              "caption marker",
			`^\[(imagen|imatge|imaxe|irudia)\]$`:                    "image placeholder",
		},
	}
}

// Drop is one discarded paragraph together with the reason it was discarded.
type Drop struct {
	// Paragraph is the discarded record.
	Paragraph para.RawParagraph `json:"paragraph"`

	// Reason explains which heuristic discarded it.
	Reason string `json:"reason"`
}

// Filter applies a compiled rule set to paragraph sequences.
type Filter struct {
	rules []Rule
}

// New compiles the configuration into a Filter. Invalid pattern expressions
// are reported as validation errors.
func New(cfg Config) (*Filter, error) {
	rules := []Rule{
		{
			Name:   "blank",
			Reason: ReasonBlank,
			Match:  para.RawParagraph.Blank,
		},
	}

	if !cfg.KeepNonBody {
		rules = append(rules, Rule{
			Name:   "non-body",
			Reason: ReasonNonBody,
			Match: func(p para.RawParagraph) bool {
				return !p.Origin.Body()
			},
		})
	}

	// Sort pattern keys so rule order is deterministic across runs.
	exprs := make([]string, 0, len(cfg.Patterns))
	for expr := range cfg.Patterns {
		exprs = append(exprs, expr)
	}
	sort.Strings(exprs)

	for _, expr := range exprs {
		re, err := regexp.Compile(`(?i)` + expr)
		if err != nil {
			return nil, &errors.ValidationError{
				Field:   "patterns",
				Value:   expr,
				Message: "invalid pattern expression",
				Err:     err,
			}
		}
		rules = append(rules, patternRule(re, cfg.Patterns[expr]))
	}

	return &Filter{rules: rules}, nil
}

func patternRule(re *regexp.Regexp, reason string) Rule {
	return Rule{
		Name:   "pattern:" + re.String(),
		Reason: reason,
		Match: func(p para.RawParagraph) bool {
			// Trim so patterns can anchor on ^ and $.
			return re.MatchString(strings.TrimSpace(p.Text))
		},
	}
}

// Keep reports whether the paragraph is content. When it is not, the second
// return value carries the discard reason.
func (f *Filter) Keep(p para.RawParagraph) (bool, string) {
	for _, rule := range f.rules {
		if rule.Match(p) {
			return false, rule.Reason
		}
	}
	return true, ""
}

// Apply filters a paragraph sequence, returning the retained paragraphs in
// original order and the discarded ones with their reasons.
func (f *Filter) Apply(seq []para.RawParagraph) ([]para.RawParagraph, []Drop) {
	kept := make([]para.RawParagraph, 0, len(seq))
	var dropped []Drop
	for _, p := range seq {
		if ok, reason := f.Keep(p); ok {
			kept = append(kept, p)
		} else {
			dropped = append(dropped, Drop{Paragraph: p, Reason: reason})
		}
	}
	return kept, dropped
}
