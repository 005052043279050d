// Package corpus consolidates the aligned paragraph sequences of all
// document sets into one ordered sequence per language.
//
// The caller supplies document results in a fixed, deterministic order and
// the same order is applied to every language. That single invariant is what
// guarantees line N of each final corpus file is mutually a translation
// across all five languages.
package corpus

import (
	"coalign/core/align"
	"coalign/core/errors"
	"coalign/core/para"
)

// Corpus holds the consolidated paragraph sequence per language.
type Corpus map[para.Language][]string

// Counts returns the per-language paragraph counts.
func (c Corpus) Counts() map[para.Language]int {
	counts := make(map[para.Language]int, len(c))
	for lang, seq := range c {
		counts[lang] = len(seq)
	}
	return counts
}

// Length returns the corpus length, which is identical for all languages in
// any Corpus produced by Consolidate.
func (c Corpus) Length() int {
	for _, seq := range c {
		return len(seq)
	}
	return 0
}

// Consolidate concatenates the aligned sequences of every document result,
// in the order given, identically for all five languages.
//
// The equal-length post-condition is checked before returning. A violation
// is a fatal *errors.ConsolidationError: the corpus must never be persisted
// in an inconsistent state, and the error is never silently corrected.
func Consolidate(results []*align.Result) (Corpus, error) {
	c := make(Corpus, len(para.Languages()))
	for _, lang := range para.Languages() {
		c[lang] = []string{}
	}

	for _, result := range results {
		for _, lang := range para.Languages() {
			c[lang] = append(c[lang], result.Aligned[lang]...)
		}
	}

	want := -1
	for _, lang := range para.Languages() {
		n := len(c[lang])
		if want < 0 {
			want = n
			continue
		}
		if n != want {
			counts := make(map[string]int, len(c))
			for l, seq := range c {
				counts[l.String()] = len(seq)
			}
			return nil, errors.NewConsolidation(counts)
		}
	}

	return c, nil
}
