// Package verify recomputes corpus paragraph counts independently of the
// pipeline's in-memory state.
//
// The verifier is purely diagnostic: it never mutates data, and VerifyFiles
// reads the persisted output rather than trusting earlier stages, so
// corruption introduced between consolidation and persistence is caught.
package verify

import (
	"path/filepath"

	"coalign/core/corpus"
	"coalign/core/para"
	"coalign/internal/fileutil"
)

// Mismatch records one pair of languages whose paragraph counts diverge.
type Mismatch struct {
	// A is the reference language.
	A para.Language `json:"a"`

	// B is the divergent language.
	B para.Language `json:"b"`

	// Expected is the reference language's count.
	Expected int `json:"expected"`

	// Actual is the divergent language's count.
	Actual int `json:"actual"`
}

// Report is the outcome of a verification pass.
type Report struct {
	// OK is true when every language has the same paragraph count.
	OK bool `json:"ok"`

	// Counts holds the recomputed per-language counts.
	Counts map[para.Language]int `json:"counts"`

	// Mismatches lists each language whose count diverges from the
	// reference language (the first in reporting order).
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// Verify checks an in-memory corpus for cross-language count divergence.
func Verify(c corpus.Corpus) Report {
	return fromCounts(c.Counts())
}

// VerifyFiles recounts the persisted per-language corpus files in dir
// (one <code>.txt per language) and reports any divergence.
func VerifyFiles(dir string) (Report, error) {
	counts := make(map[para.Language]int, len(para.Languages()))
	for _, lang := range para.Languages() {
		n, err := fileutil.CountLines(filepath.Join(dir, lang.String()+".txt"))
		if err != nil {
			return Report{}, err
		}
		counts[lang] = n
	}
	return fromCounts(counts), nil
}

func fromCounts(counts map[para.Language]int) Report {
	report := Report{OK: true, Counts: counts}

	ref := para.Languages()[0]
	expected := counts[ref]
	for _, lang := range para.Languages()[1:] {
		if actual := counts[lang]; actual != expected {
			report.OK = false
			report.Mismatches = append(report.Mismatches, Mismatch{
				A:        ref,
				B:        lang,
				Expected: expected,
				Actual:   actual,
			})
		}
	}
	return report
}
