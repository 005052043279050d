// Package align implements positional paragraph alignment for one document
// set.
//
// Alignment is a deliberate simplification: paragraphs are matched purely by
// position, every language is truncated to the shortest edition's paragraph
// count, and no semantic re-matching or reordering is attempted. Human
// pre-review of the source documents is assumed to have guaranteed that
// paragraph N of one edition translates paragraph N of every other. The
// truncated tail is returned separately so nothing is discarded silently.
package align

import (
	"coalign/core/errors"
	"coalign/core/para"
)

// Config controls alignment policy. An explicit value is passed into Align
// rather than read from package state so runs with different policies can
// coexist.
type Config struct {
	// MinLength is the smallest common paragraph count accepted for a
	// document set. Values below 1 mean 1.
	MinLength int `yaml:"min_length" json:"min_length"`

	// AllowZeroLength downgrades the zero-length language check: instead of
	// the elevated ErrZeroLengthLanguage, a document set with one empty
	// language fails with the ordinary ErrEmptyAlignment. The strict default
	// exists because a single empty language usually means an extraction bug,
	// not legitimate trimming.
	AllowZeroLength bool `yaml:"allow_zero_length" json:"allow_zero_length"`
}

// Count is the per-language outcome of aligning one document set.
type Count struct {
	// Kept is the number of paragraphs in the aligned sequence.
	Kept int `json:"kept"`

	// Discarded is the number of tail paragraphs beyond the common length.
	Discarded int `json:"discarded"`
}

// Report maps each language to its alignment counts.
type Report map[para.Language]Count

// Result is the aligned output of one document set. All Aligned sequences
// have identical length; element i of each corresponds to element i of every
// other.
type Result struct {
	// DocumentID identifies the document set.
	DocumentID string `json:"document_id"`

	// Aligned holds the paragraph text per language, trimmed to the common
	// length, in original order.
	Aligned map[para.Language][]string `json:"aligned"`

	// Discarded holds the tail beyond the common length per language.
	// Retained for audit, never merged into the corpus.
	Discarded map[para.Language][]para.RawParagraph `json:"discarded"`

	// Report gives kept/discarded counts per language.
	Report Report `json:"report"`
}

// Length returns the common aligned length.
func (r *Result) Length() int {
	for _, seq := range r.Aligned {
		return len(seq)
	}
	return 0
}

// Align trims every language of the document set to the shortest filtered
// sequence. The input sequences must already be filtered; Align never
// reorders, splits, or merges paragraphs.
//
// Per-document failures (missing language, zero-length language, empty
// alignment) are returned as *errors.AlignmentError wrapping the matching
// sentinel; the caller is expected to exclude the document and continue.
func Align(set *para.DocumentSet, cfg Config) (*Result, error) {
	for _, lang := range para.Languages() {
		if _, ok := set.Paragraphs[lang]; !ok {
			return nil, errors.NewAlignment(set.ID, lang.String(), errors.ErrMissingLanguage)
		}
	}

	minLen := -1
	maxLen := 0
	var shortest para.Language
	for _, lang := range para.Languages() {
		n := len(set.Paragraphs[lang])
		if minLen < 0 || n < minLen {
			minLen = n
			shortest = lang
		}
		if n > maxLen {
			maxLen = n
		}
	}

	if minLen == 0 && maxLen > 0 && !cfg.AllowZeroLength {
		return nil, errors.NewAlignment(set.ID, shortest.String(), errors.ErrZeroLengthLanguage)
	}

	threshold := cfg.MinLength
	if threshold < 1 {
		threshold = 1
	}
	if minLen < threshold {
		return nil, errors.NewAlignment(set.ID, "", errors.ErrEmptyAlignment)
	}

	result := &Result{
		DocumentID: set.ID,
		Aligned:    make(map[para.Language][]string, len(set.Paragraphs)),
		Discarded:  make(map[para.Language][]para.RawParagraph, len(set.Paragraphs)),
		Report:     make(Report, len(set.Paragraphs)),
	}

	for _, lang := range para.Languages() {
		seq := set.Paragraphs[lang]
		result.Aligned[lang] = para.Texts(seq[:minLen])
		result.Discarded[lang] = seq[minLen:]
		result.Report[lang] = Count{
			Kept:      minLen,
			Discarded: len(seq) - minLen,
		}
	}

	return result, nil
}
