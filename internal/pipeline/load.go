package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"coalign/core/align"
	"coalign/core/errors"
	"coalign/core/para"
	"coalign/internal/fileutil"
	"coalign/internal/logging"
)

// LoadAligned reads previously persisted per-document aligned files back
// from dir, in lexical document order. It exists so consolidation can run as
// a separate step from extraction, reading the same files extraction wrote.
//
// A document directory missing a language file is excluded with a warning.
// Mismatched per-document lengths are trimmed to the shortest language, also
// with a warning, so a hand-edited document cannot scramble the corpus
// alignment downstream.
func LoadAligned(dir string) ([]*align.Result, error) {
	var docDirs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Base(path) == para.Spanish.String()+".txt" {
			docDirs = append(docDirs, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIO("read directory", dir, err)
		}
		return nil, errors.Wrapf(err, "scanning %s", dir)
	}
	sort.Strings(docDirs)

	var results []*align.Result
	for _, docDir := range docDirs {
		docID, err := filepath.Rel(dir, docDir)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s", docDir)
		}

		result, ok := loadDocument(docDir, docID)
		if ok {
			results = append(results, result)
		}
	}
	return results, nil
}

func loadDocument(docDir, docID string) (*align.Result, bool) {
	sequences := make(map[para.Language][]string)
	minLen := -1
	for _, lang := range para.Languages() {
		lines, err := fileutil.ReadLines(filepath.Join(docDir, lang.String()+".txt"))
		if err != nil {
			logging.Warn("aligned_document_skipped",
				"document", docID, "language", lang.String(), "error", err.Error())
			return nil, false
		}
		sequences[lang] = lines
		if minLen < 0 || len(lines) < minLen {
			minLen = len(lines)
		}
	}

	result := &align.Result{
		DocumentID: docID,
		Aligned:    make(map[para.Language][]string, len(sequences)),
		Report:     make(align.Report, len(sequences)),
	}
	for _, lang := range para.Languages() {
		seq := sequences[lang]
		if len(seq) != minLen {
			logging.Warn("aligned_length_mismatch",
				"document", docID, "language", lang.String(),
				"length", len(seq), "trimmed_to", minLen)
			seq = seq[:minLen]
		}
		result.Aligned[lang] = seq
		result.Report[lang] = align.Count{Kept: minLen}
	}
	return result, true
}
