package align

import (
	"errors"
	"fmt"
	"testing"

	coalerr "coalign/core/errors"
	"coalign/core/para"
)

// set builds a document set with the given filtered paragraph count per
// language.
func set(id string, counts map[para.Language]int) *para.DocumentSet {
	ds := &para.DocumentSet{
		ID:         id,
		Paragraphs: make(map[para.Language][]para.RawParagraph),
	}
	for lang, n := range counts {
		seq := make([]para.RawParagraph, n)
		for i := range seq {
			seq[i] = para.RawParagraph{
				Text:       fmt.Sprintf("%s-%s-%d", id, lang, i),
				DocumentID: id,
				Language:   lang,
				Position:   i,
			}
		}
		ds.Paragraphs[lang] = seq
	}
	return ds
}

func TestAlignTrimsToShortest(t *testing.T) {
	ds := set("doc-01", map[para.Language]int{
		para.Spanish:   10,
		para.Catalan:   10,
		para.Valencian: 9,
		para.Galician:  10,
		para.Basque:    10,
	})

	result, err := Align(ds, Config{})
	if err != nil {
		t.Fatalf("Align returned error: %v", err)
	}

	if result.Length() != 9 {
		t.Errorf("aligned length = %d, want 9", result.Length())
	}
	for _, lang := range para.Languages() {
		if got := len(result.Aligned[lang]); got != 9 {
			t.Errorf("aligned[%s] length = %d, want 9", lang, got)
		}
	}

	wantDiscarded := map[para.Language]int{
		para.Spanish:   1,
		para.Catalan:   1,
		para.Valencian: 0,
		para.Galician:  1,
		para.Basque:    1,
	}
	for lang, want := range wantDiscarded {
		if got := len(result.Discarded[lang]); got != want {
			t.Errorf("discarded[%s] length = %d, want %d", lang, got, want)
		}
		if c := result.Report[lang]; c.Kept != 9 || c.Discarded != want {
			t.Errorf("report[%s] = %+v, want kept=9 discarded=%d", lang, c, want)
		}
	}
}

func TestAlignPreservesOrder(t *testing.T) {
	ds := set("doc-02", map[para.Language]int{
		para.Spanish:   3,
		para.Catalan:   3,
		para.Valencian: 3,
		para.Galician:  3,
		para.Basque:    3,
	})

	result, err := Align(ds, Config{})
	if err != nil {
		t.Fatalf("Align returned error: %v", err)
	}

	for i, text := range result.Aligned[para.Galician] {
		want := fmt.Sprintf("doc-02-gl-%d", i)
		if text != want {
			t.Errorf("aligned[gl][%d] = %q, want %q", i, text, want)
		}
	}
}

func TestAlignMissingLanguage(t *testing.T) {
	ds := set("doc-03", map[para.Language]int{
		para.Spanish:   5,
		para.Catalan:   5,
		para.Valencian: 5,
		para.Galician:  5,
	})

	_, err := Align(ds, Config{})
	if !errors.Is(err, coalerr.ErrMissingLanguage) {
		t.Fatalf("Align error = %v, want ErrMissingLanguage", err)
	}

	var alignErr *coalerr.AlignmentError
	if !errors.As(err, &alignErr) {
		t.Fatal("error should be an *AlignmentError")
	}
	if alignErr.Language != "eu" {
		t.Errorf("error names language %q, want eu", alignErr.Language)
	}
}

func TestAlignZeroLengthLanguage(t *testing.T) {
	ds := set("doc-04", map[para.Language]int{
		para.Spanish:   0,
		para.Catalan:   5,
		para.Valencian: 5,
		para.Galician:  5,
		para.Basque:    5,
	})

	_, err := Align(ds, Config{})
	if !errors.Is(err, coalerr.ErrZeroLengthLanguage) {
		t.Fatalf("Align error = %v, want ErrZeroLengthLanguage", err)
	}

	var alignErr *coalerr.AlignmentError
	if !errors.As(err, &alignErr) {
		t.Fatal("error should be an *AlignmentError")
	}
	if alignErr.Language != "es" {
		t.Errorf("error names language %q, want es", alignErr.Language)
	}
}

func TestAlignZeroLengthDowngraded(t *testing.T) {
	ds := set("doc-05", map[para.Language]int{
		para.Spanish:   0,
		para.Catalan:   5,
		para.Valencian: 5,
		para.Galician:  5,
		para.Basque:    5,
	})

	_, err := Align(ds, Config{AllowZeroLength: true})
	if !errors.Is(err, coalerr.ErrEmptyAlignment) {
		t.Fatalf("Align error = %v, want ErrEmptyAlignment", err)
	}
	if errors.Is(err, coalerr.ErrZeroLengthLanguage) {
		t.Error("AllowZeroLength should downgrade the zero-length check")
	}
}

func TestAlignEmptyAlignment(t *testing.T) {
	ds := set("doc-06", map[para.Language]int{
		para.Spanish:   0,
		para.Catalan:   0,
		para.Valencian: 0,
		para.Galician:  0,
		para.Basque:    0,
	})

	_, err := Align(ds, Config{})
	if !errors.Is(err, coalerr.ErrEmptyAlignment) {
		t.Fatalf("Align error = %v, want ErrEmptyAlignment", err)
	}
}

func TestAlignMinLengthThreshold(t *testing.T) {
	ds := set("doc-07", map[para.Language]int{
		para.Spanish:   2,
		para.Catalan:   2,
		para.Valencian: 2,
		para.Galician:  2,
		para.Basque:    2,
	})

	if _, err := Align(ds, Config{MinLength: 3}); !errors.Is(err, coalerr.ErrEmptyAlignment) {
		t.Errorf("Align below MinLength should fail with ErrEmptyAlignment, got %v", err)
	}
	if _, err := Align(ds, Config{MinLength: 2}); err != nil {
		t.Errorf("Align at MinLength should succeed, got %v", err)
	}
}
