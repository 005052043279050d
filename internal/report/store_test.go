package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coalign/core/para"
	"coalign/core/verify"
)

func open(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "report.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunRoundTrip(t *testing.T) {
	store := open(t)

	runID, err := store.BeginRun("/data/docs")
	if err != nil {
		t.Fatalf("BeginRun returned error: %v", err)
	}
	if runID == "" {
		t.Fatal("BeginRun returned an empty run ID")
	}

	if err := store.RecordDocument(runID, "Actualidad/nota", StatusAligned, "", 9); err != nil {
		t.Fatalf("RecordDocument returned error: %v", err)
	}
	if err := store.RecordDocument(runID, "Consejo/acta", StatusExcluded, "zero-length language", 0); err != nil {
		t.Fatalf("RecordDocument returned error: %v", err)
	}
	if err := store.FinishRun(runID, 9); err != nil {
		t.Fatalf("FinishRun returned error: %v", err)
	}

	statuses, err := store.DocumentStatuses(runID)
	if err != nil {
		t.Fatalf("DocumentStatuses returned error: %v", err)
	}
	if statuses["Actualidad/nota"] != StatusAligned {
		t.Errorf("status = %q, want aligned", statuses["Actualidad/nota"])
	}
	if statuses["Consejo/acta"] != StatusExcluded {
		t.Errorf("status = %q, want excluded", statuses["Consejo/acta"])
	}
}

func TestLanguageTotalsOnlyAligned(t *testing.T) {
	store := open(t)

	runID, err := store.BeginRun("/data/docs")
	if err != nil {
		t.Fatalf("BeginRun returned error: %v", err)
	}

	if err := store.RecordDocument(runID, "doc-a", StatusAligned, "", 9); err != nil {
		t.Fatalf("RecordDocument: %v", err)
	}
	if err := store.RecordDocument(runID, "doc-b", StatusExcluded, "empty alignment", 0); err != nil {
		t.Fatalf("RecordDocument: %v", err)
	}
	for _, lang := range para.Languages() {
		if err := store.RecordLanguage(runID, "doc-a", lang.String(), 9, 1, 2, "digest"); err != nil {
			t.Fatalf("RecordLanguage: %v", err)
		}
		if err := store.RecordLanguage(runID, "doc-b", lang.String(), 0, 0, 0, ""); err != nil {
			t.Fatalf("RecordLanguage: %v", err)
		}
	}

	totals, err := store.LanguageTotals(runID)
	if err != nil {
		t.Fatalf("LanguageTotals returned error: %v", err)
	}
	for _, lang := range para.Languages() {
		if totals[lang.String()] != 9 {
			t.Errorf("totals[%s] = %d, want 9", lang, totals[lang.String()])
		}
	}
}

func TestSourceDigestStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")
	if err := os.WriteFile(path, []byte("contenido"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	first, err := SourceDigest(path)
	if err != nil {
		t.Fatalf("SourceDigest returned error: %v", err)
	}
	second, err := SourceDigest(path)
	if err != nil {
		t.Fatalf("SourceDigest returned error: %v", err)
	}
	if first != second {
		t.Error("digest should be deterministic")
	}
	if len(first) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(first))
	}
}

func TestSummaryRender(t *testing.T) {
	s := &Summary{
		RunID: "run-1",
		Documents: []DocumentOutcome{
			{DocumentID: "Actualidad/nota", Status: StatusAligned, Length: 9},
			{DocumentID: "Consejo/acta", Status: StatusExcluded, Reason: "zero-length language"},
		},
		Incomplete: 1,
		Verification: verify.Report{
			OK: true,
			Counts: map[para.Language]int{
				para.Spanish: 9, para.Catalan: 9, para.Valencian: 9, para.Galician: 9, para.Basque: 9,
			},
		},
	}

	out := s.Render()
	for _, want := range []string{
		"Actualidad/nota",
		"zero-length language",
		"1 aligned, 1 excluded, 0 failed",
		"1 incomplete",
		"Verification: OK",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryRenderMismatch(t *testing.T) {
	s := &Summary{
		Verification: verify.Report{
			OK:     false,
			Counts: map[para.Language]int{para.Spanish: 15, para.Catalan: 14},
			Mismatches: []verify.Mismatch{
				{A: para.Spanish, B: para.Catalan, Expected: 15, Actual: 14},
			},
		},
	}

	out := s.Render()
	if !strings.Contains(out, "Verification: FAILED") {
		t.Errorf("summary should report failure:\n%s", out)
	}
	if !strings.Contains(out, "es has 15 paragraphs, ca has 14") {
		t.Errorf("summary should list the mismatch:\n%s", out)
	}
}
