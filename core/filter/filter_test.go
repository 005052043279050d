package filter

import (
	"testing"

	"coalign/core/para"
)

func body(text string, pos int) para.RawParagraph {
	return para.RawParagraph{
		Text:       text,
		DocumentID: "doc-01",
		Language:   para.Spanish,
		Position:   pos,
	}
}

func TestKeepContentParagraph(t *testing.T) {
	f, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ok, reason := f.Keep(body("El Consejo de Ministros ha aprobado hoy el decreto.", 0))
	if !ok {
		t.Errorf("content paragraph should be kept, discarded with reason %q", reason)
	}
}

func TestDiscardBlank(t *testing.T) {
	f, err := New(Config{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	for _, text := range []string{"", "   ", "\t\n"} {
		ok, reason := f.Keep(body(text, 0))
		if ok {
			t.Errorf("blank paragraph %q should be discarded", text)
		}
		if reason != ReasonBlank {
			t.Errorf("blank paragraph %q discarded with reason %q, want %q", text, reason, ReasonBlank)
		}
	}
}

func TestDiscardNonBody(t *testing.T) {
	f, err := New(Config{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	p := body("Celda de tabla", 3)
	p.Origin = para.OriginTable
	ok, reason := f.Keep(p)
	if ok {
		t.Error("table paragraph should be discarded")
	}
	if reason != ReasonNonBody {
		t.Errorf("table paragraph discarded with reason %q, want %q", reason, ReasonNonBody)
	}
}

func TestKeepNonBodyWhenConfigured(t *testing.T) {
	f, err := New(Config{KeepNonBody: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	p := body("Celda de tabla", 3)
	p.Origin = para.OriginTable
	if ok, _ := f.Keep(p); !ok {
		t.Error("KeepNonBody should retain table paragraphs")
	}
}

func TestDiscardPageNumberPattern(t *testing.T) {
	f, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	for _, text := range []string{"3", "Página 3", "página 3 de 12", "12/24"} {
		ok, reason := f.Keep(body(text, 0))
		if ok {
			t.Errorf("page number %q should be discarded", text)
			continue
		}
		if reason != "page number" {
			t.Errorf("page number %q discarded with reason %q", text, reason)
		}
	}
}

func TestInvalidPatternRejected(t *testing.T) {
	_, err := New(Config{Patterns: map[string]string{`([`: "broken"}})
	if err == nil {
		t.Fatal("New should reject invalid pattern expressions")
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	f, err := New(Config{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	seq := []para.RawParagraph{
		body("uno", 0),
		body("", 1),
		body("dos", 2),
		body("  ", 3),
		body("tres", 4),
	}

	kept, dropped := f.Apply(seq)
	if len(kept) != 3 {
		t.Fatalf("Apply kept %d paragraphs, want 3", len(kept))
	}
	for i, want := range []string{"uno", "dos", "tres"} {
		if kept[i].Text != want {
			t.Errorf("kept[%d].Text = %q, want %q", i, kept[i].Text, want)
		}
	}
	if len(dropped) != 2 {
		t.Errorf("Apply dropped %d paragraphs, want 2", len(dropped))
	}
}

func TestApplyIdempotent(t *testing.T) {
	f, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	seq := []para.RawParagraph{
		body("primer párrafo", 0),
		body("Página 2", 1),
		body("segundo párrafo", 2),
	}

	once, _ := f.Apply(seq)
	twice, dropped := f.Apply(once)
	if len(dropped) != 0 {
		t.Errorf("second Apply dropped %d paragraphs, want 0", len(dropped))
	}
	if len(twice) != len(once) {
		t.Fatalf("second Apply kept %d paragraphs, want %d", len(twice), len(once))
	}
	for i := range once {
		if twice[i] != once[i] {
			t.Errorf("paragraph %d changed on second Apply", i)
		}
	}
}
