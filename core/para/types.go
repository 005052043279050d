// Package para defines the paragraph-level data model shared by the
// alignment pipeline: the fixed co-official language set, paragraph
// provenance, and the raw paragraph records produced by the extraction layer.
package para

import "strings"

// Language is a two-letter code for one of the five co-official languages.
type Language string

// The fixed language set. Order here is significant only for reporting;
// alignment itself is keyed by code and order-independent.
const (
	// Spanish (castellano).
	Spanish Language = "es"

	// Catalan.
	Catalan Language = "ca"

	// Valencian.
	Valencian Language = "vl"

	// Galician.
	Galician Language = "gl"

	// Basque (euskera).
	Basque Language = "eu"
)

// Languages returns all five language codes in reporting order.
func Languages() []Language {
	return []Language{Spanish, Catalan, Valencian, Galician, Basque}
}

// Valid reports whether l is one of the five known language codes.
func (l Language) Valid() bool {
	switch l {
	case Spanish, Catalan, Valencian, Galician, Basque:
		return true
	}
	return false
}

// String returns the language code.
func (l Language) String() string {
	return string(l)
}

// Origin identifies the structural context a paragraph was extracted from.
// Only body paragraphs are eligible for alignment; everything else is noise
// by definition.
type Origin string

// Origin values.
const (
	// OriginBody is a regular paragraph in the document body.
	OriginBody Origin = "body"

	// OriginTable is a paragraph inside a table cell.
	OriginTable Origin = "table"

	// OriginHeader is a paragraph from a page header.
	OriginHeader Origin = "header"

	// OriginFooter is a paragraph from a page footer.
	OriginFooter Origin = "footer"

	// OriginFootnote is a paragraph from a footnote.
	OriginFootnote Origin = "footnote"

	// OriginCaption is an image or table caption.
	OriginCaption Origin = "caption"
)

// Body reports whether the origin is the document body.
func (o Origin) Body() bool {
	return o == OriginBody || o == ""
}

// RawParagraph is one extracted text unit from a source document.
// Values are immutable once produced by the extraction layer.
type RawParagraph struct {
	// Text is the paragraph text. May be empty.
	Text string `json:"text"`

	// DocumentID identifies the source document set.
	DocumentID string `json:"document_id"`

	// Language is the language edition this paragraph came from.
	Language Language `json:"language"`

	// Position is the 0-based index in the document's native paragraph order.
	Position int `json:"position"`

	// Origin is the structural context, when the extraction layer knows it.
	// Empty means body.
	Origin Origin `json:"origin,omitempty"`
}

// Blank reports whether the paragraph text is empty after trimming.
func (p RawParagraph) Blank() bool {
	return strings.TrimSpace(p.Text) == ""
}

// DocumentSet holds the per-language paragraph sequences for one logical
// document. Before alignment the sequences may differ in length.
type DocumentSet struct {
	// ID identifies the document set (its base file name).
	ID string `json:"id"`

	// Paragraphs maps each language to its extracted paragraph sequence,
	// in native order.
	Paragraphs map[Language][]RawParagraph `json:"paragraphs"`
}

// Lengths returns the per-language sequence lengths.
func (ds *DocumentSet) Lengths() map[Language]int {
	counts := make(map[Language]int, len(ds.Paragraphs))
	for lang, seq := range ds.Paragraphs {
		counts[lang] = len(seq)
	}
	return counts
}

// Texts returns the text of each paragraph in seq, in order.
func Texts(seq []RawParagraph) []string {
	out := make([]string, len(seq))
	for i, p := range seq {
		out[i] = p.Text
	}
	return out
}
