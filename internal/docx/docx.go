// Package docx extracts paragraph text from DOCX documents.
//
// A DOCX file is a zip archive whose main body lives in word/document.xml.
// Extraction walks the body in native order and emits one RawParagraph per
// <w:p> element, concatenating its <w:t> runs. Paragraphs inside <w:tbl>
// carry table provenance so the filter can discard them. Images, tables,
// and header/footer parts are counted and reported as extraction issues;
// their content never enters the paragraph stream.
package docx

import (
	"archive/zip"
	"io"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"coalign/core/errors"
	"coalign/core/para"
)

// Precompiled selectors for the document parts we query repeatedly.
var (
	selParagraphs    = xpath.MustCompile("//w:body//w:p")
	selTables        = xpath.MustCompile("//w:body//w:tbl")
	selRuns          = xpath.MustCompile(".//w:t")
	selRelationships = xpath.MustCompile("//Relationship")
)

// Issues counts the non-text elements found in a document.
type Issues struct {
	// Images is the number of image relationships in the document part.
	Images int `json:"images"`

	// Tables is the number of tables in the body.
	Tables int `json:"tables"`

	// Headers is the number of header parts in the archive.
	Headers int `json:"headers"`

	// Footers is the number of footer parts in the archive.
	Footers int `json:"footers"`
}

var (
	headerPart = regexp.MustCompile(`^word/header\d*\.xml$`)
	footerPart = regexp.MustCompile(`^word/footer\d*\.xml$`)
)

// Extract reads the DOCX file at path and returns its paragraphs in native
// order, tagged with the given document ID and language.
func Extract(path, docID string, lang para.Language) ([]para.RawParagraph, Issues, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, Issues{}, errors.NewIO("open", path, err)
	}
	defer r.Close()

	paragraphs, issues, err := extract(&r.Reader, docID, lang)
	if err != nil {
		return nil, Issues{}, errors.Wrapf(err, "extracting %s", path)
	}
	return paragraphs, issues, nil
}

// ExtractReader is Extract for an in-memory archive.
func ExtractReader(ra io.ReaderAt, size int64, docID string, lang para.Language) ([]para.RawParagraph, Issues, error) {
	r, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, Issues{}, errors.NewParse("DOCX", "", err.Error())
	}
	return extract(r, docID, lang)
}

func extract(r *zip.Reader, docID string, lang para.Language) ([]para.RawParagraph, Issues, error) {
	var issues Issues

	var document *zip.File
	var rels *zip.File
	for _, f := range r.File {
		switch {
		case f.Name == "word/document.xml":
			document = f
		case f.Name == "word/_rels/document.xml.rels":
			rels = f
		case headerPart.MatchString(f.Name):
			issues.Headers++
		case footerPart.MatchString(f.Name):
			issues.Footers++
		}
	}
	if document == nil {
		return nil, Issues{}, errors.NewParse("DOCX", "", "missing word/document.xml")
	}

	root, err := parsePart(document)
	if err != nil {
		return nil, Issues{}, err
	}

	if rels != nil {
		relRoot, err := parsePart(rels)
		if err != nil {
			return nil, Issues{}, err
		}
		for _, rel := range xmlquery.QuerySelectorAll(relRoot, selRelationships) {
			if strings.Contains(strings.ToLower(rel.SelectAttr("Target")), "image") {
				issues.Images++
			}
		}
	}

	issues.Tables = len(xmlquery.QuerySelectorAll(root, selTables))

	nodes := xmlquery.QuerySelectorAll(root, selParagraphs)

	paragraphs := make([]para.RawParagraph, 0, len(nodes))
	for i, node := range nodes {
		origin := para.OriginBody
		if insideTable(node) {
			origin = para.OriginTable
		}
		paragraphs = append(paragraphs, para.RawParagraph{
			Text:       paragraphText(node),
			DocumentID: docID,
			Language:   lang,
			Position:   i,
			Origin:     origin,
		})
	}

	return paragraphs, issues, nil
}

func parsePart(f *zip.File) (*xmlquery.Node, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, errors.NewIO("open", f.Name, err)
	}
	defer rc.Close()

	root, err := xmlquery.Parse(rc)
	if err != nil {
		return nil, errors.NewParse("XML", f.Name, err.Error())
	}
	return root, nil
}

// paragraphText concatenates the <w:t> runs of a paragraph node.
func paragraphText(p *xmlquery.Node) string {
	var b strings.Builder
	for _, t := range xmlquery.QuerySelectorAll(p, selRuns) {
		b.WriteString(t.InnerText())
	}
	return strings.TrimSpace(b.String())
}

// insideTable reports whether the node has a <w:tbl> ancestor.
func insideTable(n *xmlquery.Node) bool {
	for parent := n.Parent; parent != nil; parent = parent.Parent {
		if parent.Type == xmlquery.ElementNode && parent.Data == "tbl" {
			return true
		}
	}
	return false
}
