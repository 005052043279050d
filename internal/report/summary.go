package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"coalign/core/align"
	"coalign/core/para"
	"coalign/core/verify"
)

// DocumentOutcome is the per-document line of a run summary.
type DocumentOutcome struct {
	// DocumentID identifies the document set.
	DocumentID string

	// Status is one of the Status* constants.
	Status string

	// Length is the aligned paragraph count, zero unless aligned.
	Length int

	// Reason is the exclusion or failure reason, empty when aligned.
	Reason string

	// Report holds per-language counts when the document was aligned.
	Report align.Report
}

// Summary aggregates a whole run for console output.
type Summary struct {
	// RunID is the run identifier.
	RunID string

	// Documents holds every processed document set in pipeline order.
	Documents []DocumentOutcome

	// Incomplete counts discovered groups missing at least one language.
	Incomplete int

	// Verification is the final corpus verification report.
	Verification verify.Report
}

// Counts returns the number of aligned, excluded, and failed document sets.
func (s *Summary) Counts() (aligned, excluded, failed int) {
	for _, doc := range s.Documents {
		switch doc.Status {
		case StatusAligned:
			aligned++
		case StatusExcluded:
			excluded++
		case StatusFailed:
			failed++
		}
	}
	return
}

// Render formats the summary as console text: a per-document table followed
// by per-language totals and the verification verdict.
func (s *Summary) Render() string {
	var b strings.Builder

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Document", "Status", "Paragraphs", "Reason"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	for _, doc := range s.Documents {
		length := ""
		if doc.Status == StatusAligned {
			length = fmt.Sprintf("%d", doc.Length)
		}
		tw.AppendRow(table.Row{doc.DocumentID, doc.Status, length, doc.Reason})
	}
	b.WriteString(tw.Render())
	b.WriteString("\n\n")

	aligned, excluded, failed := s.Counts()
	fmt.Fprintf(&b, "Document sets: %d aligned, %d excluded, %d failed", aligned, excluded, failed)
	if s.Incomplete > 0 {
		fmt.Fprintf(&b, ", %d incomplete (skipped)", s.Incomplete)
	}
	b.WriteString("\n\n")

	lt := table.NewWriter()
	lt.SetStyle(table.StyleRounded)
	lt.AppendHeader(table.Row{"Language", "Paragraphs"})
	lt.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	for _, lang := range para.Languages() {
		lt.AppendRow(table.Row{lang.String(), s.Verification.Counts[lang]})
	}
	b.WriteString(lt.Render())
	b.WriteString("\n\n")

	if s.Verification.OK {
		b.WriteString("Verification: OK, all languages aligned\n")
	} else {
		b.WriteString("Verification: FAILED\n")
		for _, m := range s.Verification.Mismatches {
			fmt.Fprintf(&b, "  %s has %d paragraphs, %s has %d\n", m.A, m.Expected, m.B, m.Actual)
		}
	}

	return b.String()
}
