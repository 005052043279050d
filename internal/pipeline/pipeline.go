// Package pipeline wires discovery, extraction, filtering, alignment,
// persistence, consolidation, and verification into one sequential batch
// run.
//
// Document sets are processed one at a time and independently: a failure in
// one set excludes it and the run continues. Corpus-level invariant
// violations are the only fatal errors. Nothing here holds shared mutable
// state across document sets; the single ordering guarantee that matters is
// the deterministic discovery order, applied identically to every language
// during consolidation.
package pipeline

import (
	"context"
	"path/filepath"

	"coalign/core/align"
	"coalign/core/corpus"
	"coalign/core/filter"
	"coalign/core/para"
	"coalign/core/verify"
	"coalign/internal/audit"
	"coalign/internal/config"
	"coalign/internal/discover"
	"coalign/internal/docx"
	"coalign/internal/fileutil"
	"coalign/internal/logging"
	"coalign/internal/report"
)

// Pipeline executes runs for one configuration.
type Pipeline struct {
	cfg    config.Config
	filter *filter.Filter
}

// New compiles the configuration into a Pipeline.
func New(cfg config.Config) (*Pipeline, error) {
	f, err := filter.New(cfg.Filter)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, filter: f}, nil
}

// ExtractOutcome is the result of the extraction stage.
type ExtractOutcome struct {
	// RunID identifies the run in the report store.
	RunID string

	// Results holds the aligned document sets in discovery order.
	Results []*align.Result

	// Documents holds one outcome per processed document set, in order.
	Documents []report.DocumentOutcome

	// Incomplete counts discovered groups missing at least one language.
	Incomplete int
}

// Extract discovers document sets, extracts and filters their paragraphs,
// aligns each set, and persists per-document aligned files and discarded
// tails. Per-document failures are recorded and skipped.
func (p *Pipeline) Extract(ctx context.Context) (*ExtractOutcome, error) {
	store, err := report.Open(p.cfg.ReportPath())
	if err != nil {
		return nil, err
	}
	defer store.Close()

	runID, err := store.BeginRun(p.cfg.Input)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithRunID(ctx, runID)

	complete, incomplete, err := discover.Discover(p.cfg.Input, p.cfg.Discover)
	if err != nil {
		return nil, err
	}
	logging.InfoContext(ctx, "discovery_complete",
		"sets", len(complete), "incomplete", len(incomplete))
	for _, set := range incomplete {
		logging.WarnContext(ctx, "incomplete_set_skipped",
			"document", set.ID(), "missing", len(set.Missing()))
	}

	outcome := &ExtractOutcome{RunID: runID, Incomplete: len(incomplete)}
	for i := range complete {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		set := &complete[i]
		doc := p.processSet(ctx, store, runID, set)
		outcome.Documents = append(outcome.Documents, doc.outcome)
		if doc.result != nil {
			outcome.Results = append(outcome.Results, doc.result)
		}
	}

	if p.cfg.Archive {
		if err := audit.ArchiveDir(p.cfg.DiscardedDir(), p.cfg.ArchivePath()); err != nil {
			return nil, err
		}
	}

	return outcome, nil
}

type processed struct {
	outcome report.DocumentOutcome
	result  *align.Result
}

// processSet handles one document set end to end. Errors are folded into
// the returned outcome; only the report store is allowed to fail the run.
func (p *Pipeline) processSet(ctx context.Context, store *report.Store, runID string, set *discover.Set) processed {
	docID := set.ID()

	ds := &para.DocumentSet{
		ID:         docID,
		Paragraphs: make(map[para.Language][]para.RawParagraph),
	}
	filteredOut := make(map[para.Language]int)
	digests := make(map[para.Language]string)

	for _, lang := range para.Languages() {
		path := set.Paths[lang]
		raw, issues, err := docx.Extract(path, docID, lang)
		if err != nil {
			logging.DocumentExcluded(docID, err, "stage", "extract", "language", lang.String())
			outcome := report.DocumentOutcome{
				DocumentID: docID,
				Status:     report.StatusFailed,
				Reason:     err.Error(),
			}
			recordDocument(store, runID, outcome)
			return processed{outcome: outcome}
		}
		logging.ExtractionIssues(docID, lang.String(),
			issues.Images, issues.Tables, issues.Headers, issues.Footers)

		kept, dropped := p.filter.Apply(raw)
		ds.Paragraphs[lang] = kept
		filteredOut[lang] = len(dropped)

		if digest, err := report.SourceDigest(path); err == nil {
			digests[lang] = digest
		}
	}

	result, err := align.Align(ds, p.cfg.Align)
	if err != nil {
		logging.DocumentExcluded(docID, err)
		outcome := report.DocumentOutcome{
			DocumentID: docID,
			Status:     report.StatusExcluded,
			Reason:     err.Error(),
		}
		recordDocument(store, runID, outcome)
		for _, lang := range para.Languages() {
			recordLanguage(store, runID, docID, lang,
				align.Count{}, filteredOut[lang], digests[lang])
		}
		return processed{outcome: outcome}
	}

	if err := p.persistResult(result); err != nil {
		logging.DocumentExcluded(docID, err, "stage", "persist")
		outcome := report.DocumentOutcome{
			DocumentID: docID,
			Status:     report.StatusFailed,
			Reason:     err.Error(),
		}
		recordDocument(store, runID, outcome)
		return processed{outcome: outcome}
	}

	logging.DocumentAligned(docID, result.Length())
	outcome := report.DocumentOutcome{
		DocumentID: docID,
		Status:     report.StatusAligned,
		Length:     result.Length(),
		Report:     result.Report,
	}
	recordDocument(store, runID, outcome)
	for _, lang := range para.Languages() {
		recordLanguage(store, runID, docID, lang,
			result.Report[lang], filteredOut[lang], digests[lang])
	}

	return processed{outcome: outcome, result: result}
}

// persistResult writes one document's aligned files and discarded tails.
func (p *Pipeline) persistResult(result *align.Result) error {
	for _, lang := range para.Languages() {
		path := filepath.Join(p.cfg.AlignedDir(), result.DocumentID, lang.String()+".txt")
		if err := fileutil.WriteLines(path, result.Aligned[lang]); err != nil {
			return err
		}
	}
	return audit.WriteTails(p.cfg.DiscardedDir(), result.DocumentID, result.Discarded)
}

// Consolidate merges aligned results into the per-language corpus files and
// verifies the persisted output. The corpus is only written when the
// consolidation invariant holds.
func (p *Pipeline) Consolidate(results []*align.Result) (verify.Report, error) {
	c, err := corpus.Consolidate(results)
	if err != nil {
		return verify.Report{}, err
	}

	for _, lang := range para.Languages() {
		path := filepath.Join(p.cfg.CorpusDir(), lang.String()+".txt")
		if err := fileutil.WriteLines(path, c[lang]); err != nil {
			return verify.Report{}, err
		}
	}

	// Recount from disk, not from memory.
	return verify.VerifyFiles(p.cfg.CorpusDir())
}

// Run executes the full pipeline and returns the run summary.
func (p *Pipeline) Run(ctx context.Context) (*report.Summary, error) {
	outcome, err := p.Extract(ctx)
	if err != nil {
		return nil, err
	}

	verification, err := p.Consolidate(outcome.Results)
	if err != nil {
		return nil, err
	}

	store, err := report.Open(p.cfg.ReportPath())
	if err != nil {
		return nil, err
	}
	defer store.Close()
	total := 0
	if len(verification.Counts) > 0 {
		total = verification.Counts[para.Languages()[0]]
	}
	if err := store.FinishRun(outcome.RunID, total); err != nil {
		return nil, err
	}

	return &report.Summary{
		RunID:        outcome.RunID,
		Documents:    outcome.Documents,
		Incomplete:   outcome.Incomplete,
		Verification: verification,
	}, nil
}

func recordDocument(store *report.Store, runID string, outcome report.DocumentOutcome) {
	if err := store.RecordDocument(runID, outcome.DocumentID, outcome.Status, outcome.Reason, outcome.Length); err != nil {
		logging.Error("report_write_failed", "document", outcome.DocumentID, "error", err.Error())
	}
}

func recordLanguage(store *report.Store, runID, docID string, lang para.Language, counts align.Count, filteredOut int, digest string) {
	if err := store.RecordLanguage(runID, docID, lang.String(), counts.Kept, counts.Discarded, filteredOut, digest); err != nil {
		logging.Error("report_write_failed", "document", docID, "language", lang.String(), "error", err.Error())
	}
}
