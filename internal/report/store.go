// Package report records pipeline run outcomes.
//
// Every run gets a row in a SQLite database: which document sets were
// aligned, which were excluded and why, and per-language kept/discarded
// counts together with a BLAKE3 digest of each source file so a later audit
// can tell whether the inputs changed between runs.
package report

import (
	"database/sql"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"coalign/core/errors"
	"coalign/core/sqlite"
)

// Document statuses.
const (
	// StatusAligned marks a document set that contributed to the corpus.
	StatusAligned = "aligned"

	// StatusExcluded marks a document set excluded by alignment policy.
	StatusExcluded = "excluded"

	// StatusFailed marks a document set that failed extraction.
	StatusFailed = "failed"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	input         TEXT NOT NULL,
	started_at    TEXT NOT NULL,
	finished_at   TEXT,
	corpus_length INTEGER
);
CREATE TABLE IF NOT EXISTS documents (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	document TEXT NOT NULL,
	status   TEXT NOT NULL,
	error    TEXT NOT NULL DEFAULT '',
	length   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, document)
);
CREATE TABLE IF NOT EXISTS language_counts (
	run_id        TEXT NOT NULL REFERENCES runs(id),
	document      TEXT NOT NULL,
	language      TEXT NOT NULL,
	kept          INTEGER NOT NULL,
	discarded     INTEGER NOT NULL,
	filtered_out  INTEGER NOT NULL,
	source_digest TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, document, language)
);
`

// Store persists run reports to SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the report database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.NewIO("create directory", filepath.Dir(path), err)
	}

	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating report schema")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun records the start of a pipeline run and returns its ID.
func (s *Store) BeginRun(input string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, input, started_at) VALUES (?, ?, ?)`,
		id, input, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", errors.Wrap(err, "recording run start")
	}
	return id, nil
}

// FinishRun records the end of a run and the final corpus length.
func (s *Store) FinishRun(runID string, corpusLength int) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, corpus_length = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), corpusLength, runID,
	)
	return errors.Wrap(err, "recording run finish")
}

// RecordDocument records the outcome of one document set.
func (s *Store) RecordDocument(runID, docID, status, errMsg string, length int) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO documents (run_id, document, status, error, length)
		 VALUES (?, ?, ?, ?, ?)`,
		runID, docID, status, errMsg, length,
	)
	return errors.Wrapf(err, "recording document %s", docID)
}

// RecordLanguage records the per-language counts of one document set.
func (s *Store) RecordLanguage(runID, docID, language string, kept, discarded, filteredOut int, digest string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO language_counts
		 (run_id, document, language, kept, discarded, filtered_out, source_digest)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, docID, language, kept, discarded, filteredOut, digest,
	)
	return errors.Wrapf(err, "recording counts for %s/%s", docID, language)
}

// DocumentStatuses returns document ID to status for one run.
func (s *Store) DocumentStatuses(runID string) (map[string]string, error) {
	rows, err := s.db.Query(`SELECT document, status FROM documents WHERE run_id = ?`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}
	defer rows.Close()

	statuses := make(map[string]string)
	for rows.Next() {
		var doc, status string
		if err := rows.Scan(&doc, &status); err != nil {
			return nil, errors.Wrap(err, "scanning document row")
		}
		statuses[doc] = status
	}
	return statuses, rows.Err()
}

// LanguageTotals returns the summed kept counts per language for one run,
// counting only aligned documents.
func (s *Store) LanguageTotals(runID string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT lc.language, SUM(lc.kept)
		 FROM language_counts lc
		 JOIN documents d ON d.run_id = lc.run_id AND d.document = lc.document
		 WHERE lc.run_id = ? AND d.status = ?
		 GROUP BY lc.language`,
		runID, StatusAligned,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying language totals")
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var lang string
		var kept int
		if err := rows.Scan(&lang, &kept); err != nil {
			return nil, errors.Wrap(err, "scanning totals row")
		}
		totals[lang] = kept
	}
	return totals, rows.Err()
}

// SourceDigest computes the BLAKE3 digest of a source file, hex encoded.
func SourceDigest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIO("read", path, err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
