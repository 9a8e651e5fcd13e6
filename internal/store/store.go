package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    scope_id TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    raw_text TEXT NOT NULL DEFAULT '',
    normalized_text TEXT,
    similarity_score REAL NOT NULL DEFAULT 0,
    flagged INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS pairwise_results (
    source_id TEXT NOT NULL,
    compared_id TEXT NOT NULL,
    score REAL NOT NULL,
    computed_at TIMESTAMP NOT NULL,
    PRIMARY KEY (source_id, compared_id)
);

CREATE INDEX IF NOT EXISTS idx_documents_scope ON documents(scope_id);
`

// Document is the persisted view of one submission. NormalizedText empty
// means the document is not yet comparable.
type Document struct {
	ID             string
	ScopeID        string
	Title          string
	RawText        string
	NormalizedText string
	Score          float64
	Flagged        bool
	CreatedAt      time.Time
}

// PairwiseResult is one directional similarity row: source is X% similar
// to compared.
type PairwiseResult struct {
	SourceID   string
	ComparedID string
	Score      float64
	ComputedAt time.Time
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) InsertDocument(ctx context.Context, doc Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents(id, scope_id, title, raw_text, normalized_text, similarity_score, flagged, created_at)
		 VALUES(?,?,?,?,?,?,?,?)`,
		doc.ID, doc.ScopeID, doc.Title, doc.RawText, nullable(doc.NormalizedText), doc.Score, boolToInt(doc.Flagged), doc.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *Store) Document(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, scope_id, title, raw_text, normalized_text, similarity_score, flagged, created_at
		 FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", id, err)
	}
	return doc, nil
}

// ComparisonCorpus returns the documents a new submission in scopeID is
// compared against: same scope, non-empty normalized text, excluding the
// submission itself, in creation order.
func (s *Store) ComparisonCorpus(ctx context.Context, scopeID, excludeID string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scope_id, title, raw_text, normalized_text, similarity_score, flagged, created_at
		 FROM documents
		 WHERE scope_id = ? AND id <> ? AND normalized_text IS NOT NULL AND normalized_text <> ''
		 ORDER BY created_at, id`, scopeID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan corpus row: %w", err)
		}
		out = append(out, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corpus: %w", err)
	}
	return out, nil
}

// DocumentIDs lists every document id in a scope in creation order,
// comparable or not. The recheck pass walks this list.
func (s *Store) DocumentIDs(ctx context.Context, scopeID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM documents WHERE scope_id = ? ORDER BY created_at, id`, scopeID)
	if err != nil {
		return nil, fmt.Errorf("query document ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan document id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document ids: %w", err)
	}
	return out, nil
}

// UpsertPairwiseResult stores one directional result, replacing any prior
// row for the same (source, compared) pair.
func (s *Store) UpsertPairwiseResult(ctx context.Context, sourceID, comparedID string, score float64, at time.Time) error {
	if sourceID == comparedID {
		return fmt.Errorf("pairwise result source and compared must differ: %s", sourceID)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pairwise_results(source_id, compared_id, score, computed_at) VALUES(?,?,?,?)
		 ON CONFLICT(source_id, compared_id) DO UPDATE SET score = excluded.score, computed_at = excluded.computed_at`,
		sourceID, comparedID, score, at.UTC())
	if err != nil {
		return fmt.Errorf("upsert pairwise result: %w", err)
	}
	return nil
}

// UpdateOutcome replaces a document's similarity score and review flag
// wholesale. Only the comparison run for that document calls this.
func (s *Store) UpdateOutcome(ctx context.Context, id string, score float64, flagged bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET similarity_score = ?, flagged = ? WHERE id = ?`,
		score, boolToInt(flagged), id)
	if err != nil {
		return fmt.Errorf("update outcome: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update outcome rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update outcome: document %s not found", id)
	}
	return nil
}

// ResultsFor is the read projection behind the similarity detail view:
// all stored pairwise rows for a source, highest score first.
func (s *Store) ResultsFor(ctx context.Context, sourceID string) ([]PairwiseResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_id, compared_id, score, computed_at
		 FROM pairwise_results WHERE source_id = ?
		 ORDER BY score DESC, compared_id`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []PairwiseResult
	for rows.Next() {
		var r PairwiseResult
		if err := rows.Scan(&r.SourceID, &r.ComparedID, &r.Score, &r.ComputedAt); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*Document, error) {
	var doc Document
	var normalized sql.NullString
	var flagged int
	if err := row.Scan(&doc.ID, &doc.ScopeID, &doc.Title, &doc.RawText, &normalized, &doc.Score, &flagged, &doc.CreatedAt); err != nil {
		return nil, err
	}
	doc.NormalizedText = normalized.String
	doc.Flagged = flagged != 0
	return &doc, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
