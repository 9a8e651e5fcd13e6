package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Jayvieeeee/digital-repositories-sub000/internal/config"
	"github.com/Jayvieeeee/digital-repositories-sub000/internal/engine"
	"github.com/Jayvieeeee/digital-repositories-sub000/internal/extract"
	"github.com/Jayvieeeee/digital-repositories-sub000/internal/normalize"
	"github.com/Jayvieeeee/digital-repositories-sub000/internal/store"
)

// Service owns the document lifecycle around the comparison engine:
// accepting submissions, scoring them against their scope's corpus, and
// re-running comparisons later. Acceptance never fails on extraction or
// comparison problems; the document just stays at score 0 until a run
// completes.
type Service struct {
	store   *store.Store
	engine  *engine.Engine
	recheck config.RecheckConfig
	logger  engine.Logger
}

func NewService(st *store.Store, eng *engine.Engine, recheck config.RecheckConfig, logger engine.Logger) *Service {
	if recheck.Attempts <= 0 {
		recheck.Attempts = 1
	}
	if recheck.TimeoutMinutes <= 0 {
		recheck.TimeoutMinutes = 5
	}
	return &Service{store: st, engine: eng, recheck: recheck, logger: logger}
}

// Submit accepts a new document, extracts and normalizes its text, stores
// it, and runs the first comparison synchronously. Extraction failure is
// recorded as empty text and the submission still succeeds.
func (s *Service) Submit(ctx context.Context, scopeID, title, filename string, raw []byte) (*store.Document, error) {
	rawText, err := extract.Text(raw, filename)
	if err != nil {
		s.log("RISK", "INGEST", "text extraction failed, accepting without text",
			fmt.Sprintf("title=%q file=%s: %v", title, filename, err))
		rawText = ""
	}

	doc := store.Document{
		ID:             uuid.NewString(),
		ScopeID:        scopeID,
		Title:          title,
		RawText:        rawText,
		NormalizedText: normalize.Normalize(rawText),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.InsertDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("accept submission: %w", err)
	}

	if err := s.runComparison(ctx, &doc); err != nil {
		s.log("RISK", "COMPARE", "initial comparison failed, document stays at zero",
			fmt.Sprintf("document=%s: %v", doc.ID, err))
	}
	stored, err := s.store.Document(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Recheck re-runs the comparison for one document with bounded retries
// and a per-attempt timeout. When every attempt fails the document's
// score is forced to 0 and no flag is raised, so a failed run never
// leaves a stale or ambiguous outcome.
func (s *Service) Recheck(ctx context.Context, documentID string) error {
	timeout := time.Duration(s.recheck.TimeoutMinutes) * time.Minute
	var lastErr error
	for attempt := 1; attempt <= s.recheck.Attempts; attempt++ {
		doc, err := s.store.Document(ctx, documentID)
		if err != nil {
			lastErr = err
		} else {
			attemptCtx, cancel := context.WithTimeout(ctx, timeout)
			err = s.runComparison(attemptCtx, doc)
			cancel()
			if err == nil {
				return nil
			}
			lastErr = err
		}
		s.log("RISK", "RECHECK", "comparison attempt failed",
			fmt.Sprintf("document=%s attempt=%d/%d: %v", documentID, attempt, s.recheck.Attempts, lastErr))
	}

	// The forced zero must land even when the run's context is already
	// dead, or the document would be left with a stale partial score.
	if err := s.store.UpdateOutcome(context.WithoutCancel(ctx), documentID, 0, false); err != nil {
		s.log("RISK", "RECHECK", "failed to zero outcome after terminal failure",
			fmt.Sprintf("document=%s: %v", documentID, err))
	}
	return fmt.Errorf("recheck %s: retries exhausted: %w", documentID, lastErr)
}

// RecheckScope re-runs comparisons for every document in a scope. Each
// document is an independent unit of work; one terminal failure does not
// stop the pass.
func (s *Service) RecheckScope(ctx context.Context, scopeID string) (failed int, err error) {
	ids, err := s.store.DocumentIDs(ctx, scopeID)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if err := s.Recheck(ctx, id); err != nil {
			failed++
		}
	}
	s.log("ANALYSIS", "RECHECK", "scope recheck completed",
		fmt.Sprintf("scope=%s documents=%d failed=%d", scopeID, len(ids), failed))
	return failed, nil
}

// Results exposes the stored pairwise rows for a document, highest first.
func (s *Service) Results(ctx context.Context, documentID string) ([]store.PairwiseResult, error) {
	return s.store.ResultsFor(ctx, documentID)
}

func (s *Service) runComparison(ctx context.Context, doc *store.Document) error {
	corpus, err := s.store.ComparisonCorpus(ctx, doc.ScopeID, doc.ID)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	eligible := make([]engine.CorpusDocument, 0, len(corpus))
	for _, c := range corpus {
		eligible = append(eligible, engine.CorpusDocument{
			ID:             c.ID,
			Title:          c.Title,
			NormalizedText: c.NormalizedText,
		})
	}

	outcome, err := s.engine.Compare(ctx, doc.ID, doc.NormalizedText, eligible)
	if err != nil {
		return err
	}

	flagged := s.engine.Config().Flagged(outcome.HighestScore)
	if err := s.store.UpdateOutcome(ctx, doc.ID, outcome.HighestScore, flagged); err != nil {
		return fmt.Errorf("store outcome: %w", err)
	}
	return nil
}

func (s *Service) log(level, stage, message, detail string) {
	if s.logger == nil {
		return
	}
	s.logger.Log(level, stage, message, detail)
}
