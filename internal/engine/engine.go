package engine

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Jayvieeeee/digital-repositories-sub000/internal/similarity"
)

// Level is the qualitative reading of the highest pairwise score.
type Level string

const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// Config carries the decision thresholds and run shape. The thresholds
// live here and nowhere else; every flag and level decision goes through
// them.
type Config struct {
	HighThreshold   float64
	MediumThreshold float64
	Workers         int
}

func DefaultConfig() Config {
	return Config{
		HighThreshold:   70,
		MediumThreshold: 50,
		Workers:         runtime.NumCPU(),
	}
}

// Level maps a score to its qualitative band.
func (c Config) Level(score float64) Level {
	switch {
	case score >= c.HighThreshold:
		return LevelHigh
	case score >= c.MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Flagged reports whether a score routes the document for human review.
func (c Config) Flagged(score float64) bool {
	return score >= c.HighThreshold
}

// CorpusDocument is one existing document eligible for comparison.
type CorpusDocument struct {
	ID             string
	Title          string
	NormalizedText string
}

// RankedEntry is one row of the descending match list.
type RankedEntry struct {
	DocumentID string
	Title      string
	Score      float64
}

// Outcome is the result of one comparison run. BestMatchID is empty when
// no valid comparison produced a positive ranking.
type Outcome struct {
	HighestScore float64
	BestMatchID  string
	Ranked       []RankedEntry
	Level        Level
}

// ResultSink persists one pairwise result. Upserts must be idempotent on
// (sourceID, comparedID).
type ResultSink interface {
	UpsertPairwiseResult(ctx context.Context, sourceID, comparedID string, score float64, at time.Time) error
}

type Logger interface {
	Log(level, stage, message, detail string)
}

// Engine runs the scorer ensemble over a comparison corpus.
type Engine struct {
	cfg     Config
	scorers []similarity.Scorer
	sink    ResultSink
	logger  Logger
}

func New(cfg Config, sink ResultSink, logger Logger) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Engine{cfg: cfg, scorers: similarity.Scorers(), sink: sink, logger: logger}
}

func (e *Engine) Config() Config {
	return e.cfg
}

type pairResult struct {
	score float64
	ok    bool
}

// Compare scores newText against every corpus document with non-empty
// normalized text and an id other than sourceID, persists each pairwise
// result, and returns the ranked outcome. Empty newText short-circuits to
// a zero outcome without touching the corpus. The only returned error is
// context cancellation; per-pair faults are logged and skipped.
func (e *Engine) Compare(ctx context.Context, sourceID, newText string, corpus []CorpusDocument) (Outcome, error) {
	if newText == "" {
		return Outcome{Level: e.cfg.Level(0), Ranked: []RankedEntry{}}, nil
	}

	eligible := make([]CorpusDocument, 0, len(corpus))
	for _, doc := range corpus {
		if doc.ID == sourceID || doc.NormalizedText == "" {
			continue
		}
		eligible = append(eligible, doc)
	}

	subject := similarity.NewDocument(newText)
	results := make([]pairResult, len(eligible))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results[i] = e.scorePair(subject, eligible[i])
			}
		}()
	}
	for i := range eligible {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("comparison run interrupted: %w", err)
	}

	outcome := Outcome{Ranked: make([]RankedEntry, 0, len(eligible))}
	now := time.Now().UTC()
	for i, doc := range eligible {
		if !results[i].ok {
			continue
		}
		score := results[i].score
		if err := e.sink.UpsertPairwiseResult(ctx, sourceID, doc.ID, score, now); err != nil {
			e.log("RISK", "PERSIST", "pairwise result not stored", fmt.Sprintf("source=%s compared=%s: %v", sourceID, doc.ID, err))
		}
		outcome.Ranked = append(outcome.Ranked, RankedEntry{DocumentID: doc.ID, Title: doc.Title, Score: score})
		if score > outcome.HighestScore {
			outcome.HighestScore = score
			outcome.BestMatchID = doc.ID
		}
	}

	sort.SliceStable(outcome.Ranked, func(i, j int) bool {
		return outcome.Ranked[i].Score > outcome.Ranked[j].Score
	})
	outcome.Level = e.cfg.Level(outcome.HighestScore)

	e.log("ANALYSIS", "COMPARE", "comparison run completed",
		fmt.Sprintf("source=%s corpus=%d ranked=%d highest=%.2f level=%s", sourceID, len(eligible), len(outcome.Ranked), outcome.HighestScore, outcome.Level))
	return outcome, nil
}

// scorePair runs the scorer ensemble for one pair. A fault in any scorer
// abandons the whole pair rather than the run.
func (e *Engine) scorePair(subject similarity.Document, doc CorpusDocument) (out pairResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log("RISK", "COMPARE", "pair computation fault", fmt.Sprintf("compared=%s: %v", doc.ID, r))
			out = pairResult{}
		}
	}()

	other := similarity.NewDocument(doc.NormalizedText)
	sum := 0.0
	nonZero := 0
	for _, s := range e.scorers {
		v := s.Score(subject, other)
		if v > 0 {
			sum += v
			nonZero++
		}
	}

	score := 0.0
	if nonZero > 0 {
		score = sum / float64(nonZero)
	} else {
		score = similarity.TextSimilarity(subject.Text, other.Text)
	}
	return pairResult{score: roundScore(clamp(score)), ok: true}
}

func (e *Engine) log(level, stage, message, detail string) {
	if e.logger == nil {
		return
	}
	e.logger.Log(level, stage, message, detail)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
