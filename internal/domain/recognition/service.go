package recognition

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/rpggio/intentcat/internal/domain/intent"
	"golang.org/x/sync/errgroup"
)

// parallelScoreThreshold is the catalog size above which scoring is split
// across goroutines.
const parallelScoreThreshold = 512

// Config holds recognition service settings.
type Config struct {
	BatchWorkers int              // Concurrent batch entries (default GOMAXPROCS).
	Now          func() time.Time // Clock for usage timestamps (default time.Now).
}

// Service scores free text against the active intent catalog.
type Service struct {
	catalog CatalogRepository
	config  Config
	logger  *slog.Logger
}

// NewService creates a recognition service, applying config defaults.
func NewService(catalog CatalogRepository, cfg Config, logger *slog.Logger) *Service {
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = runtime.GOMAXPROCS(0)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{catalog: catalog, config: cfg, logger: logger}
}

// Recognize scores text against every active intent and returns the
// bounded matched and candidate buckets. When something matched, the top
// match's usage is recorded on a best-effort basis.
func (s *Service) Recognize(ctx context.Context, tenantID, text string, minConfidence float64) (MatchOutcome, error) {
	if strings.TrimSpace(text) == "" {
		return MatchOutcome{}, fmt.Errorf("%w: text is empty", ErrValidation)
	}
	if err := validateThreshold(minConfidence); err != nil {
		return MatchOutcome{}, err
	}

	records, err := s.catalog.ListActive(ctx, tenantID, intent.Kinds)
	if err != nil {
		return MatchOutcome{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	scored, err := s.scoreAll(ctx, text, records)
	if err != nil {
		return MatchOutcome{}, err
	}
	outcome := classify(scored, minConfidence)

	s.logger.Debug("recognized input",
		"tenant_id", tenantID,
		"catalog_size", len(records),
		"matched", len(outcome.Matched),
		"candidates", len(outcome.Candidates))

	if len(outcome.Matched) > 0 {
		s.recordUsage(ctx, tenantID, outcome.Matched[0])
	}
	return outcome, nil
}

// RecognizeBatch runs Recognize for each non-blank input. Blank inputs are
// skipped. A failing entry gets an empty outcome and an error message
// without affecting the others. Output keeps input order.
func (s *Service) RecognizeBatch(ctx context.Context, tenantID string, texts []string, minConfidence float64) ([]BatchEntry, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: batch is empty", ErrValidation)
	}
	if len(texts) > MaxBatchSize {
		return nil, fmt.Errorf("%w: batch has %d inputs, limit is %d", ErrValidation, len(texts), MaxBatchSize)
	}
	if err := validateThreshold(minConfidence); err != nil {
		return nil, err
	}

	inputs := make([]string, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) != "" {
			inputs = append(inputs, text)
		}
	}

	entries := make([]BatchEntry, len(inputs))
	var g errgroup.Group
	g.SetLimit(s.config.BatchWorkers)
	for i, text := range inputs {
		g.Go(func() error {
			outcome, err := s.Recognize(ctx, tenantID, text, minConfidence)
			if err != nil {
				s.logger.Warn("batch entry failed", "tenant_id", tenantID, "index", i, "error", err)
				entries[i] = BatchEntry{InputText: text, Outcome: emptyOutcome(), Error: err.Error()}
				return nil
			}
			entries[i] = BatchEntry{InputText: text, Outcome: outcome}
			return nil
		})
	}
	_ = g.Wait()

	return entries, nil
}

// recordUsage bumps the usage counter of the top match. Failures are
// logged and swallowed.
func (s *Service) recordUsage(ctx context.Context, tenantID string, top ScoreResult) {
	err := s.catalog.RecordUsage(ctx, tenantID, top.IntentID, top.Kind, s.config.Now())
	if err == nil {
		return
	}
	err = fmt.Errorf("%w: %w", ErrUsagePersist, err)
	s.logger.Warn("intent usage not recorded",
		"tenant_id", tenantID,
		"intent_id", top.IntentID,
		"kind", top.Kind,
		"error", err)
}

// scoreAll scores every record into a slot of the same index. Large
// catalogs are split into chunks scored concurrently.
func (s *Service) scoreAll(ctx context.Context, text string, records []intent.Intent) ([]ScoreResult, error) {
	results := make([]ScoreResult, len(records))
	scoreRange := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			results[i] = newScoreResult(text, records[i])
		}
	}

	if len(records) < parallelScoreThreshold {
		scoreRange(0, len(records))
		return results, nil
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(records) + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(records); lo += chunk {
		hi := min(lo+chunk, len(records))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scoreRange(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newScoreResult(text string, rec intent.Intent) ScoreResult {
	confidence, rule := evaluate(text, rec)
	return ScoreResult{
		IntentID:    rec.ID,
		Kind:        rec.Kind,
		Name:        rec.Name,
		Description: rec.Description,
		Confidence:  confidence,
		CategoryID:  rec.CategoryID,
		Rule:        rule,
	}
}

// classify partitions scored results into ranked, truncated buckets.
// Ties on confidence are ordered by intent ID.
func classify(scored []ScoreResult, minConfidence float64) MatchOutcome {
	outcome := emptyOutcome()
	for _, r := range scored {
		switch {
		case r.Confidence >= minConfidence:
			outcome.Matched = append(outcome.Matched, r)
		case r.Confidence > CandidateFloor:
			outcome.Candidates = append(outcome.Candidates, r)
		}
	}

	rank(outcome.Matched)
	rank(outcome.Candidates)

	if len(outcome.Matched) > MaxMatched {
		outcome.Matched = outcome.Matched[:MaxMatched]
	}
	if len(outcome.Candidates) > MaxCandidates {
		outcome.Candidates = outcome.Candidates[:MaxCandidates]
	}
	return outcome
}

func rank(results []ScoreResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].IntentID < results[j].IntentID
	})
}

func validateThreshold(minConfidence float64) error {
	if math.IsNaN(minConfidence) || minConfidence <= 0 || minConfidence > 1 {
		return fmt.Errorf("%w: min confidence %.2f outside (0, 1]", ErrValidation, minConfidence)
	}
	return nil
}
