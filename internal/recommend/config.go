package recommend

import (
	"errors"
	"fmt"
	"runtime"
)

// Config tunes the engine. All weights are in [0, 1].
type Config struct {
	// HistoryWeight is the share of a player score taken by historical
	// affinity; the remainder goes to the mean of the preference fits.
	HistoryWeight float64

	// DissentPenalty (lambda) pulls the group score from the mean toward
	// the lowest player score. 0 = plain mean, 1 = minimum.
	DissentPenalty float64

	// RecommendationThreshold is the group score at or above which a game
	// is flagged as recommended.
	RecommendationThreshold float64

	// TopN limits results when a request does not set its own (0 = all)
	TopN int

	// ParallelThreshold is the candidate count at which scoring fans out
	// across workers.
	ParallelThreshold int

	// MaxWorkers bounds the scoring worker pool (0 = runtime.NumCPU())
	MaxWorkers int

	// BreakdownRetentionLimit is the candidate count above which per-player
	// breakdowns are only kept for the final top N.
	BreakdownRetentionLimit int
}

// DefaultConfig returns the engine defaults
func DefaultConfig() Config {
	return Config{
		HistoryWeight:           0.5,
		DissentPenalty:          0.5,
		RecommendationThreshold: 0.6,
		TopN:                    0,
		ParallelThreshold:       256,
		MaxWorkers:              0,
		BreakdownRetentionLimit: 2000,
	}
}

// Validate checks that every weight is usable
func (c Config) Validate() error {
	var errs []error

	if c.HistoryWeight < 0 || c.HistoryWeight > 1 {
		errs = append(errs, fmt.Errorf("history_weight must be in [0, 1], got %g", c.HistoryWeight))
	}
	if c.DissentPenalty < 0 || c.DissentPenalty > 1 {
		errs = append(errs, fmt.Errorf("dissent_penalty must be in [0, 1], got %g", c.DissentPenalty))
	}
	if c.RecommendationThreshold < 0 || c.RecommendationThreshold > 1 {
		errs = append(errs, fmt.Errorf("recommendation_threshold must be in [0, 1], got %g", c.RecommendationThreshold))
	}
	if c.TopN < 0 {
		errs = append(errs, fmt.Errorf("top_n must be non-negative, got %d", c.TopN))
	}
	if c.ParallelThreshold < 1 {
		errs = append(errs, fmt.Errorf("parallel_threshold must be positive, got %d", c.ParallelThreshold))
	}
	if c.MaxWorkers < 0 {
		errs = append(errs, fmt.Errorf("max_workers must be non-negative, got %d", c.MaxWorkers))
	}
	if c.BreakdownRetentionLimit < 1 {
		errs = append(errs, fmt.Errorf("breakdown_retention_limit must be positive, got %d", c.BreakdownRetentionLimit))
	}

	return errors.Join(errs...)
}

func (c Config) workers() int {
	if c.MaxWorkers > 0 {
		return c.MaxWorkers
	}
	return runtime.NumCPU()
}
