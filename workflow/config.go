package workflow

import (
	"context"
	"fmt"

	"github.com/smallnest/researchflow/log"
)

// History is the optional conversation memory owned by the caller. The
// workflow only ever appends the new turn; session lifecycle belongs to
// whoever holds the session id.
type History interface {
	Append(ctx context.Context, sessionID, role, content string) error
}

// Config configures the refinement loop. The zero value of every field is
// replaced with the documented default, so Config{} is valid.
type Config struct {
	// MaxIterations is the number of refinement passes allowed after the
	// initial cycle. Default 3.
	MaxIterations int
	// RefineThreshold is the confidence at which the loop stops refining.
	// Default 0.6.
	RefineThreshold float64
	// WidenStep is added to topK on each refinement. Default 3.
	WidenStep int
	// MaxTopK caps the widened retrieval breadth. Default 20.
	MaxTopK int

	// FallbackAnswer is returned when no documents could be retrieved.
	FallbackAnswer string
	// ErrorAnswer is returned when the generation model fails.
	ErrorAnswer string

	// Scorer defaults to a HeuristicScorer with default thresholds.
	Scorer Scorer
	// Logger defaults to the package-level logger.
	Logger log.Logger
	// History is optional; when set, ProcessQuery appends both turns.
	History History
}

const (
	defaultFallbackAnswer = "Sorry, I could not find relevant information in the documents to answer your question."
	defaultErrorAnswer    = "Something went wrong while generating the answer. Please try again later."
)

func (c *Config) applyDefaults() {
	if c.MaxIterations == 0 {
		c.MaxIterations = 3
	}
	if c.RefineThreshold == 0 {
		c.RefineThreshold = 0.6
	}
	if c.WidenStep == 0 {
		c.WidenStep = 3
	}
	if c.MaxTopK == 0 {
		c.MaxTopK = 20
	}
	if c.FallbackAnswer == "" {
		c.FallbackAnswer = defaultFallbackAnswer
	}
	if c.ErrorAnswer == "" {
		c.ErrorAnswer = defaultErrorAnswer
	}
	if c.Scorer == nil {
		c.Scorer = NewHeuristicScorer(ScorerConfig{})
	}
	if c.Logger == nil {
		c.Logger = log.GetDefaultLogger()
	}
}

func (c *Config) validate() error {
	if c.MaxIterations < 0 {
		return fmt.Errorf("MaxIterations must not be negative")
	}
	if c.RefineThreshold < 0 || c.RefineThreshold > 1 {
		return fmt.Errorf("RefineThreshold must be in [0, 1]")
	}
	if c.WidenStep < 0 {
		return fmt.Errorf("WidenStep must not be negative")
	}
	if c.MaxTopK < 1 {
		return fmt.Errorf("MaxTopK must be positive")
	}
	return nil
}
