package workflow

import (
	"strings"
	"unicode/utf8"

	"github.com/smallnest/researchflow/rag"
)

// Scorer estimates the adequacy of an answer given the retrieved evidence.
// The score is the refinement loop's termination signal.
type Scorer interface {
	Score(answer string, retrieved []rag.SearchResult) float64
}

// ScorerConfig holds the heuristic thresholds. The defaults reproduce the
// reference behavior but none of the numbers is load-bearing; tune them per
// corpus.
type ScorerConfig struct {
	MinAnswerLength int     // answers shorter than this many runes are penalized, default 50
	ShortAnswerCap  float64 // score cap for short answers, default 0.3
	RefusalCap      float64 // score cap for refusal-style answers, default 0.5
	EvidencePerDoc  float64 // evidence prior per retrieved document, default 0.15
	MaxEvidence     float64 // upper bound of the evidence prior, default 0.9
	RefusalMarkers  []string
}

// DefaultRefusalMarkers are the apology and inability phrases that mark an
// answer as a refusal, in Chinese and English. Matching is case-insensitive.
var DefaultRefusalMarkers = []string{
	"抱歉", "无法",
	"sorry", "i cannot", "i can't", "unable to",
}

// HeuristicScorer is a deterministic rule-based Scorer. The evidence count
// sets a prior and the length/refusal penalties cap it; penalties always
// override evidence.
type HeuristicScorer struct {
	config ScorerConfig
}

// NewHeuristicScorer creates a scorer, filling zero config fields with the
// defaults.
func NewHeuristicScorer(config ScorerConfig) *HeuristicScorer {
	if config.MinAnswerLength == 0 {
		config.MinAnswerLength = 50
	}
	if config.ShortAnswerCap == 0 {
		config.ShortAnswerCap = 0.3
	}
	if config.RefusalCap == 0 {
		config.RefusalCap = 0.5
	}
	if config.EvidencePerDoc == 0 {
		config.EvidencePerDoc = 0.15
	}
	if config.MaxEvidence == 0 {
		config.MaxEvidence = 0.9
	}
	if config.RefusalMarkers == nil {
		config.RefusalMarkers = DefaultRefusalMarkers
	}
	return &HeuristicScorer{config: config}
}

// Score maps an answer and its evidence to a confidence in [0, 1].
func (s *HeuristicScorer) Score(answer string, retrieved []rag.SearchResult) float64 {
	score := float64(len(retrieved)) * s.config.EvidencePerDoc
	if score > s.config.MaxEvidence {
		score = s.config.MaxEvidence
	}

	lower := strings.ToLower(answer)
	for _, marker := range s.config.RefusalMarkers {
		if strings.Contains(lower, marker) {
			if score > s.config.RefusalCap {
				score = s.config.RefusalCap
			}
			break
		}
	}

	// Length is measured in runes; queries and answers are routinely CJK.
	if utf8.RuneCountInString(answer) < s.config.MinAnswerLength {
		if score > s.config.ShortAnswerCap {
			score = s.config.ShortAnswerCap
		}
	}

	return score
}

var _ Scorer = (*HeuristicScorer)(nil)
