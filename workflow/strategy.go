package workflow

import "strings"

// Strategy is a coarse query-intent class used only to parameterize
// retrieval breadth.
type Strategy string

const (
	// StrategyGeneral is the default strategy
	StrategyGeneral Strategy = "general"
	// StrategyComparative for queries comparing two or more things
	StrategyComparative Strategy = "comparative"
	// StrategySummarization for queries asking for an overview
	StrategySummarization Strategy = "summarization"
	// StrategyHowTo for procedural queries
	StrategyHowTo Strategy = "how_to"
	// StrategyCausal for queries asking for reasons
	StrategyCausal Strategy = "causal"
)

// Keyword tables cover both Chinese and English markers; first match wins.
var strategyMarkers = []struct {
	strategy Strategy
	markers  []string
}{
	{StrategyComparative, []string{"比较", "对比", "compare", "difference between", " versus ", " vs "}},
	{StrategySummarization, []string{"总结", "概述", "summarize", "summary", "overview"}},
	{StrategyHowTo, []string{"如何", "怎么", "how to", "how do", "how can"}},
	{StrategyCausal, []string{"为什么", "原因", "why", "reason for", "what causes"}},
}

// ClassifyQuery maps a query to a retrieval strategy using a deterministic
// keyword heuristic. Unmatched queries are classified as general.
func ClassifyQuery(query string) Strategy {
	q := strings.ToLower(query)
	for _, entry := range strategyMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(q, marker) {
				return entry.strategy
			}
		}
	}
	return StrategyGeneral
}

// BaseTopK returns the initial retrieval breadth for the strategy.
func (s Strategy) BaseTopK() int {
	switch s {
	case StrategyComparative:
		return 8
	case StrategySummarization:
		return 10
	default:
		return 5
	}
}

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}
