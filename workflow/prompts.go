package workflow

import (
	"fmt"
	"strings"

	"github.com/smallnest/researchflow/rag"
)

const analysisSystemPrompt = `You are a research analyst. Analyze the intent of the user query against the retrieved context and provide a concise but thorough analysis: the key points, possible research directions, and what to focus on.`

const answerSystemPrompt = `You are a knowledgeable research assistant. Based on the analysis and the retrieved context, answer the user query accurately and in detail, with examples where helpful. If the information is insufficient, state the limitation clearly.`

// strategyFraming flavors the analysis request per classified strategy.
func strategyFraming(strategy Strategy) string {
	switch strategy {
	case StrategyComparative:
		return "Compare and contrast the retrieved material; highlight agreements and differences."
	case StrategySummarization:
		return "Condense the retrieved material into its main themes."
	case StrategyHowTo:
		return "Focus on concrete steps and prerequisites found in the material."
	case StrategyCausal:
		return "Focus on causes, mechanisms and consequences found in the material."
	default:
		return "Identify the material most relevant to the query."
	}
}

func analysisPrompt(query string, strategy Strategy, retrieved []rag.SearchResult) string {
	// The analysis pass looks at a few top documents only.
	limit := 3
	if len(retrieved) < limit {
		limit = len(retrieved)
	}
	return fmt.Sprintf("Query: %s\n\n%s\n\nContext:\n%s", query, strategyFraming(strategy), buildContext(retrieved[:limit]))
}

func answerPrompt(query, analysis string, retrieved []rag.SearchResult) string {
	return fmt.Sprintf("Query: %s\n\nAnalysis:\n%s\n\nContext:\n%s\n\nAnswer:", query, analysis, buildContext(retrieved))
}

// buildContext formats retrieved documents for a prompt.
func buildContext(retrieved []rag.SearchResult) string {
	if len(retrieved) == 0 {
		return "(no relevant context found)"
	}

	var parts []string
	for i, result := range retrieved {
		source := "Unknown"
		if s, ok := result.Document.Metadata["source"]; ok {
			source = fmt.Sprintf("%v", s)
		}
		parts = append(parts, fmt.Sprintf("[%d] Source: %s\nContent: %s", i+1, source, result.Document.Content))
	}
	return strings.Join(parts, "\n\n")
}
