package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/smallnest/researchflow/llm"
	"github.com/smallnest/researchflow/log"
	"github.com/smallnest/researchflow/rag"
)

// State carries one query through the refinement loop.
type State struct {
	Query      string
	Strategy   Strategy
	TopK       int
	Retrieved  []rag.SearchResult
	Analysis   string
	Answer     string
	Confidence float64
	Iteration  int
	Metadata   map[string]any
}

// Result is the terminal output of a workflow run. Run always produces a
// well-formed Result; error detail, if any, lives in Metadata.
type Result struct {
	Query      string             `json:"query"`
	Answer     string             `json:"answer"`
	Confidence float64            `json:"confidence"`
	Strategy   Strategy           `json:"strategy"`
	Sources    []rag.SearchResult `json:"sources"`
	Iterations int                `json:"iterations"`
	Metadata   map[string]any     `json:"metadata,omitempty"`
}

// phase is a state of the refinement machine. The topology is fixed:
// classify → retrieve → analyze → generate → score → {retrieve | done}.
type phase int

const (
	phaseClassify phase = iota
	phaseRetrieve
	phaseAnalyze
	phaseGenerate
	phaseScore
	phaseDecide
	phaseDone
)

// Workflow drives repeated retrieval, generation and scoring cycles,
// widening retrieval breadth on each retry and terminating on a confidence
// threshold or an iteration cap.
//
// A Workflow is reentrant: it holds only read-only configuration and the
// collaborator handles, so a single instance may serve concurrent queries.
type Workflow struct {
	retriever rag.Retriever
	model     llm.Model
	config    Config
	logger    log.Logger
}

// New creates a workflow over the given retriever and generation model.
// Nil collaborators and out-of-range thresholds are configuration errors
// reported here, before any query is processed.
func New(retriever rag.Retriever, model llm.Model, config Config) (*Workflow, error) {
	if retriever == nil {
		return nil, fmt.Errorf("workflow: retriever is required")
	}
	if model == nil {
		return nil, fmt.Errorf("workflow: generation model is required")
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("workflow: %w", err)
	}

	return &Workflow{
		retriever: retriever,
		model:     model,
		config:    config,
		logger:    config.Logger,
	}, nil
}

// ProcessQuery runs the refinement loop for one query and, when a history
// and session id are present, appends the user turn and the final answer.
// It never fails for per-query errors; the Result is always well formed.
func (w *Workflow) ProcessQuery(ctx context.Context, query, sessionID string) *Result {
	result := w.Run(ctx, query)

	if w.config.History != nil && sessionID != "" {
		if err := w.config.History.Append(ctx, sessionID, "user", query); err != nil {
			w.logger.Warn("failed to record user turn: %v", err)
		}
		if err := w.config.History.Append(ctx, sessionID, "assistant", result.Answer); err != nil {
			w.logger.Warn("failed to record assistant turn: %v", err)
		}
	}

	return result
}

// Run executes the state machine for one query.
func (w *Workflow) Run(ctx context.Context, query string) *Result {
	state := &State{
		Query:    query,
		Metadata: make(map[string]any),
	}

	current := phaseClassify
	for current != phaseDone {
		// Cancellation is honored at state transitions only; it converts
		// the run into a degraded terminal result.
		if err := ctx.Err(); err != nil {
			w.logger.Warn("workflow cancelled: %v", err)
			state.Metadata["error"] = err.Error()
			if state.Answer == "" {
				state.Answer = w.config.ErrorAnswer
				state.Confidence = 0.1
			}
			break
		}

		switch current {
		case phaseClassify:
			w.classify(state)
			current = phaseRetrieve

		case phaseRetrieve:
			w.retrieve(ctx, state)
			current = phaseAnalyze

		case phaseAnalyze:
			w.analyze(ctx, state)
			current = phaseGenerate

		case phaseGenerate:
			if ok := w.generate(ctx, state); !ok {
				// Generation itself is broken; further refinement would
				// only burn quota.
				current = phaseDone
				break
			}
			current = phaseScore

		case phaseScore:
			state.Confidence = w.config.Scorer.Score(state.Answer, state.Retrieved)
			w.logger.Info("quality check: confidence=%.2f iteration=%d", state.Confidence, state.Iteration)
			current = phaseDecide

		case phaseDecide:
			if state.Confidence >= w.config.RefineThreshold || state.Iteration >= w.config.MaxIterations {
				current = phaseDone
				break
			}
			state.Iteration++
			w.widen(state)
			w.logger.Info("refining search: iteration=%d top_k=%d", state.Iteration, state.TopK)
			current = phaseRetrieve
		}
	}

	return &Result{
		Query:      state.Query,
		Answer:     state.Answer,
		Confidence: state.Confidence,
		Strategy:   state.Strategy,
		Sources:    state.Retrieved,
		Iterations: state.Iteration,
		Metadata:   state.Metadata,
	}
}

// classify runs exactly once; the strategy stays fixed across refinements.
func (w *Workflow) classify(state *State) {
	state.Strategy = ClassifyQuery(state.Query)
	state.TopK = state.Strategy.BaseTopK()
	if state.TopK > w.config.MaxTopK {
		state.TopK = w.config.MaxTopK
	}
	w.logger.Info("query classified: strategy=%s top_k=%d", state.Strategy, state.TopK)
}

// retrieve fetches evidence. Retrieval failure degrades to an empty result
// and the loop continues.
func (w *Workflow) retrieve(ctx context.Context, state *State) {
	results, err := w.retriever.Retrieve(ctx, state.Query, state.TopK)
	if err != nil {
		if errors.Is(err, rag.ErrRetrievalUnavailable) {
			w.logger.Warn("retrieval unavailable, continuing with no documents: %v", err)
		} else {
			w.logger.Error("retrieval failed: %v", err)
		}
		state.Metadata["retrieval_error"] = err.Error()
		state.Retrieved = []rag.SearchResult{}
		return
	}

	state.Retrieved = results
	w.logger.Info("retrieved %d documents", len(results))
}

// analyze produces the intermediate analysis. With no documents it is a
// fixed text; a model failure degrades to a fixed text as well.
func (w *Workflow) analyze(ctx context.Context, state *State) {
	if len(state.Retrieved) == 0 {
		state.Analysis = "No relevant document content was found."
		return
	}

	analysis, err := w.model.Complete(ctx, analysisSystemPrompt, analysisPrompt(state.Query, state.Strategy, state.Retrieved))
	if err != nil {
		w.logger.Error("analysis failed: %v", err)
		state.Metadata["analysis_error"] = err.Error()
		state.Analysis = "Analysis unavailable; answering from the retrieved material directly."
		return
	}
	state.Analysis = analysis
}

// generate produces the candidate answer. It returns false when the
// generation collaborator itself failed, which pins confidence at 0.1 and
// terminates the loop.
func (w *Workflow) generate(ctx context.Context, state *State) bool {
	if len(state.Retrieved) == 0 {
		state.Answer = w.config.FallbackAnswer
		return true
	}

	answer, err := w.model.Complete(ctx, answerSystemPrompt, answerPrompt(state.Query, state.Analysis, state.Retrieved))
	if err != nil {
		w.logger.Error("answer generation failed: %v", err)
		state.Metadata["generation_error"] = err.Error()
		state.Answer = w.config.ErrorAnswer
		state.Confidence = 0.1
		return false
	}

	state.Answer = answer
	return true
}

// widen increases retrieval breadth for the next cycle, capped at MaxTopK.
func (w *Workflow) widen(state *State) {
	topK := state.TopK + w.config.WidenStep
	if topK > w.config.MaxTopK {
		topK = w.config.MaxTopK
	}
	state.TopK = topK
}
