// Package workflow implements an iterative retrieval-refinement loop for
// research-style question answering.
//
// Each query is classified into a retrieval strategy, answered from
// retrieved evidence, and scored by a deterministic heuristic. Low-scoring
// answers trigger another cycle with a widened retrieval breadth, bounded
// by a fixed iteration cap, so a run always terminates.
package workflow
