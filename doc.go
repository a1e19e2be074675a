// ResearchFlow - Iterative Retrieval-Refinement for Research Assistants
//
// ResearchFlow answers research questions over a private document corpus by
// running an explicit retrieval-refinement loop: classify the query, retrieve
// evidence, analyze it, generate an answer, score the answer, and retry with a
// wider retrieval when the score falls short. The loop is bounded, so every
// query terminates with a best-effort answer and a confidence value.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/smallnest/researchflow
//
// Basic example:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/smallnest/researchflow/embedding"
//		"github.com/smallnest/researchflow/llm"
//		"github.com/smallnest/researchflow/rag/retriever"
//		"github.com/smallnest/researchflow/rag/store"
//		"github.com/smallnest/researchflow/workflow"
//	)
//
//	func main() {
//		embedder, _ := embedding.NewOpenAIEmbedder(embedding.OpenAIOptions{APIKey: "sk-..."})
//		model, _ := llm.NewOpenAIModel(llm.OpenAIOptions{APIKey: "sk-..."})
//
//		vectorStore := store.NewMemoryVectorStore(embedder)
//		ret := retriever.NewVectorRetriever(vectorStore, embedder)
//
//		wf, _ := workflow.New(ret, model, workflow.Config{})
//		result := wf.Run(context.Background(), "什么是机器学习？")
//		fmt.Println(result.Answer, result.Confidence)
//	}
//
// # Packages
//
//   - workflow: the refinement loop, query classification and answer scoring
//   - rag: core contracts (Document, Retriever, Embedder, VectorStore)
//   - rag/store: in-memory, SQLite and pgvector vector stores
//   - rag/retriever: vector retrieval, Redis caching, langchaingo adapter
//   - embedding: OpenAI and langchaingo embedders
//   - llm: OpenAI and langchaingo generation models
//   - loader: text, HTML, Markdown and directory document loaders
//   - splitter: recursive character splitting for chunked indexing
//   - session: conversation history with JSON file persistence
//   - log: leveled logging with a golog adapter
//
// # Examples
//
// See the ./examples directory for a complete research assistant CLI that
// ingests a directory of documents and answers questions interactively.
package researchflow // import "github.com/smallnest/researchflow"
