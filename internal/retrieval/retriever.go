// ABOUTME: Retrieval collaborator contract consumed by the specs agent
// ABOUTME: Implementations return scored context snippets for a query
package retrieval

import "context"

// Snippet is one piece of retrieved documentation context
type Snippet struct {
	Source  string  `json:"source"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Retriever returns up to topK snippets relevant to the query, with the
// combined content capped at roughly maxTokens. A failing retriever is
// non-fatal for the caller: the specs agent substitutes fallback context.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK, maxTokens int) ([]Snippet, error)
}

// EstimateTokens approximates the token count of a text. Four characters per
// token is the rough heuristic used across the ingestion and retrieval paths;
// both sides must agree so the cap is consistent.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}
