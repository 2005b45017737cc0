// ABOUTME: SQLite-backed knowledge base with keyword-overlap retrieval
// ABOUTME: Documents are chunked at ingest; queries score chunks by term overlap
package retrieval

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pitcrewhq/pitcrew/internal/models"
)

const kbSchema = `
CREATE TABLE IF NOT EXISTS chunks (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	source     TEXT NOT NULL,
	content    TEXT NOT NULL,
	tokens     INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// Store is a sqlite-backed Retriever over ingested documentation chunks.
// Scoring is term overlap between query and chunk text; the interface is
// compatible with a future vector backend, which stays out of scope here.
type Store struct {
	conn *sql.DB
}

// Open opens or creates a knowledge-base database at the given path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	if _, err := conn.Exec(kbSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize knowledge base schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// OpenInMemory creates an in-memory knowledge base (for testing)
func OpenInMemory() (*Store, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory knowledge base: %w", err)
	}
	if _, err := conn.Exec(kbSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize knowledge base schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.conn.Close()
}

// Ingest chunks a document by paragraph and stores the chunks under the given
// source name. Paragraphs are merged until a chunk would exceed maxChunkTokens.
func (s *Store) Ingest(source, text string, maxChunkTokens int) (int, error) {
	if maxChunkTokens <= 0 {
		maxChunkTokens = 500
	}
	chunks := chunkByParagraph(text, maxChunkTokens)
	if len(chunks) == 0 {
		return 0, nil
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin ingest: %w", err)
	}
	now := time.Now().UTC()
	for _, c := range chunks {
		if _, err := tx.Exec(`
			INSERT INTO chunks (source, content, tokens, created_at)
			VALUES (?, ?, ?, ?)
		`, source, c, EstimateTokens(c), now); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to insert chunk: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit ingest: %w", err)
	}
	return len(chunks), nil
}

// Count returns the number of stored chunks
func (s *Store) Count() (int, error) {
	var n int
	if err := s.conn.QueryRow(`SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return n, nil
}

// Retrieve implements Retriever with keyword-overlap scoring
func (s *Store) Retrieve(ctx context.Context, query string, topK, maxTokens int) ([]Snippet, error) {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}

	rows, err := s.conn.QueryContext(ctx, `SELECT source, content, tokens FROM chunks`)
	if err != nil {
		return nil, &models.RetrievalError{Err: err}
	}
	defer func() { _ = rows.Close() }()

	type scored struct {
		snippet Snippet
		tokens  int
	}
	var candidates []scored
	for rows.Next() {
		var src, content string
		var tokens int
		if err := rows.Scan(&src, &content, &tokens); err != nil {
			return nil, &models.RetrievalError{Err: err}
		}
		score := overlapScore(terms, content)
		if score > 0 {
			candidates = append(candidates, scored{
				snippet: Snippet{Source: src, Content: content, Score: score},
				tokens:  tokens,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &models.RetrievalError{Err: err}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].snippet.Score > candidates[j].snippet.Score
	})

	var out []Snippet
	budget := maxTokens
	for _, c := range candidates {
		if len(out) >= topK {
			break
		}
		if budget-c.tokens < 0 && len(out) > 0 {
			break
		}
		out = append(out, c.snippet)
		budget -= c.tokens
	}
	return out, nil
}

// chunkByParagraph splits on blank lines and merges paragraphs up to the
// token budget
func chunkByParagraph(text string, maxChunkTokens int) []string {
	paragraphs := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")

	var chunks []string
	var current strings.Builder
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if current.Len() > 0 && EstimateTokens(current.String())+EstimateTokens(p) > maxChunkTokens {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func queryTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	var terms []string
	for _, f := range fields {
		f = strings.Trim(f, ".,!?\"'()")
		if len(f) >= 3 {
			terms = append(terms, f)
		}
	}
	return terms
}

func overlapScore(terms []string, content string) float64 {
	lower := strings.ToLower(content)
	hits := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}
