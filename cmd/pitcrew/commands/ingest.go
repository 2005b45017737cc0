// ABOUTME: CLI command to load vehicle documentation into the knowledge base
// ABOUTME: Chunks text files by paragraph and stores them for retrieval
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pitcrewhq/pitcrew/internal/config"
)

var (
	ingestSource      string
	ingestChunkTokens int
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Load documentation into the knowledge base",
		Long: `Load vehicle documentation files into the knowledge base.

Each file is split into paragraph chunks that the specs agent
retrieves when answering documentation questions.

Examples:
  pitcrew ingest manuals/silverado-2024.txt
  pitcrew ingest --source "Owner's Manual" manuals/*.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestSource, "source", "", "Source label (defaults to the file name)")
	cmd.Flags().IntVar(&ingestChunkTokens, "chunk-tokens", 500, "Maximum tokens per chunk")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if ingestChunkTokens <= 0 {
		return fmt.Errorf("chunk-tokens must be positive, got %d", ingestChunkTokens)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	kb, err := openKnowledgeBase(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = kb.Close() }()

	total := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		source := ingestSource
		if source == "" {
			source = filepath.Base(path)
		}

		chunks, err := kb.Ingest(source, string(data), ingestChunkTokens)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}
		total += chunks

		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d chunk(s)\n", path, chunks)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d chunk(s) from %d file(s)\n", total, len(args))
	}
	return nil
}
