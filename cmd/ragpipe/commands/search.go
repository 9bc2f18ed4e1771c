// ABOUTME: CLI command to search stored chunks
// ABOUTME: Semantic search over the contextualized chunk index
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	searchLimit     int
	searchThreshold float64
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search stored chunks",
		Long: `Search stored document chunks by semantic similarity.

The query is embedded and matched against the contextualized chunks
in Qdrant; results below the score threshold are dropped.

Examples:
  ragpipe search "rate limiting"
  ragpipe search --limit 10 "batch scheduling"
  ragpipe search --format json "contextual retrieval"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")
	cmd.Flags().Float64Var(&searchThreshold, "threshold", -1, "Minimum similarity score (-1 uses the configured default)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	query := args[0]

	ctx := cmd.Context()
	s, err := newStack(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.querier.Search(ctx, query, searchLimit, float32(searchThreshold))
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No chunks found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tDOCUMENT\tCHUNK\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t--------\t-----\t-------\n")

	for _, result := range results {
		label := result.Title
		if label == "" {
			label = result.DocumentID
		}
		fmt.Fprintf(w, "%.3f\t%s\t%d\t%s\n",
			result.Score, truncate(label, 24), result.ChunkIndex, truncate(result.Content, 60))
	}

	return w.Flush()
}
