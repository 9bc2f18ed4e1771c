// ABOUTME: CLI command to ask a question against the stored documents
// ABOUTME: Streams the grounded answer to stdout as it is generated
package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var askLimit int

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question against the stored documents",
		Long: `Retrieve the most relevant chunks for a question and stream an
answer grounded in them.

Examples:
  ragpipe ask "How does the batch scheduler pace requests?"
  ragpipe ask --limit 8 "What is contextual chunking?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().IntVar(&askLimit, "limit", 5, "Number of chunks to retrieve")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(askLimit, "limit"); err != nil {
		return err
	}

	question := args[0]

	ctx := cmd.Context()
	s, err := newStack(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if !quiet {
		cyan := color.New(color.FgCyan)
		_, _ = cyan.Fprintf(cmd.OutOrStdout(), "Q: %s\n\n", question)
	}

	out := cmd.OutOrStdout()
	_, err = s.querier.Ask(ctx, question, askLimit, func(delta string) {
		_, _ = fmt.Fprint(out, delta)
	})
	if err != nil {
		return fmt.Errorf("answering: %w", err)
	}

	_, _ = fmt.Fprintln(out)
	return nil
}
