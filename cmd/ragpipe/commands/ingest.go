// ABOUTME: CLI command to ingest documents into the vector store
// ABOUTME: Accepts inline text, stdin, or a file (txt, markdown, pdf)
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/ragpipe/internal/loader"
	"github.com/harper/ragpipe/internal/models"
)

var (
	ingestFile   string
	ingestTitle  string
	ingestSource string
	ingestType   string
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [text]",
		Short: "Ingest a document",
		Long: `Ingest a document: chunk it, generate a situating context per
chunk, embed the contextualized chunks, and store them in Qdrant.

Examples:
  ragpipe ingest "Plain text to index"
  ragpipe ingest --file report.pdf
  ragpipe ingest --file notes.md --title "Meeting notes"
  cat doc.txt | ragpipe ingest`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestFile, "file", "", "Read document from file (.txt, .md, .pdf)")
	cmd.Flags().StringVar(&ingestTitle, "title", "", "Document title")
	cmd.Flags().StringVar(&ingestSource, "source", "", "Document source")
	cmd.Flags().StringVar(&ingestType, "type", "", "Document type")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	var content string
	metadata := map[string]string{}

	if ingestFile != "" {
		loaded, fileMeta, err := loader.Load(ingestFile)
		if err != nil {
			return fmt.Errorf("loading file: %w", err)
		}
		content = loaded
		metadata = fileMeta
	} else if len(args) > 0 {
		content = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		content = string(data)
	}

	if ingestTitle != "" {
		metadata[models.MetaTitle] = ingestTitle
	}
	if ingestSource != "" {
		metadata[models.MetaSource] = ingestSource
	}
	if ingestType != "" {
		metadata[models.MetaType] = ingestType
	}

	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("no text provided")
	}

	ctx := cmd.Context()
	s, err := newStack(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if verbose {
		fmt.Fprintf(os.Stderr, "Ingesting %d bytes (chunk size %d words, overlap %d)\n",
			len(content), s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	}

	doc, err := s.ingestor.IngestText(ctx, content, metadata)
	if err != nil {
		return fmt.Errorf("ingesting document: %w", err)
	}

	if !quiet {
		green := color.New(color.FgGreen)
		_, _ = green.Fprintf(cmd.OutOrStdout(), "✓ Ingested document %s (%d chunks)\n", doc.ID, doc.ChunkCount)
	}
	return nil
}
