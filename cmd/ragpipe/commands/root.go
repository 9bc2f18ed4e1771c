// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all ragpipe CLI operations
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗  █████╗  ██████╗ ██████╗ ██╗██████╗ ███████╗
██╔══██╗██╔══██╗██╔════╝ ██╔══██╗██║██╔══██╗██╔════╝
██████╔╝███████║██║  ███╗██████╔╝██║██████╔╝█████╗
██╔══██╗██╔══██║██║   ██║██╔═══╝ ██║██╔═══╝ ██╔══╝
██║  ██║██║  ██║╚██████╔╝██║     ██║██║     ███████╗
╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝╚═╝     ╚══════╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ragpipe",
		Short: "Contextual chunking and retrieval pipeline",
		Long: banner + `
Ragpipe ingests documents into a vector store with contextual
chunking: every chunk is stored together with a short generated
context situating it within its parent document, which markedly
improves retrieval quality.

Commands talk to OpenAI for generation/embeddings and to Qdrant
for vector storage. Configure via environment variables or .env.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, table, json)")

	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
