// ABOUTME: Loader reads document text from plain text, markdown, and PDF files
// ABOUTME: Returns extracted text plus source metadata for the ingestion pipeline
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/harper/ragpipe/internal/models"
)

// Load reads a document file and returns its text content together
// with source metadata derived from the filename. Markdown is reduced
// to plain text; PDFs are extracted page by page; everything else is
// read as-is.
func Load(path string) (string, map[string]string, error) {
	metadata := map[string]string{
		models.MetaSource: filepath.Base(path),
		models.MetaTitle:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	var content string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		metadata[models.MetaType] = "pdf"
		content, err = loadPDF(path)
	case ".md", ".markdown":
		metadata[models.MetaType] = "markdown"
		content, err = loadMarkdown(path)
	default:
		metadata[models.MetaType] = "text"
		content, err = loadText(path)
	}
	if err != nil {
		return "", nil, err
	}

	return content, metadata, nil
}

func loadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// loadMarkdown parses the file with goldmark and collects the text
// segments of the AST, so markup does not pollute the chunks.
func loadMarkdown(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return ExtractMarkdownText(data), nil
}

// ExtractMarkdownText reduces markdown source to its plain text,
// separating block-level nodes with blank lines.
func ExtractMarkdownText(source []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteString("\n")
			}
		case *ast.Heading, *ast.Paragraph, *ast.ListItem:
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}

func loadPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}

	data, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("reading text of %s: %w", path, err)
	}

	return string(data), nil
}
