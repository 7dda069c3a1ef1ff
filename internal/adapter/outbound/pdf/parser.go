// Package pdf extracts text from PDF documents with MuPDF.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/gen2brain/go-fitz"
)

// DefaultMaxPages bounds how many pages are read from one document.
const DefaultMaxPages = 50

// Parser implements outbound.DocumentParserPort.
type Parser struct {
	maxPages int
}

// NewParser creates a PDF parser. maxPages <= 0 uses DefaultMaxPages.
func NewParser(maxPages int) *Parser {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Parser{maxPages: maxPages}
}

// ExtractText returns the text of every page, separated by blank lines.
func (p *Parser) ExtractText(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := min(doc.NumPage(), p.maxPages)
	parts := make([]string, 0, pages)
	for i := 0; i < pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i+1, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

var _ outbound.DocumentParserPort = (*Parser)(nil)
