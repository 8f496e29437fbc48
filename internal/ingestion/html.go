package ingestion

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors are the elements treated as one line each when flattening
// an HTML resume export into text.
var blockSelectors = "h1, h2, h3, h4, h5, h6, p, li, td, dt, dd"

// ExtractText parses an HTML resume export and returns its visible text,
// one block-level element per line, cleaned with CleanText.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove non-content elements before flattening
	doc.Find("script, style, noscript, nav, footer, iframe, svg").Remove()

	var lines []string
	doc.Find(blockSelectors).Each(func(_ int, sel *goquery.Selection) {
		// Skip containers whose text is fully covered by nested blocks
		if sel.Find(blockSelectors).Length() > 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			lines = append(lines, text)
		}
	})

	// Fallback for markup without block structure
	if len(lines) == 0 {
		return CleanText(doc.Text()), nil
	}

	return CleanText(strings.Join(lines, "\n")), nil
}

// ReadResumeHTML reads an HTML resume file and returns its extracted text.
func ReadResumeHTML(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("resume file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}

	return ExtractText(string(content))
}
