// Generic webpage content extraction tool.
//
// Pulls readable main content out of arbitrary pages (press releases,
// reports, disease foundation sites) so agents can analyze them without
// seeing raw markup.

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// webpageContentCap bounds extracted text before it enters a prompt.
const webpageContentCap = 3000

// WebpageTool extracts clean text content from any webpage.
type WebpageTool struct {
	BaseTool
	fetch *fetcher
}

// NewWebpageTool creates a webpage extraction tool.
func NewWebpageTool(timeoutSecs uint64) *WebpageTool {
	return &WebpageTool{fetch: newFetcher(timeoutSecs)}
}

// Metadata returns the tool metadata.
func (t *WebpageTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "extract_webpage",
		Description: "Extract clean text content from any webpage. Use this to analyze specific articles, press releases, or reports.",
		Parameters: []ToolParameter{
			{Name: "url", ParamType: "string", Description: "Full URL of the webpage", Required: true},
		},
	}
}

type webpageArgs struct {
	URL string `json:"url"`
}

// Validate validates the arguments.
func (t *WebpageTool) Validate(args json.RawMessage) error {
	var a webpageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if a.URL == "" {
		return fmt.Errorf("url cannot be empty")
	}
	return nil
}

// Execute fetches the page and extracts its main text.
func (t *WebpageTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a webpageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	if a.URL == "" {
		return FailureResultf("url cannot be empty"), nil
	}

	body, err := t.fetch.get(ctx, a.URL)
	if err != nil {
		return FailureResult(fmt.Errorf("could not fetch %s: %w", a.URL, err)), nil
	}

	text, err := extractReadableText(body)
	if err != nil {
		return FailureResult(fmt.Errorf("could not extract content from %s: %w", a.URL, err)), nil
	}
	if text == "" {
		return FailureResultf("no readable content found at %s", a.URL), nil
	}

	return SuccessResult(fmt.Sprintf("Content from %s:\n\n%s", a.URL, truncate(text, webpageContentCap))), nil
}

// extractReadableText strips boilerplate elements and returns the page's
// visible text with whitespace collapsed. Prefers <article>/<main> when the
// page marks its content region.
func extractReadableText(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe, nav, header, footer, aside").Remove()

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("main").First()
	}
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	return collapseWhitespace(root.Text()), nil
}

// collapseWhitespace normalizes runs of whitespace to single spaces while
// preserving paragraph breaks.
func collapseWhitespace(s string) string {
	var b strings.Builder
	lastBlank := true

	for _, line := range strings.Split(s, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			if !lastBlank {
				b.WriteString("\n")
				lastBlank = true
			}
			continue
		}
		if !lastBlank {
			b.WriteString("\n")
		}
		b.WriteString(strings.Join(fields, " "))
		lastBlank = false
	}

	return strings.TrimSpace(b.String())
}
