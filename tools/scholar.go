// Google Scholar search tool.
//
// Scholar has no API; this parses the result page tolerantly and degrades
// to whatever fields are present. Citation counts come from the "Cited by"
// footer links.

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const scholarBaseURL = "https://scholar.google.com"

// maxScholarResults bounds how many papers a single search returns.
const maxScholarResults = 8

// ScholarTool searches Google Scholar for academic papers.
type ScholarTool struct {
	BaseTool
	fetch   *fetcher
	baseURL string
}

// NewScholarTool creates a Google Scholar search tool.
func NewScholarTool(timeoutSecs uint64) *ScholarTool {
	return &ScholarTool{
		fetch:   newFetcher(timeoutSecs),
		baseURL: scholarBaseURL,
	}
}

// Metadata returns the tool metadata.
func (t *ScholarTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "scholar_search",
		Description: "Search Google Scholar for academic research papers. Use this for in-depth literature review and citation analysis.",
		Parameters: []ToolParameter{
			{Name: "query", ParamType: "string", Description: "Search query (e.g. 'aspirin rare disease repurposing')", Required: true},
		},
	}
}

// Validate validates the arguments.
func (t *ScholarTool) Validate(args json.RawMessage) error {
	var a queryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(a.Query) == "" {
		return fmt.Errorf("query cannot be empty")
	}
	return nil
}

// scholarPaper holds the fields extracted per result.
type scholarPaper struct {
	Title     string
	Byline    string
	Snippet   string
	Citations int
	URL       string
}

// Execute searches Scholar and formats the papers.
func (t *ScholarTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a queryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	if strings.TrimSpace(a.Query) == "" {
		return FailureResultf("query cannot be empty"), nil
	}

	searchURL := fmt.Sprintf("%s/scholar?hl=en&q=%s", t.baseURL, url.QueryEscape(a.Query))

	body, err := t.fetch.get(ctx, searchURL)
	if err != nil {
		return FailureResult(fmt.Errorf("Google Scholar search failed: %w", err)), nil
	}

	papers, err := parseScholarResults(body)
	if err != nil {
		return FailureResult(fmt.Errorf("could not parse Google Scholar results: %w", err)), nil
	}
	if len(papers) == 0 {
		return SuccessResult(fmt.Sprintf("No papers found for query: %s", a.Query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Google Scholar results for '%s':\n\n", a.Query)
	for i, p := range papers {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Title)
		fmt.Fprintf(&b, "   Source: %s\n", orNA(p.Byline))
		fmt.Fprintf(&b, "   Citations: %d\n", p.Citations)
		if p.Snippet != "" {
			fmt.Fprintf(&b, "   Abstract: %s\n", truncate(p.Snippet, 500))
		}
		fmt.Fprintf(&b, "   URL: %s\n\n", orNA(p.URL))
	}

	return SuccessResult(b.String()), nil
}

// parseScholarResults extracts papers from a Scholar result page.
func parseScholarResults(html []byte) ([]scholarPaper, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var papers []scholarPaper
	doc.Find(".gs_r.gs_or").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		titleLink := s.Find(".gs_rt a").First()
		title := strings.TrimSpace(titleLink.Text())
		if title == "" {
			// Citations-only entries render the title without a link
			title = strings.TrimSpace(s.Find(".gs_rt").First().Text())
		}
		if title == "" {
			return true
		}

		paper := scholarPaper{
			Title:   title,
			Byline:  strings.TrimSpace(s.Find(".gs_a").First().Text()),
			Snippet: collapseWhitespace(s.Find(".gs_rs").First().Text()),
		}
		paper.URL, _ = titleLink.Attr("href")

		s.Find(".gs_fl a").Each(func(_ int, link *goquery.Selection) {
			text := strings.TrimSpace(link.Text())
			if n, ok := strings.CutPrefix(text, "Cited by "); ok {
				if count, err := strconv.Atoi(n); err == nil {
					paper.Citations = count
				}
			}
		})

		papers = append(papers, paper)
		return len(papers) < maxScholarResults
	})

	return papers, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
