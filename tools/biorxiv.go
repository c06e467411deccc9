// bioRxiv preprint search tool.
//
// Parses the bioRxiv search page (highwire citation markup) tolerantly;
// missing fields degrade to N/A rather than failing the search.

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const biorxivBaseURL = "https://www.biorxiv.org"

// maxPreprintResults bounds how many preprints a single search returns.
const maxPreprintResults = 5

// BioRxivTool searches bioRxiv for recent preprints.
type BioRxivTool struct {
	BaseTool
	fetch   *fetcher
	baseURL string
}

// NewBioRxivTool creates a bioRxiv search tool.
func NewBioRxivTool(timeoutSecs uint64) *BioRxivTool {
	return &BioRxivTool{
		fetch:   newFetcher(timeoutSecs),
		baseURL: biorxivBaseURL,
	}
}

// Metadata returns the tool metadata.
func (t *BioRxivTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "biorxiv_preprints",
		Description: "Search bioRxiv for the latest preprint research papers. Use this to find cutting-edge, unpublished research.",
		Parameters: []ToolParameter{
			{Name: "query", ParamType: "string", Description: "Search query", Required: true},
		},
	}
}

// Validate validates the arguments.
func (t *BioRxivTool) Validate(args json.RawMessage) error {
	var a queryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(a.Query) == "" {
		return fmt.Errorf("query cannot be empty")
	}
	return nil
}

// preprint holds the fields extracted per search hit.
type preprint struct {
	Title   string
	Authors string
	Date    string
	DOI     string
	URL     string
}

// Execute searches bioRxiv and formats the preprints.
func (t *BioRxivTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a queryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	if strings.TrimSpace(a.Query) == "" {
		return FailureResultf("query cannot be empty"), nil
	}

	searchURL := fmt.Sprintf("%s/search/%s", t.baseURL, url.PathEscape(a.Query))

	body, err := t.fetch.get(ctx, searchURL)
	if err != nil {
		return FailureResult(fmt.Errorf("bioRxiv search failed: %w", err)), nil
	}

	preprints, err := t.parseSearchResults(body)
	if err != nil {
		return FailureResult(fmt.Errorf("could not parse bioRxiv results: %w", err)), nil
	}
	if len(preprints) == 0 {
		return SuccessResult(fmt.Sprintf("No preprints found for: %s", a.Query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Latest bioRxiv preprints for '%s':\n\n", a.Query)
	for i, p := range preprints {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Title)
		fmt.Fprintf(&b, "   Authors: %s\n", orNA(p.Authors))
		fmt.Fprintf(&b, "   Date: %s\n", orNA(p.Date))
		fmt.Fprintf(&b, "   DOI: %s\n", orNA(p.DOI))
		fmt.Fprintf(&b, "   URL: %s\n\n", orNA(p.URL))
	}

	return SuccessResult(b.String()), nil
}

// parseSearchResults extracts preprints from a bioRxiv search page.
func (t *BioRxivTool) parseSearchResults(html []byte) ([]preprint, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var preprints []preprint
	doc.Find(".highwire-article-citation").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find(".highwire-cite-title").First().Text())
		if title == "" {
			return true
		}

		p := preprint{
			Title:   title,
			Authors: strings.TrimSpace(s.Find(".highwire-citation-authors").First().Text()),
			Date:    strings.TrimSpace(s.Find(".highwire-cite-metadata-date").First().Text()),
			DOI:     strings.TrimSpace(s.Find(".highwire-cite-metadata-doi").First().Text()),
		}
		if href, ok := s.Find("a").First().Attr("href"); ok {
			p.URL = t.baseURL + href
		}

		preprints = append(preprints, p)
		return len(preprints) < maxPreprintResults
	})

	return preprints, nil
}
