// General web search and company pipeline tools.
//
// Search goes through the DuckDuckGo HTML endpoint, which returns plain
// markup without JavaScript. Result links come back wrapped in a redirect
// URL whose uddg parameter carries the real destination.

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

const (
	duckduckgoBaseURL = "https://html.duckduckgo.com"
	maxSearchResults  = 8
	pipelineContentCap = 2000
)

// searchResult is one parsed web search hit.
type searchResult struct {
	Title   string
	URL     string
	Snippet string
}

// searchWeb runs a query against the DuckDuckGo HTML endpoint and parses
// the result list.
func searchWeb(ctx context.Context, f *fetcher, baseURL, query string) ([]searchResult, error) {
	searchURL := fmt.Sprintf("%s/html/?q=%s", baseURL, url.QueryEscape(query))
	body, err := f.get(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not parse search results: %w", err)
	}

	var results []searchResult
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find(".result__a").First()
		title := collapseWhitespace(link.Text())
		href, _ := link.Attr("href")
		snippet := collapseWhitespace(s.Find(".result__snippet").Text())
		if title == "" || href == "" {
			return true
		}
		results = append(results, searchResult{
			Title:   title,
			URL:     resolveRedirect(href),
			Snippet: snippet,
		})
		return len(results) < maxSearchResults
	})
	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's redirect link, returning the
// destination in the uddg parameter when present.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if dest := u.Query().Get("uddg"); dest != "" {
		return dest
	}
	if u.Scheme == "" {
		return "https:" + href
	}
	return href
}

// WebSearchTool performs a general web search.
type WebSearchTool struct {
	BaseTool
	fetch   *fetcher
	baseURL string
}

// NewWebSearchTool creates a web search tool.
func NewWebSearchTool(timeoutSecs uint64) *WebSearchTool {
	return &WebSearchTool{
		fetch:   newFetcher(timeoutSecs),
		baseURL: duckduckgoBaseURL,
	}
}

// Metadata returns the tool metadata.
func (t *WebSearchTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "web_search",
		Description: "Search the web for information on any topic. Returns titles, URLs, and snippets of the top results.",
		Parameters: []ToolParameter{
			{Name: "query", ParamType: "string", Description: "The search query", Required: true},
		},
	}
}

// Validate validates the arguments.
func (t *WebSearchTool) Validate(args json.RawMessage) error {
	var a queryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(a.Query) == "" {
		return fmt.Errorf("query cannot be empty")
	}
	return nil
}

// Execute runs the search and formats the results.
func (t *WebSearchTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a queryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	query := strings.TrimSpace(a.Query)
	if query == "" {
		return FailureResultf("query cannot be empty"), nil
	}

	results, err := searchWeb(ctx, t.fetch, t.baseURL, query)
	if err != nil {
		return FailureResult(fmt.Errorf("web search failed: %w", err)), nil
	}
	if len(results) == 0 {
		return FailureResultf("no results found for %q", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Web search results for %q:\n\n", query)
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, r.Title, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", r.Snippet)
		}
		b.WriteString("\n")
	}
	return SuccessResult(b.String()), nil
}

// CompanyPipelineTool looks up a pharmaceutical company's drug pipeline.
type CompanyPipelineTool struct {
	BaseTool
	fetch   *fetcher
	baseURL string
}

// NewCompanyPipelineTool creates a company pipeline tool.
func NewCompanyPipelineTool(timeoutSecs uint64) *CompanyPipelineTool {
	return &CompanyPipelineTool{
		fetch:   newFetcher(timeoutSecs),
		baseURL: duckduckgoBaseURL,
	}
}

// Metadata returns the tool metadata.
func (t *CompanyPipelineTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "company_pipeline",
		Description: "Look up a pharmaceutical company's drug development pipeline. Use this to assess competitive landscape and development activity.",
		Parameters: []ToolParameter{
			{Name: "company", ParamType: "string", Description: "Name of the pharmaceutical company", Required: true},
		},
	}
}

type companyArgs struct {
	Company string `json:"company"`
}

// Validate validates the arguments.
func (t *CompanyPipelineTool) Validate(args json.RawMessage) error {
	var a companyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(a.Company) == "" {
		return fmt.Errorf("company name cannot be empty")
	}
	return nil
}

// Execute searches for the company's pipeline page and extracts its text.
func (t *CompanyPipelineTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a companyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	company := strings.TrimSpace(a.Company)
	if company == "" {
		return FailureResultf("company name cannot be empty"), nil
	}

	query := fmt.Sprintf("%s pharmaceutical pipeline", company)
	results, err := searchWeb(ctx, t.fetch, t.baseURL, query)
	if err != nil {
		return FailureResult(fmt.Errorf("pipeline search failed: %w", err)), nil
	}
	if len(results) == 0 {
		return FailureResultf("no pipeline information found for %s", company), nil
	}

	top := results[0]
	body, err := t.fetch.get(ctx, top.URL)
	if err != nil {
		// The page itself may be unreachable; the search hits still help.
		var b strings.Builder
		fmt.Fprintf(&b, "Pipeline search results for %s:\n\n", company)
		for i, r := range results {
			fmt.Fprintf(&b, "%d. %s\n   %s\n   %s\n\n", i+1, r.Title, r.URL, r.Snippet)
		}
		return SuccessResult(b.String()), nil
	}

	text, err := extractReadableText(body)
	if err != nil || text == "" {
		return FailureResultf("could not extract pipeline content from %s", top.URL), nil
	}

	return SuccessResult(fmt.Sprintf(
		"Pipeline information for %s (from %s):\n\n%s\n",
		company, top.URL, truncate(text, pipelineContentCap))), nil
}
