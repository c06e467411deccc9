// PubMed literature search tool.
//
// Uses the NCBI E-utilities JSON endpoints: esearch for PMIDs, then
// esummary for titles, journals, and dates.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const pubmedBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// maxPubMedResults bounds how many papers a single search returns.
const maxPubMedResults = 15

// PubMedTool searches PubMed via NCBI E-utilities.
type PubMedTool struct {
	BaseTool
	fetch   *fetcher
	baseURL string
}

// NewPubMedTool creates a PubMed search tool.
func NewPubMedTool(timeoutSecs uint64) *PubMedTool {
	return &PubMedTool{
		fetch:   newFetcher(timeoutSecs),
		baseURL: pubmedBaseURL,
	}
}

// Metadata returns the tool metadata.
func (t *PubMedTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "pubmed_search",
		Description: "Search PubMed for peer-reviewed biomedical literature. Use this to find published papers with PMIDs for citation.",
		Parameters: []ToolParameter{
			{Name: "query", ParamType: "string", Description: "Search query (e.g. 'metformin drug repurposing rare disease')", Required: true},
		},
	}
}

// Validate validates the arguments.
func (t *PubMedTool) Validate(args json.RawMessage) error {
	var a queryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(a.Query) == "" {
		return fmt.Errorf("query cannot be empty")
	}
	return nil
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type esummaryEntry struct {
	Title           string `json:"title"`
	FullJournalName string `json:"fulljournalname"`
	PubDate         string `json:"pubdate"`
	Authors         []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

// Execute runs esearch then esummary and formats the papers.
func (t *PubMedTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a queryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	if strings.TrimSpace(a.Query) == "" {
		return FailureResultf("query cannot be empty"), nil
	}

	searchURL := fmt.Sprintf("%s/esearch.fcgi?db=pubmed&retmode=json&retmax=%d&sort=relevance&term=%s",
		t.baseURL, maxPubMedResults, url.QueryEscape(a.Query))

	body, err := t.fetch.get(ctx, searchURL)
	if err != nil {
		return FailureResult(fmt.Errorf("PubMed search failed: %w", err)), nil
	}

	var search esearchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return FailureResult(fmt.Errorf("unexpected PubMed search response: %w", err)), nil
	}

	pmids := search.ESearchResult.IDList
	if len(pmids) == 0 {
		return SuccessResult(fmt.Sprintf("No PubMed papers found for query: %s", a.Query)), nil
	}

	summaryURL := fmt.Sprintf("%s/esummary.fcgi?db=pubmed&retmode=json&id=%s",
		t.baseURL, strings.Join(pmids, ","))

	body, err = t.fetch.get(ctx, summaryURL)
	if err != nil {
		return FailureResult(fmt.Errorf("PubMed summary fetch failed: %w", err)), nil
	}

	// esummary keys each entry by its PMID inside "result"
	var raw struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return FailureResult(fmt.Errorf("unexpected PubMed summary response: %w", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PubMed results for '%s':\n\n", a.Query)
	n := 0
	for _, pmid := range pmids {
		entryJSON, ok := raw.Result[pmid]
		if !ok {
			continue
		}
		var entry esummaryEntry
		if err := json.Unmarshal(entryJSON, &entry); err != nil {
			continue
		}

		n++
		authors := "N/A"
		if len(entry.Authors) > 0 {
			names := make([]string, 0, 3)
			for i, author := range entry.Authors {
				if i >= 3 {
					names = append(names, "et al.")
					break
				}
				names = append(names, author.Name)
			}
			authors = strings.Join(names, ", ")
		}

		fmt.Fprintf(&b, "%d. %s\n", n, entry.Title)
		fmt.Fprintf(&b, "   Authors: %s\n", authors)
		fmt.Fprintf(&b, "   Journal: %s (%s)\n", entry.FullJournalName, entry.PubDate)
		fmt.Fprintf(&b, "   PMID: %s\n", pmid)
		fmt.Fprintf(&b, "   URL: https://pubmed.ncbi.nlm.nih.gov/%s/\n\n", pmid)
	}

	if n == 0 {
		return SuccessResult(fmt.Sprintf("No PubMed papers found for query: %s", a.Query)), nil
	}

	return SuccessResult(b.String()), nil
}
