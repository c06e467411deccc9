// Rare disease database tools: Orphanet and GARD.
//
// Orphanet is scraped from its disease search page; GARD tries the
// disease slug page first and falls back to its search API (JSON) on 404,
// matching how the two registries actually expose their data.

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
	orphanetBaseURL = "https://www.orpha.net"
	gardBaseURL     = "https://rarediseases.info.nih.gov"
)

// OrphanetTool searches the Orphanet rare disease database.
type OrphanetTool struct {
	BaseTool
	fetch   *fetcher
	baseURL string
}

// NewOrphanetTool creates an Orphanet search tool.
func NewOrphanetTool(timeoutSecs uint64) *OrphanetTool {
	return &OrphanetTool{
		fetch:   newFetcher(timeoutSecs),
		baseURL: orphanetBaseURL,
	}
}

// Metadata returns the tool metadata.
func (t *OrphanetTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "orphanet_search",
		Description: "Search the Orphanet database for rare disease information. Use this to get epidemiology, genetics, and clinical classification data.",
		Parameters: []ToolParameter{
			{Name: "disease", ParamType: "string", Description: "Name of the rare disease", Required: true},
		},
	}
}

type diseaseArgs struct {
	Disease string `json:"disease"`
}

// Validate validates the arguments.
func (t *OrphanetTool) Validate(args json.RawMessage) error {
	var a diseaseArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(a.Disease) == "" {
		return fmt.Errorf("disease name cannot be empty")
	}
	return nil
}

// Execute searches Orphanet and extracts what disease data is present.
func (t *OrphanetTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a diseaseArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	disease := strings.TrimSpace(a.Disease)
	if disease == "" {
		return FailureResultf("disease name cannot be empty"), nil
	}

	searchURL := fmt.Sprintf(
		"%s/consor/cgi-bin/Disease_Search.php?lng=EN&Disease_Disease_Search_diseaseGroup=%s",
		t.baseURL, url.QueryEscape(disease))

	body, err := t.fetch.get(ctx, searchURL)
	if err != nil {
		return FailureResult(fmt.Errorf("could not find %s in Orphanet: %w", disease, err)), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return FailureResult(fmt.Errorf("could not parse Orphanet page: %w", err)), nil
	}

	prevalence := fieldContaining(doc, "Prevalence")
	inheritance := fieldContaining(doc, "Inheritance")
	onset := fieldContaining(doc, "Age of onset")

	var b strings.Builder
	fmt.Fprintf(&b, "Orphanet data for %s:\n\n", disease)
	fmt.Fprintf(&b, "Prevalence: %s\n", orUnknown(prevalence))
	fmt.Fprintf(&b, "Inheritance: %s\n", orUnknown(inheritance))
	fmt.Fprintf(&b, "Age of Onset: %s\n", orUnknown(onset))
	fmt.Fprintf(&b, "Source: %s\n", searchURL)

	return SuccessResult(b.String()), nil
}

// fieldContaining returns the value of the first element whose text
// includes the given label. Orphanet renders disease attributes as
// "<label>: <value>" runs.
func fieldContaining(doc *goquery.Document, label string) string {
	var value string
	doc.Find("li, td, p, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := collapseWhitespace(s.Text())
		if strings.Contains(text, label) && len(text) < 200 {
			if idx := strings.Index(text, label); idx >= 0 {
				text = text[idx+len(label):]
			}
			value = strings.TrimSpace(strings.TrimLeft(text, ": "))
			return false
		}
		return true
	})
	return value
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// GARDTool searches the Genetic and Rare Diseases Information Center.
type GARDTool struct {
	BaseTool
	fetch   *fetcher
	baseURL string
}

// NewGARDTool creates a GARD search tool.
func NewGARDTool(timeoutSecs uint64) *GARDTool {
	return &GARDTool{
		fetch:   newFetcher(timeoutSecs),
		baseURL: gardBaseURL,
	}
}

// Metadata returns the tool metadata.
func (t *GARDTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "gard_search",
		Description: "Search GARD (Genetic and Rare Diseases Information Center). Use this for patient-friendly disease information and resources.",
		Parameters: []ToolParameter{
			{Name: "disease", ParamType: "string", Description: "Name of the rare disease", Required: true},
		},
	}
}

// Validate validates the arguments.
func (t *GARDTool) Validate(args json.RawMessage) error {
	var a diseaseArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(a.Disease) == "" {
		return fmt.Errorf("disease name cannot be empty")
	}
	return nil
}

// gardEntry mirrors the GARD search API response entries.
type gardEntry struct {
	Name     string   `json:"name"`
	GardID   string   `json:"gard_id"`
	Synonyms []string `json:"synonyms"`
}

// Execute tries the disease slug page, then the search API on 404.
func (t *GARDTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a diseaseArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	disease := strings.TrimSpace(a.Disease)
	if disease == "" {
		return FailureResultf("disease name cannot be empty"), nil
	}

	slug := strings.ReplaceAll(strings.ToLower(disease), " ", "-")
	pageURL := fmt.Sprintf("%s/diseases/%s", t.baseURL, slug)

	body, status, err := t.fetch.getWithStatus(ctx, pageURL)
	if err != nil {
		return FailureResult(fmt.Errorf("could not reach GARD: %w", err)), nil
	}

	if status == 200 {
		text, err := extractReadableText(body)
		if err == nil && text != "" {
			return SuccessResult(fmt.Sprintf(
				"GARD information for %s:\n\n%s\n\nURL: %s\n",
				disease, truncate(text, 1000), pageURL)), nil
		}
	}

	// Slug miss: fall back to the search API
	apiURL := fmt.Sprintf("%s/api/gard/search?q=%s", t.baseURL, url.QueryEscape(disease))
	body, err = t.fetch.get(ctx, apiURL)
	if err != nil {
		return FailureResult(fmt.Errorf("could not find %s in GARD: %w", disease, err)), nil
	}

	var entries []gardEntry
	if err := json.Unmarshal(body, &entries); err != nil || len(entries) == 0 {
		return FailureResultf("could not find %s in GARD", disease), nil
	}

	first := entries[0]
	var b strings.Builder
	fmt.Fprintf(&b, "GARD information for %s:\n\n", disease)
	fmt.Fprintf(&b, "Name: %s\n", first.Name)
	fmt.Fprintf(&b, "GARD ID: %s\n", orNA(first.GardID))
	if len(first.Synonyms) > 0 {
		fmt.Fprintf(&b, "Synonyms: %s\n", strings.Join(first.Synonyms, ", "))
	}
	fmt.Fprintf(&b, "URL: %s/diseases/%s\n", t.baseURL, first.GardID)

	return SuccessResult(b.String()), nil
}
