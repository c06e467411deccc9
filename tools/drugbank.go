// DrugBank drug information tool.
//
// DrugBank pages carry mechanism of action and pharmacodynamics in
// definition lists (dt/dd pairs); sections are extracted by heading text
// so minor layout changes degrade to missing sections, not failures.

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const drugbankBaseURL = "https://go.drugbank.com"

// drugSectionCap bounds each extracted section before it enters a prompt.
const drugSectionCap = 500

// DrugBankTool fetches mechanism-of-action details from DrugBank.
type DrugBankTool struct {
	BaseTool
	fetch   *fetcher
	baseURL string
}

// NewDrugBankTool creates a DrugBank lookup tool.
func NewDrugBankTool(timeoutSecs uint64) *DrugBankTool {
	return &DrugBankTool{
		fetch:   newFetcher(timeoutSecs),
		baseURL: drugbankBaseURL,
	}
}

// Metadata returns the tool metadata.
func (t *DrugBankTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "drugbank_mechanism",
		Description: "Get detailed mechanism of action and pharmacodynamics from DrugBank. Use this to understand HOW a drug works at the molecular level.",
		Parameters: []ToolParameter{
			{Name: "drug", ParamType: "string", Description: "Name of the drug (e.g. 'aspirin', 'metformin')", Required: true},
		},
	}
}

type drugArgs struct {
	Drug string `json:"drug"`
}

// Validate validates the arguments.
func (t *DrugBankTool) Validate(args json.RawMessage) error {
	var a drugArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(a.Drug) == "" {
		return fmt.Errorf("drug name cannot be empty")
	}
	return nil
}

// Execute fetches the drug page and extracts mechanism sections.
func (t *DrugBankTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a drugArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	drug := strings.TrimSpace(a.Drug)
	if drug == "" {
		return FailureResultf("drug name cannot be empty"), nil
	}

	slug := strings.ReplaceAll(strings.ToLower(drug), " ", "_")
	pageURL := fmt.Sprintf("%s/drugs/%s", t.baseURL, slug)

	body, err := t.fetch.get(ctx, pageURL)
	if err != nil {
		return FailureResult(fmt.Errorf("could not retrieve DrugBank data for %s: %w", drug, err)), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return FailureResult(fmt.Errorf("could not parse DrugBank page for %s: %w", drug, err)), nil
	}

	mechanism := definitionFor(doc, "Mechanism of action")
	pharmacodynamics := definitionFor(doc, "Pharmacodynamics")
	indication := definitionFor(doc, "Indication")

	if mechanism == "" && pharmacodynamics == "" && indication == "" {
		return FailureResultf("no drug information found on DrugBank for %s", drug), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "DrugBank information for %s:\n\n", drug)
	if indication != "" {
		fmt.Fprintf(&b, "Indication:\n%s\n\n", truncate(indication, drugSectionCap))
	}
	if mechanism != "" {
		fmt.Fprintf(&b, "Mechanism of Action:\n%s\n\n", truncate(mechanism, drugSectionCap))
	}
	if pharmacodynamics != "" {
		fmt.Fprintf(&b, "Pharmacodynamics:\n%s\n\n", truncate(pharmacodynamics, drugSectionCap))
	}
	fmt.Fprintf(&b, "Source: %s\n", pageURL)

	return SuccessResult(b.String()), nil
}

// definitionFor returns the dd text following the dt whose text matches
// the given heading, or "" when the section is absent.
func definitionFor(doc *goquery.Document, heading string) string {
	var value string
	doc.Find("dt").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(s.Text()), heading) {
			value = collapseWhitespace(s.NextFiltered("dd").Text())
			return false
		}
		return true
	})
	return value
}
