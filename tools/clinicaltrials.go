// ClinicalTrials.gov search tool.
//
// Uses the v2 studies API (JSON), which replaced the legacy scraping
// approach for trial lookups.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const clinicalTrialsBaseURL = "https://clinicaltrials.gov/api/v2"

// maxTrialResults bounds how many studies a single search returns.
const maxTrialResults = 10

// ClinicalTrialsTool searches ClinicalTrials.gov for registered studies.
type ClinicalTrialsTool struct {
	BaseTool
	fetch   *fetcher
	baseURL string
}

// NewClinicalTrialsTool creates a ClinicalTrials.gov search tool.
func NewClinicalTrialsTool(timeoutSecs uint64) *ClinicalTrialsTool {
	return &ClinicalTrialsTool{
		fetch:   newFetcher(timeoutSecs),
		baseURL: clinicalTrialsBaseURL,
	}
}

// Metadata returns the tool metadata.
func (t *ClinicalTrialsTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "clinicaltrials_search",
		Description: "Search ClinicalTrials.gov for registered clinical trials. Use this to find trials of a drug or in a disease, with NCT IDs, phases, and status.",
		Parameters: []ToolParameter{
			{Name: "query", ParamType: "string", Description: "Search terms (e.g. 'sirolimus lymphangioleiomyomatosis')", Required: true},
		},
	}
}

type queryArgs struct {
	Query string `json:"query"`
}

// Validate validates the arguments.
func (t *ClinicalTrialsTool) Validate(args json.RawMessage) error {
	var a queryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(a.Query) == "" {
		return fmt.Errorf("query cannot be empty")
	}
	return nil
}

// study mirrors the subset of the v2 API response the tool reports.
type study struct {
	ProtocolSection struct {
		IdentificationModule struct {
			NCTID      string `json:"nctId"`
			BriefTitle string `json:"briefTitle"`
		} `json:"identificationModule"`
		StatusModule struct {
			OverallStatus string `json:"overallStatus"`
		} `json:"statusModule"`
		DesignModule struct {
			Phases []string `json:"phases"`
		} `json:"designModule"`
		ConditionsModule struct {
			Conditions []string `json:"conditions"`
		} `json:"conditionsModule"`
	} `json:"protocolSection"`
}

type studiesResponse struct {
	Studies []study `json:"studies"`
}

// Execute searches the studies API and formats the matches.
func (t *ClinicalTrialsTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a queryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	if strings.TrimSpace(a.Query) == "" {
		return FailureResultf("query cannot be empty"), nil
	}

	searchURL := fmt.Sprintf("%s/studies?query.term=%s&pageSize=%d",
		t.baseURL, url.QueryEscape(a.Query), maxTrialResults)

	body, err := t.fetch.get(ctx, searchURL)
	if err != nil {
		return FailureResult(fmt.Errorf("ClinicalTrials.gov search failed: %w", err)), nil
	}

	var resp studiesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return FailureResult(fmt.Errorf("unexpected ClinicalTrials.gov response: %w", err)), nil
	}

	if len(resp.Studies) == 0 {
		return SuccessResult(fmt.Sprintf("No clinical trials found for query: %s", a.Query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ClinicalTrials.gov results for '%s':\n\n", a.Query)
	for i, s := range resp.Studies {
		p := s.ProtocolSection
		phases := "N/A"
		if len(p.DesignModule.Phases) > 0 {
			phases = strings.Join(p.DesignModule.Phases, ", ")
		}
		conditions := "N/A"
		if len(p.ConditionsModule.Conditions) > 0 {
			conditions = strings.Join(p.ConditionsModule.Conditions, "; ")
		}

		fmt.Fprintf(&b, "%d. %s\n", i+1, p.IdentificationModule.BriefTitle)
		fmt.Fprintf(&b, "   NCT ID: %s\n", p.IdentificationModule.NCTID)
		fmt.Fprintf(&b, "   Status: %s\n", p.StatusModule.OverallStatus)
		fmt.Fprintf(&b, "   Phase: %s\n", phases)
		fmt.Fprintf(&b, "   Conditions: %s\n", conditions)
		fmt.Fprintf(&b, "   URL: https://clinicaltrials.gov/study/%s\n\n", p.IdentificationModule.NCTID)
	}

	return SuccessResult(b.String()), nil
}
