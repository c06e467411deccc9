// Stage task prompts.
//
// Each stage gets a structured brief: objectives, sources to hit, and the
// expected deliverable. Findings from earlier stages arrive separately as
// agent context, so the prompts reference them rather than repeat them.

package research

import "fmt"

func discoveryTask(query string) string {
	return fmt.Sprintf(`STAGE 1: INITIAL DISCOVERY

Research Question: %q

Objectives:
1. Identify 5-10 candidate drugs currently approved for common conditions
2. Search ClinicalTrials.gov for any trials in rare diseases
3. Search PubMed for supporting literature (10-15 papers)
4. List potential rare diseases suitable for repurposing

Deliverable: Initial candidate list with a brief rationale for each drug,
citing NCT IDs and PMIDs where available.`, query)
}

func mechanismTask() string {
	return `STAGE 2: DEEP MECHANISM ANALYSIS

Based on the Stage 1 findings, conduct deep analysis.

For the TOP 3 candidate drugs:
1. Look up DrugBank for detailed mechanism of action
2. Search Google Scholar for highly-cited mechanistic studies
3. Find bioRxiv preprints on novel uses
4. Search Orphanet for target rare diseases
5. Analyze mechanistic overlap between the approved indication and the target rare disease

For the TOP 3 rare diseases:
1. Search GARD for pathophysiology
2. Find the latest research on disease mechanisms
3. Identify molecular targets

Deliverable: Detailed mechanism-based analysis explaining WHY repurposing could work.`
}

func marketTask() string {
	return `STAGE 3: MARKET VALIDATION

For the top opportunities identified so far:
1. Look up competitor pipelines (Pfizer, Novartis, Roche, and other relevant companies)
2. Assess market size for the target rare diseases
3. Analyze the competitive landscape
4. Evaluate commercial feasibility
5. Assess orphan drug designation potential

Deliverable: Commercial viability assessment with competitive positioning.`
}

func synthesisTask() string {
	return `STAGE 4: SYNTHESIS & STRATEGIC RECOMMENDATIONS

Integrate ALL findings from the earlier stages into a comprehensive report.

STRUCTURE:
1. Executive Summary (3-5 key insights)
2. Top 3 Repurposing Opportunities (ranked by potential)
   - Drug name & current use
   - Target rare disease
   - Mechanistic rationale (detailed)
   - Clinical evidence
   - Market potential
   - Competitive landscape
   - Risk assessment
3. Strategic Recommendations
   - Next steps for clinical development
   - Partnership opportunities
   - Regulatory pathway
   - Timeline estimates
4. Appendix
   - All clinical trials found
   - Complete literature citations
   - Market data sources

QUALITY STANDARDS:
- All claims must be evidence-based
- Cite specific NCT IDs, PMIDs, and papers
- Explain mechanisms in detail
- Provide realistic market assessments
- Acknowledge limitations and risks

Deliverable: A comprehensive, publication-ready research report.`
}
