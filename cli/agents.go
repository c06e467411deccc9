// Pre-built research agent configurations.
//
// Six specialists cover the pipeline: a research director who runs discovery
// and synthesis, a deep research analyst for mechanism work, a market
// intelligence director, and three focused specialists (clinical trials,
// drug information, literature) available for single-agent questions.
//
// Information Hiding:
// - Agent creation details hidden
// - Tool configuration hidden

package cli

import (
	"fmt"

	"github.com/rxscope/rxscope/agent"
	"github.com/rxscope/rxscope/config"
	"github.com/rxscope/rxscope/llm"
	"github.com/rxscope/rxscope/research"
	"github.com/rxscope/rxscope/tools"
)

// Preset names. The three pipeline agents reuse the research package's
// stage agent names.
const (
	PresetDirector     = research.AgentDirector
	PresetDeepResearch = research.AgentDeepResearch
	PresetMarket       = research.AgentMarket
	PresetClinical     = "clinical_trials"
	PresetDrugInfo     = "drug_info"
	PresetLiterature   = "literature"
)

// PresetInfo describes an available agent preset.
type PresetInfo struct {
	Name        string
	Role        string
	Description string
}

// CreateAgent builds a named preset agent against the given provider.
// The mode scales the preset's iteration cap.
func CreateAgent(name string, provider llm.Provider, toolConfig tools.ToolConfig, mode config.Mode) (*agent.Agent, error) {
	timeout := toolConfig.Timeout()

	var builder *agent.Builder

	switch name {
	case PresetDirector:
		builder = agent.NewBuilder(PresetDirector).
			Role("Chief Research Officer").
			Goal("Orchestrate comprehensive, multi-stage pharmaceutical research to identify drug repurposing opportunities with high scientific and commercial potential").
			Backstory(`You are a former pharmaceutical R&D executive who led drug discovery programs at top-tier companies. You understand that QUALITY research takes TIME. You coordinate work methodically through multiple research stages and you NEVER rush research. You ensure thorough, evidence-based analysis.`).
			Tool(tools.NewClinicalTrialsTool(timeout)).
			Tool(tools.NewPubMedTool(timeout)).
			Tool(tools.NewWebSearchTool(timeout)).
			Tool(tools.NewWebpageTool(timeout)).
			MaxIterations(mode.ScaleIterations(20))

	case PresetDeepResearch:
		builder = agent.NewBuilder(PresetDeepResearch).
			Role("Deep Research Analyst").
			Goal("Conduct thorough, multi-source research across academic databases, rare disease registries, and pharmaceutical literature to provide comprehensive analysis with detailed mechanisms of action").
			Backstory(`You are a PhD-level pharmaceutical researcher with 20+ years experience in drug discovery and rare disease research. You excel at finding obscure research papers and preprints, understanding molecular mechanisms, connecting findings across multiple data sources, and identifying novel repurposing opportunities based on mechanism analysis. You ALWAYS dig deeper than surface-level information.`).
			Tool(tools.NewScholarTool(timeout)).
			Tool(tools.NewDrugBankTool(timeout)).
			Tool(tools.NewBioRxivTool(timeout)).
			Tool(tools.NewOrphanetTool(timeout)).
			Tool(tools.NewGARDTool(timeout)).
			Tool(tools.NewWebpageTool(timeout)).
			MaxIterations(mode.ScaleIterations(15))

	case PresetMarket:
		builder = agent.NewBuilder(PresetMarket).
			Role("Pharmaceutical Market Intelligence Director").
			Goal("Provide comprehensive competitive intelligence by analyzing company pipelines, market trends, and commercial opportunities").
			Backstory(`You are a former Big Pharma business development director with 15+ years in market analysis and competitive intelligence. You excel at analyzing competitor pipelines, assessing market size and growth potential, identifying underserved patient populations, and evaluating commercial viability. You provide REAL competitive intelligence, not generic market overviews.`).
			Tool(tools.NewWebSearchTool(timeout)).
			Tool(tools.NewCompanyPipelineTool(timeout)).
			Tool(tools.NewWebpageTool(timeout)).
			MaxIterations(mode.ScaleIterations(10))

	case PresetClinical:
		builder = agent.NewBuilder(PresetClinical).
			Role("Clinical Trials Research Specialist").
			Goal("Find and analyze registered clinical trials relevant to drug repurposing candidates, with attention to phases, status, and outcomes").
			Backstory(`You are a clinical research associate turned analyst who has monitored hundreds of trials. You know how to read trial registrations critically: enrollment numbers, endpoints, and status changes tell you more than titles do. You always cite NCT IDs.`).
			Tool(tools.NewClinicalTrialsTool(timeout)).
			Tool(tools.NewWebpageTool(timeout)).
			MaxIterations(mode.ScaleIterations(12))

	case PresetDrugInfo:
		builder = agent.NewBuilder(PresetDrugInfo).
			Role("Drug Information Expert").
			Goal("Provide accurate pharmacological profiles: mechanisms of action, indications, and pharmacodynamics for candidate drugs").
			Backstory(`You are a clinical pharmacist with deep knowledge of drug mechanisms. You verify every mechanism claim against authoritative sources and you distinguish established pharmacology from speculation.`).
			Tool(tools.NewDrugBankTool(timeout)).
			Tool(tools.NewPubMedTool(timeout)).
			MaxIterations(mode.ScaleIterations(10))

	case PresetLiterature:
		builder = agent.NewBuilder(PresetLiterature).
			Role("Senior Scientific Literature Analyst").
			Goal("Find and synthesize cutting-edge research from PubMed, Google Scholar, and bioRxiv preprints, identifying high-impact papers and mechanism-based repurposing opportunities").
			Backstory(`You are a medical librarian and research analyst with expertise in pharmaceutical sciences. You excel at finding the most relevant and highly-cited research, synthesizing findings from multiple papers, and spotting emerging trends before they become mainstream. You don't just list papers, you ANALYZE them and explain WHY they matter.`).
			Tool(tools.NewPubMedTool(timeout)).
			Tool(tools.NewScholarTool(timeout)).
			Tool(tools.NewBioRxivTool(timeout)).
			MaxIterations(mode.ScaleIterations(12))

	default:
		return nil, fmt.Errorf("unknown agent preset: %q", name)
	}

	return agent.New(builder.Build(), provider).WithToolConfig(toolConfig), nil
}

// CreatePipelineAgents builds the three agents the research pipeline needs.
func CreatePipelineAgents(provider llm.Provider, toolConfig tools.ToolConfig, mode config.Mode) ([]*agent.Agent, error) {
	names := []string{PresetDirector, PresetDeepResearch, PresetMarket}

	agents := make([]*agent.Agent, 0, len(names))
	for _, name := range names {
		a, err := CreateAgent(name, provider, toolConfig, mode)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

// ListPresets returns the available agent presets.
func ListPresets() []PresetInfo {
	return []PresetInfo{
		{Name: PresetDirector, Role: "Chief Research Officer", Description: "Runs discovery and final synthesis across trials, literature, and the web"},
		{Name: PresetDeepResearch, Role: "Deep Research Analyst", Description: "Mechanism analysis across Scholar, DrugBank, bioRxiv, Orphanet, and GARD"},
		{Name: PresetMarket, Role: "Market Intelligence Director", Description: "Competitive pipelines, market size, and commercial viability"},
		{Name: PresetClinical, Role: "Clinical Trials Specialist", Description: "Registered trial lookup and critical reading of registrations"},
		{Name: PresetDrugInfo, Role: "Drug Information Expert", Description: "Pharmacological profiles from DrugBank and PubMed"},
		{Name: PresetLiterature, Role: "Literature Analyst", Description: "Paper discovery and synthesis across PubMed, Scholar, and bioRxiv"},
	}
}
