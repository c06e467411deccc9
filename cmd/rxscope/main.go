// Package main provides the rxscope CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rxscope/rxscope/cli"
)

var (
	// Global flags
	provider    string
	dbPath      string
	toolRetries uint32
	verbose     bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "rxscope",
		Short: "AI-driven drug repurposing research",
		Long: `A CLI for pharmaceutical drug repurposing research driven by LLM agents.

A staged pipeline of research agents works a query end to end:
- Discovery: clinical trials and literature scan for repurposing candidates
- Deep mechanism: molecular targets, pathways, and preclinical evidence
- Market intelligence: competing pipelines and commercial viability
- Synthesis: a final report with ranked opportunities

Agents research with live sources: ClinicalTrials.gov, PubMed, Google
Scholar, bioRxiv, DrugBank, Orphanet, and GARD.`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "LLM provider (openai, anthropic, deepseek, gemini); autodetected from API keys when empty")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "rxscope.db", "Database path for run history and agent memory (empty to disable)")
	rootCmd.PersistentFlags().Uint32Var(&toolRetries, "tool-retries", 0, "Maximum retries for research tools (0 = use TOOL_RETRIES or default)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show agent reasoning as it streams")

	// Add commands
	rootCmd.AddCommand(researchCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(toolsCmd())
	rootCmd.AddCommand(agentsCmd())
	rootCmd.AddCommand(modesCmd())
	rootCmd.AddCommand(examplesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func globalOptions() cli.Options {
	opts := cli.DefaultOptions()
	opts.Provider = provider
	opts.DBPath = dbPath
	opts.ToolRetries = toolRetries
	opts.Verbose = verbose
	return opts
}

func researchCmd() *cobra.Command {
	var mode string
	var fast bool
	var output string

	cmd := &cobra.Command{
		Use:   "research [query]",
		Short: "Run the full repurposing research pipeline for a query",
		Long: `Run the staged research pipeline for a drug repurposing query.

The pipeline runs discovery, deep mechanism analysis, market intelligence,
and synthesis in order, each stage building on earlier findings. The final
report is printed and saved to a timestamped file.

Modes control depth: quick skips the deep mechanism stage and trims
iteration caps, deep extends them. --fast skips the mechanism stage in any
mode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := globalOptions()
			opts.Mode = mode
			opts.SkipDeep = fast
			opts.Output = output
			return cli.RunResearch(context.Background(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "standard", "Research depth: quick, standard, or deep")
	cmd.Flags().BoolVar(&fast, "fast", false, "Skip the deep mechanism stage")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Report file path (default: pharma_research_<timestamp>.txt)")

	return cmd
}

func askCmd() *cobra.Command {
	var agentName string
	var mode string

	cmd := &cobra.Command{
		Use:   "ask [task]",
		Short: "Run a single task with one research agent",
		Long: `Run a one-off task with a single agent preset instead of the full
pipeline. Useful for targeted questions, e.g.:

  rxscope ask --agent clinical_trials "Find active trials of rapamycin for LAM"
  rxscope ask --agent drug_info "Summarize the mechanism of action of metformin"

Run 'rxscope agents' to list the presets.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := globalOptions()
			opts.Mode = mode
			return cli.Ask(context.Background(), agentName, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&agentName, "agent", "a", cli.PresetDirector, "Agent preset to use")
	cmd.Flags().StringVarP(&mode, "mode", "m", "standard", "Research depth: quick, standard, or deep")

	return cmd
}

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent research runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := globalOptions()
			opts.HistoryLimit = limit
			return cli.ShowHistory(context.Background(), opts)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "How many runs to show (0 = use HISTORY_LIMIT or default)")

	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Print the stored report for a past run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ShowRun(context.Background(), args[0], globalOptions())
		},
	}
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List available research tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ListTools()
		},
	}
}

func agentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List available agent presets",
		Run: func(cmd *cobra.Command, args []string) {
			cli.ListAgents()
		},
	}
}

func modesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List research depth modes",
		Run: func(cmd *cobra.Command, args []string) {
			cli.ListModes()
		},
	}
}

func examplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show example research queries",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Example queries:")
			fmt.Println(`  rxscope research "Find respiratory drugs with potential for lymphangioleiomyomatosis (LAM)"`)
			fmt.Println(`  rxscope research "Analyze anti-inflammatory drugs for idiopathic pulmonary fibrosis"`)
			fmt.Println(`  rxscope research "Identify COPD drugs that could treat alpha-1 antitrypsin deficiency"`)
			fmt.Println(`  rxscope research "Search for asthma medications with potential for primary ciliary dyskinesia"`)
		},
	}
}
