// Command execution for CLI commands.
//
// Information Hiding:
// - Provider construction hidden
// - Pipeline and storage wiring hidden
// - Output formatting hidden

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/rxscope/rxscope/agent"
	"github.com/rxscope/rxscope/config"
	"github.com/rxscope/rxscope/llm"
	"github.com/rxscope/rxscope/research"
	"github.com/rxscope/rxscope/storage"
	"github.com/rxscope/rxscope/tools"
)

// Options holds CLI execution options.
type Options struct {
	Provider    string
	Mode        string
	SkipDeep    bool
	Output       string
	DBPath       string
	ToolRetries  uint32
	HistoryLimit int
	Verbose      bool
}

// DefaultOptions returns default CLI options.
func DefaultOptions() Options {
	return Options{
		Mode:   "standard",
		DBPath: "rxscope.db",
	}
}

// RunResearch executes the full research pipeline for a query, prints the
// report, and saves it to disk and run history.
func RunResearch(ctx context.Context, query string, opts Options) error {
	if query == "" {
		return fmt.Errorf("research query cannot be empty")
	}

	providerName, provider, settings, err := createProvider(opts.Provider)
	if err != nil {
		return err
	}

	mode, err := resolveMode(opts)
	if err != nil {
		return err
	}

	toolConfig := toolConfigFrom(settings, opts)

	agents, err := CreatePipelineAgents(provider, toolConfig, mode)
	if err != nil {
		return err
	}

	store := openStore(opts.DBPath)
	if store != nil {
		defer store.Close()
	}

	sessionID := uuid.New().String()
	stageAgents := make([]research.StageAgent, 0, len(agents))
	for _, a := range agents {
		if opts.Verbose {
			a = a.Verbose(true)
		}
		if store != nil {
			a = a.WithMemory(store, sessionID)
		}
		stageAgents = append(stageAgents, a)
	}

	fmt.Printf("Researching: %s\n", query)
	fmt.Printf("Provider: %s (%s), mode: %s (est. %s)\n",
		providerName, settings.LLM.Model, mode.Name, mode.EstimatedTime)

	runner := research.NewRunner(stageAgents...)
	report, err := runner.Run(ctx, query, research.Options{
		SkipDeep: opts.SkipDeep || mode.SkipDeepAnalysis,
		Provider: providerName,
		Model:    settings.LLM.Model,
		Mode:     mode.Name,
		Observer: research.ConsoleObserver{},
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", report.Final)

	path := opts.Output
	if path == "" {
		path = report.DefaultFilename()
	}
	if err := report.Save(path); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	fmt.Printf("\nReport saved to %s\n", path)

	if store != nil {
		run := storage.NewRun(query, providerName, settings.LLM.Model, mode.Name, report.Render(), report.Duration)
		if err := store.SaveRun(ctx, run); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save run history: %v\n", err)
		}
	}

	return nil
}

// Ask executes a single task with one preset agent, outside the pipeline.
func Ask(ctx context.Context, presetName, task string, opts Options) error {
	providerName, provider, settings, err := createProvider(opts.Provider)
	if err != nil {
		return err
	}

	mode, err := resolveMode(opts)
	if err != nil {
		return err
	}

	a, err := CreateAgent(presetName, provider, toolConfigFrom(settings, opts), mode)
	if err != nil {
		return err
	}
	if opts.Verbose {
		a = a.Verbose(true)
	}

	fmt.Printf("Asking %s (%s)...\n\n", presetName, providerName)

	response := a.Execute(ctx, task)

	switch response.Type {
	case agent.ResponseSuccess:
		if opts.Verbose {
			printAgentSteps(response.Steps)
		}
		fmt.Printf("%s\n", response.Result)
		printTokenStats(response.Metadata)
		return nil
	case agent.ResponseFailure:
		if opts.Verbose {
			printAgentSteps(response.Steps)
		}
		fmt.Fprintf(os.Stderr, "Failed: %s\n", response.Error)
		fmt.Fprintf(os.Stderr, "Completed %d steps before failure\n", len(response.Steps))
		return fmt.Errorf("agent failed: %s", response.Error)
	case agent.ResponseTimeout:
		if opts.Verbose {
			printAgentSteps(response.Steps)
		}
		fmt.Printf("Iteration cap reached. Partial findings:\n%s\n", response.PartialResult)
		printTokenStats(response.Metadata)
		return nil
	default:
		return fmt.Errorf("unknown response type: %v", response.Type)
	}
}

// ShowHistory prints the most recent research runs.
func ShowHistory(ctx context.Context, opts Options) error {
	store := openStore(opts.DBPath)
	if store == nil {
		return fmt.Errorf("could not open run history at %s", opts.DBPath)
	}
	defer store.Close()

	limit := opts.HistoryLimit
	if limit <= 0 {
		limit = config.DefaultHistoryLimit
		if settings, err := config.New(defaultProviderName(opts.Provider)); err == nil {
			limit = settings.Research.HistoryLimit
		}
	}

	runs, err := store.RecentRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No research runs yet.")
		return nil
	}

	fmt.Printf("Last %d research runs:\n\n", len(runs))
	for _, run := range runs {
		created := time.Unix(run.CreatedAt, 0).Format("2006-01-02 15:04")
		duration := time.Duration(run.DurationMs) * time.Millisecond
		fmt.Printf("[%s] %s\n", created, run.Query)
		fmt.Printf("    %s (%s), %s mode, %s  id=%s\n",
			run.Provider, run.Model, run.Mode, duration.Round(time.Second), run.ID)
	}
	return nil
}

// ShowRun prints the stored report for a single run.
func ShowRun(ctx context.Context, id string, opts Options) error {
	store := openStore(opts.DBPath)
	if store == nil {
		return fmt.Errorf("could not open run history at %s", opts.DBPath)
	}
	defer store.Close()

	run, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with id %q", id)
	}

	fmt.Println(run.Report)
	return nil
}

// ListTools prints the available research tools.
func ListTools() error {
	registry, err := tools.WithResearchTools()
	if err != nil {
		return err
	}

	fmt.Println("Available research tools:")
	for _, meta := range registry.List() {
		fmt.Printf("  %-22s %s\n", meta.Name, meta.Description)
	}
	return nil
}

// ListAgents prints the available agent presets.
func ListAgents() {
	fmt.Println("Available agents:")
	for _, preset := range ListPresets() {
		fmt.Printf("  %-20s %s\n", preset.Name, preset.Role)
		fmt.Printf("  %-20s %s\n", "", preset.Description)
	}
}

// ListModes prints the available research modes.
func ListModes() {
	fmt.Println("Research modes:")
	for _, name := range config.ModeNames() {
		mode, _ := config.ModeFor(name)
		fmt.Printf("  %-10s %s (%s)\n", mode.Name, mode.Description, mode.EstimatedTime)
	}
}

// createProvider builds an LLM provider from settings. An empty provider
// name falls back to autodetection from the API keys in the environment.
func createProvider(providerName string) (string, llm.Provider, config.Settings, error) {
	if providerName == "" {
		detected, err := config.DetectProvider()
		if err != nil {
			return "", nil, config.Settings{}, err
		}
		providerName = detected
	}

	providerType, err := llm.ParseProviderType(providerName)
	if err != nil {
		return "", nil, config.Settings{}, err
	}

	settings, err := config.New(providerName)
	if err != nil {
		return "", nil, config.Settings{}, err
	}

	apiKey, err := config.APIKeyFor(providerName)
	if err != nil {
		return "", nil, config.Settings{}, err
	}

	provider, err := providerType.
		Model(settings.LLM.Model).
		MaxTokens(settings.LLM.MaxTokens).
		Temperature(float32(settings.LLM.Temperature)).
		APIKey(apiKey)
	if err != nil {
		return "", nil, config.Settings{}, err
	}

	return settings.LLM.Provider, provider, settings, nil
}

// resolveMode looks up the requested research mode, defaulting to standard.
func resolveMode(opts Options) (config.Mode, error) {
	if opts.Mode == "" {
		return config.DefaultMode(), nil
	}
	return config.ModeFor(opts.Mode)
}

// toolConfigFrom builds the tool config from settings with CLI overrides.
func toolConfigFrom(settings config.Settings, opts Options) tools.ToolConfig {
	cfg := tools.ToolConfig{
		TimeoutSecs: settings.Research.ToolTimeoutSecs,
		MaxRetries:  settings.Research.ToolRetries,
	}
	if opts.ToolRetries > 0 {
		cfg.MaxRetries = opts.ToolRetries
	}
	return cfg
}

// openStore opens the run history database. Returns nil when history is
// disabled or the database cannot be opened; research still works without it.
func openStore(path string) *storage.SqliteStore {
	if path == "" {
		return nil
	}
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run history unavailable: %v\n", err)
		return nil
	}
	return store
}

// defaultProviderName maps an empty provider flag to any supported provider,
// just to load provider-independent settings like the history limit.
func defaultProviderName(name string) string {
	if name != "" {
		return name
	}
	if detected, err := config.DetectProvider(); err == nil {
		return detected
	}
	return "gemini"
}

func printAgentSteps(steps []agent.Step) {
	fmt.Println("--- Steps ---")
	for _, step := range steps {
		fmt.Printf("[%d] %s\n", step.Iteration, step.Thought)
		if step.Action != nil {
			fmt.Printf("    Action: %s\n", *step.Action)
		}
		if step.Observation != nil {
			obs := *step.Observation
			if len(obs) > maxStepObservationLen {
				obs = obs[:maxStepObservationLen] + "..."
			}
			fmt.Printf("    Observation: %s\n", obs)
		}
	}
	fmt.Println("-------------")
}

const maxStepObservationLen = 400

func printTokenStats(meta agent.Metadata) {
	usage := meta.TokenUsage
	if usage == nil || usage.TotalTokens == 0 {
		return
	}
	fmt.Printf("\nToken Usage:\n")
	fmt.Printf("  LLM calls: %d\n", meta.LLMCalls)
	fmt.Printf("  Prompt tokens: %d\n", usage.PromptTokens)
	fmt.Printf("  Completion tokens: %d\n", usage.CompletionTokens)
	fmt.Printf("  Total tokens: %d\n", usage.TotalTokens)
	if len(meta.ToolCalls) > 0 {
		fmt.Printf("  Tool calls: %d\n", len(meta.ToolCalls))
	}
}
