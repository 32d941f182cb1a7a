package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rchopra/chief/internal/config"
	"github.com/rchopra/chief/internal/debug"
	"github.com/rchopra/chief/internal/notion"
	"github.com/rchopra/chief/internal/strategic"
	"github.com/rchopra/chief/internal/types"
)

var (
	jsonOutput  bool
	verboseFlag bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "chief",
	Short: "Chief-of-staff workflow: tasks, projects, and meeting follow-through",
	Long: `chief keeps a task and project store honest.

It captures and classifies incoming text, turns meeting action items into
tasks, scores project health, enforces priority-tier limits, and rolls the
week up for an executive update.

Configuration lives in ~/.chief/config.yaml with CHIEF_* env overrides.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug.SetVerbose(verboseFlag)
		var err error
		cfg, err = config.Load()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newStore builds the record-store client. Commands that touch the store
// call this lazily so classify/lno keep working with no token configured.
func newStore() (notion.Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("no token configured (set CHIEF_TOKEN or token in ~/.chief/config.yaml)")
	}
	return notion.NewHTTPClient(cfg.BaseURL, cfg.Token), nil
}

// loadStrategicContext parses the strategic priorities document if one is
// configured. A missing path is not an error; strategic features degrade
// to the "other" bucket.
func loadStrategicContext() (*strategic.Context, error) {
	if cfg.ContextPath == "" {
		return strategic.ParseContext(""), nil
	}
	raw, err := os.ReadFile(cfg.ContextPath)
	if err != nil {
		return nil, fmt.Errorf("read strategic context: %w", err)
	}
	return strategic.ParseContext(string(raw)), nil
}

// fetchTasks pulls tasks from the store, optionally filtered.
func fetchTasks(cmd *cobra.Command, store notion.Client, filter *notion.Filter, sorts []notion.Sort) ([]types.Task, error) {
	pages, err := store.QueryAll(cmd.Context(), cfg.TasksDataSource, filter, sorts)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	tasks := make([]types.Task, 0, len(pages))
	for _, p := range pages {
		tasks = append(tasks, notion.ExtractTask(p))
	}
	return tasks, nil
}

// fetchActiveProjects pulls the P1/P2/P3 project portfolio.
func fetchActiveProjects(cmd *cobra.Command, store notion.Client) ([]types.Project, error) {
	projects, err := fetchAllProjects(cmd, store)
	if err != nil {
		return nil, err
	}
	active := projects[:0]
	for _, p := range projects {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active, nil
}

func fetchAllProjects(cmd *cobra.Command, store notion.Client) ([]types.Project, error) {
	pages, err := store.QueryAll(cmd.Context(), cfg.ProjectsDataSource, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	projects := make([]types.Project, 0, len(pages))
	for _, p := range pages {
		projects = append(projects, notion.ExtractProject(p))
	}
	return projects, nil
}

// tasksByProject groups a task snapshot by project relation. Tasks with
// several projects count toward each.
func tasksByProject(tasks []types.Task) map[string][]types.Task {
	grouped := make(map[string][]types.Task)
	for _, t := range tasks {
		for _, id := range t.ProjectIDs {
			grouped[id] = append(grouped[id], t)
		}
	}
	return grouped
}

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func today() time.Time {
	return types.DateOf(time.Now())
}
