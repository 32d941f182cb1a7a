package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rchopra/chief/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Classify captured text as task, resource, or insight",
	Long: `Classify a piece of captured text and extract its metadata.

The classification is signal-based: action verbs and deadline language mark
tasks, links and reading language mark resources, observation language marks
insights. Metadata extraction finds due dates, known project and people
mentions, and URLs.

Examples:
  chief classify "Send the board deck to Sarah by Friday"
  chief classify "https://example.com/article - great read on onboarding"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		result := classify.Classify(text)
		meta := classify.ExtractMetadata(text, time.Now())

		if jsonOutput {
			return outputJSON(struct {
				classify.Result
				Metadata classify.Metadata `json:"metadata"`
			}{result, meta})
		}

		fmt.Printf("%s (confidence %.2f)\n", result.Classification, result.Confidence)
		if meta.DueDate != nil {
			fmt.Printf("  Due:      %s\n", meta.DueDate.Format("2006-01-02"))
		}
		if len(meta.ProjectMentions) > 0 {
			fmt.Printf("  Projects: %s\n", strings.Join(meta.ProjectMentions, ", "))
		}
		if len(meta.PeopleMentions) > 0 {
			fmt.Printf("  People:   %s\n", strings.Join(meta.PeopleMentions, ", "))
		}
		for _, u := range meta.URLs {
			fmt.Printf("  URL:      %s\n", u)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
