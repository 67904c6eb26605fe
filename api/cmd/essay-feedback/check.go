package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"essay-feedback/api/internal/essay/types"
)

var (
	checkTextType string
	checkLLM      string
	checkPrompt   string
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Evaluate an essay file and print the feedback document as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		svc, closeFn, err := buildService(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		doc, err := svc.Evaluate(ctx, types.FeedbackRequest{
			Content:  string(content),
			TextType: checkTextType,
			Prompt:   checkPrompt,
			LLMName:  checkLLM,
		})
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", args[0], err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkTextType, "type", "narrative", "text type")
	checkCmd.Flags().StringVar(&checkLLM, "llm", "", "critique engine: gpt or gemini (default from config)")
	checkCmd.Flags().StringVar(&checkPrompt, "prompt", "", "task prompt given to the student")
}
