package main

import (
	"context"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/suPer8Hu/study-assistant/internal/nlp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>",
	Short: "Print the analysis of a message as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, err := nlp.NewAnalyzerFromTables(nlp.DefaultTables(), nil)
		if err != nil {
			return err
		}
		return runAnalyze(cmd.Context(), analyzer, strings.Join(args, " "), cmd.OutOrStdout())
	},
}

type analysisOutput struct {
	nlp.AnalysisResult
	IsQuestion   bool         `json:"is_question"`
	DateTime     nlp.DateTime `json:"datetime"`
	StudyMinutes int          `json:"study_minutes"`
}

func runAnalyze(ctx context.Context, analyzer *nlp.Analyzer, text string, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(analysisOutput{
		AnalysisResult: analyzer.Analyze(ctx, text),
		IsQuestion:     nlp.IsQuestion(text),
		DateTime:       nlp.ExtractDateTime(text),
		StudyMinutes:   nlp.ExtractStudyDuration(text),
	})
}
