package cli

import (
	"context"
	"fmt"

	"atscore/internal/common"
	"atscore/internal/ingest"
	"atscore/internal/scoring"
	"atscore/internal/suggest"
	"atscore/internal/types"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file] [job-description-file]",
	Short: "Score a resume, optionally against a job description",
	Long: `Score a resume across five dimensions and produce an overall score,
a letter grade, and improvement suggestions. The first argument is the
path to the resume file. The optional second argument is a job
description file: when given, keyword and skills matching score against
its requirements instead of generic keyword density.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var scoreConfig common.CommandConfig

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	matcher, err := cfg.BuildMatcher()
	if err != nil {
		return fmt.Errorf("failed to build skill matcher: %w", err)
	}

	suggester, err := suggest.NewProviderFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create suggestion provider: %w", err)
	}

	engine := scoring.NewEngine(matcher, suggester, logger)
	parser := ingest.NewParser(matcher)

	createInput := func(contents []string) (types.ScoreResumeInput, error) {
		input := types.ScoreResumeInput{ResumeText: contents[0]}
		if len(contents) > 1 {
			input.JobDescription = contents[1]
		}
		return input, nil
	}

	logDetails := func(input types.ScoreResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume scoring",
			"resume_chars", len(input.ResumeText),
			"job_description_chars", len(input.JobDescription),
			"remote_suggestions", suggester.RemoteEnabled(),
			"output_format", cfg.OutputFormat)
	}

	scoreOperation := func(ctx context.Context, input types.ScoreResumeInput) (types.ScoreBreakdown, error) {
		resume, err := parser.Parse(input.ResumeText)
		if err != nil {
			return types.ScoreBreakdown{}, err
		}
		return engine.Analyze(ctx, resume, input.JobDescription), nil
	}

	err = common.RunFileCommand(
		cmd.Context(),
		logger,
		scoreConfig,
		args,
		createInput,
		scoreOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}
	logger.Info("Resume scoring completed successfully")
	return nil
}
