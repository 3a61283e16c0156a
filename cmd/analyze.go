package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/manjuraavi/linkedin-career-coach/internal/coach"
	"github.com/manjuraavi/linkedin-career-coach/internal/logger"
	"github.com/manjuraavi/linkedin-career-coach/internal/scraper"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot structured analysis of a LinkedIn profile",
	Long: `Run a one-shot structured analysis of a LinkedIn profile and print the
result as JSON. Modes:

  profile   strengths, weaknesses and suggestions
  job-fit   match score against the target job (requires --job)
  content   enhanced about section and headline
  coaching  career guidance, growth areas and learning resources`,
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("profile-url", "u", "", "public LinkedIn profile URL (https://www.linkedin.com/in/...)")
	analyzeCmd.Flags().StringP("job", "t", "", "target job description")
	analyzeCmd.Flags().StringP("mode", "m", "profile", "analysis mode: profile, job-fit, content or coaching")
}

func analyze(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	profileURL := strings.TrimSpace(cmd.Flag("profile-url").Value.String())
	if !scraper.ValidateURL(profileURL) {
		logger.Fatal("invalid profile url",
			zap.String("profile_url", profileURL),
			zap.String("hint", "expected https://www.linkedin.com/in/<slug>"),
		)
	}

	mode := strings.ToLower(strings.TrimSpace(cmd.Flag("mode").Value.String()))
	job := strings.TrimSpace(cmd.Flag("job").Value.String())
	if (mode == "job-fit" || mode == "coaching") && job == "" {
		logger.Fatal("a target job is required", zap.String("mode", mode), zap.String("hint", "pass --job"))
	}

	completer, err := newCompleter(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the completer", zap.Error(err))
	}

	fetcher, err := newScraper(config, logger)
	if err != nil {
		logger.Fatal("building the scraper", zap.Error(err))
	}

	logger.Info("fetching profile, this may take a few minutes", zap.String("profile_url", profileURL))

	record, err := fetcher.FetchProfile(ctx, profileURL)
	if err != nil {
		logger.Fatal("fetching the profile", zap.Error(err))
	}

	var result any
	switch mode {
	case "profile":
		result, err = coach.NewProfileAnalyzer(completer, logger).Analyze(ctx, record)
	case "job-fit":
		result, err = coach.NewJobFitAgent(completer, logger).Evaluate(ctx, record, job)
	case "content":
		result, err = coach.NewContentEnhancer(completer, logger).Enhance(ctx, record)
	case "coaching":
		result, err = coach.NewCareerCoach(completer, logger).Plan(ctx, record, job)
	default:
		logger.Fatal("unknown analysis mode", zap.String("mode", mode))
	}
	if err != nil {
		logger.Fatal("running the analysis", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("encoding the result", zap.Error(err))
	}

	fmt.Println(string(pretty))
}
