package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/manjuraavi/linkedin-career-coach/internal/logger"
	"github.com/manjuraavi/linkedin-career-coach/internal/scraper"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var exitWords = []string{"exit", "quit", "bye"}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive coaching conversation for a LinkedIn profile",
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("profile-url", "u", "", "public LinkedIn profile URL (https://www.linkedin.com/in/...)")
	chatCmd.Flags().StringP("job", "t", "", "target job description for fit analysis")

	viper.BindPFlag("profile-url", chatCmd.Flags().Lookup("profile-url"))
	viper.BindPFlag("job", chatCmd.Flags().Lookup("job"))
}

func chat(cmd *cobra.Command) {
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

	profileURL := strings.TrimSpace(viper.GetString("profile-url"))
	if profileURL == "" {
		profileURL = promptForProfileURL(logger)
	}
	if !scraper.ValidateURL(profileURL) {
		logger.Fatal("invalid profile url",
			zap.String("profile_url", profileURL),
			zap.String("hint", "expected https://www.linkedin.com/in/<slug>"),
		)
	}

	service, closeStore, err := buildService(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the service", zap.Error(err))
	}
	defer closeStore()

	logger.Info("fetching profile, this may take a few minutes", zap.String("profile_url", profileURL))

	sess, err := service.StartSession(ctx, profileURL, viper.GetString("job"))
	if err != nil {
		logger.Fatal("starting the session", zap.Error(err))
	}

	fmt.Println()
	fmt.Println(sess.History[0].Content)
	fmt.Println()

	questionPrompt := promptui.Prompt{Label: "You"}

	for {
		question, err := questionPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, io.EOF) {
				logger.Info("exiting", zap.String("reason", "prompt closed"))
				return
			}
			logger.Fatal("reading the question", zap.Error(err))
		}

		question = strings.TrimSpace(question)
		if question == "" {
			continue
		}
		if isExitWord(question) {
			logger.Info("exiting", zap.String("reason", "got goodbye from prompt"))
			return
		}

		reply, err := service.Chat(ctx, sess.ID, question)
		if err != nil {
			logger.Fatal("running the turn", zap.Error(err))
		}

		fmt.Println()
		fmt.Println(reply)
		fmt.Println()
	}
}

func promptForProfileURL(logger *zap.Logger) string {
	urlPrompt := promptui.Prompt{
		Label: "LinkedIn profile URL",
		Validate: func(input string) error {
			if !scraper.ValidateURL(input) {
				return errors.New("expected https://www.linkedin.com/in/<slug>")
			}
			return nil
		},
	}

	profileURL, err := urlPrompt.Run()
	if err != nil {
		logger.Fatal("reading the profile url", zap.Error(err))
	}

	return strings.TrimSpace(profileURL)
}

func isExitWord(question string) bool {
	lowered := strings.ToLower(question)
	for _, word := range exitWords {
		if lowered == word {
			return true
		}
	}
	return false
}
