package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/manjuraavi/linkedin-career-coach/internal/session"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "career-coach"
)

type Config struct {
	Gemini  *GeminiConfig  `mapstructure:"gemini"`
	Scraper *ScraperConfig `mapstructure:"scraper"`
	Store   *StoreConfig   `mapstructure:"store"`
	Server  *ServerConfig  `mapstructure:"server"`
}

type GeminiConfig struct {
	APIKeyFile string        `mapstructure:"api-key-file"`
	Model      string        `mapstructure:"model"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type ScraperConfig struct {
	TokenFile    string        `mapstructure:"token-file"`
	ActorIDs     []string      `mapstructure:"actor-ids"`
	PollInterval time.Duration `mapstructure:"poll-interval"`
	RunTimeout   time.Duration `mapstructure:"run-timeout"`
}

type StoreConfig struct {
	// Backend selects the session store: "memory" (default) or "redis".
	Backend string               `mapstructure:"backend"`
	Redis   *session.RedisConfig `mapstructure:"redis"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-coach is an AI career assistant built around public LinkedIn profiles",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("scraper.token-file", "APIFY_TOKEN_FILE"); err != nil {
		log.Fatalf("binding APIFY_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-coach.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Secrets may come from a .env file during local development.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// We can't proceed if an explicitly given config file parsed with error.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// The default config file is optional; env variables can cover everything.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}
