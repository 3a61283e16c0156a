package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/manjuraavi/linkedin-career-coach/internal/api"
	"github.com/manjuraavi/linkedin-career-coach/internal/coach"
	"github.com/manjuraavi/linkedin-career-coach/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	defaultListen   = ":8080"
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the coaching API over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address (default \":8080\")")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	completer, err := newCompleter(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the completer", zap.Error(err))
	}

	fetcher, err := newScraper(config, logger)
	if err != nil {
		logger.Fatal("building the scraper", zap.Error(err))
	}

	store, closeStore, err := newStore(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the session store", zap.Error(err))
	}
	defer closeStore()

	engine := coach.NewEngine(completer, logger)
	service := coach.NewService(engine, store, fetcher, logger)
	handler := api.NewHandler(service, store, logger)

	listen := defaultListen
	if config != nil && config.Server != nil && config.Server.Listen != "" {
		listen = config.Server.Listen
	}

	server := &http.Server{
		Addr:              listen,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving the coaching API", zap.String("listen", listen), zap.String("version", version))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down", zap.String("reason", "signal received"))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
