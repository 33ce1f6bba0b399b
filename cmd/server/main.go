package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"contentdash/internal/config"
	"contentdash/internal/db"
	"contentdash/internal/email"
	"contentdash/internal/logging"
	"contentdash/internal/metrics"
	"contentdash/internal/server"
)

var version = "dev"

var (
	cfg      *config.Config
	seedFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "contentdash",
	Short:        "Content strategy dashboard",
	Long:         "contentdash serves the content strategy dashboard and its JSON API.",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		slog.SetDefault(logging.New(cfg.LogLevel, cfg.IsDev()))

		if cmd.Name() == "version" {
			return nil
		}
		return cfg.Validate()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "fixtures.yaml", "YAML file with users and strategies")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("contentdash", version)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users and strategies from a fixtures file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		fixtures, err := config.LoadFixtures(seedFile)
		if err != nil {
			return fmt.Errorf("loading fixtures: %w", err)
		}
		slog.Info("fixtures loaded", "file", seedFile,
			"users", len(fixtures.Users), "strategies", len(fixtures.Strategies), "topics", fixtures.TopicCount())

		database, err := db.Shared(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := database.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("creating indexes: %w", err)
		}

		result, err := database.Seed(ctx, fixtures.Users, fixtures.Strategies)
		if err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
		fmt.Printf("Seeded %d users, %d strategies, %d topics\n", result.Users, result.Strategies, result.Topics)
		return nil
	},
}

func serve(ctx context.Context) error {
	database, err := db.Shared(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	metrics.Init(database)

	notifier := email.NewNotifier(cfg, database)
	if !cfg.IsEmailEnabled() {
		slog.Info("email notifications disabled")
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(database, notifier)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("server exited")
	return nil
}
