package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"hellojoke/internal/config"
	"hellojoke/internal/greeting"
	"hellojoke/internal/http/server"
	"hellojoke/internal/infra/icanhaz"
	"hellojoke/internal/infra/logging"
	"hellojoke/internal/infra/ratelimit"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hellojoke",
		Short:        "Greets people with a dad joke",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	root.AddCommand(newServeCmd(), newGreetCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func newGreetCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "greet",
		Short: "Fetch one joke and print the greeting",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if name == "" {
				name = cfg.Greeting.DefaultName
			}
			joke, err := icanhaz.New(cfg.Joke).FetchJoke(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), greeting.Compose(name, joke))
			return err
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "who to greet (defaults to greeting.default_name)")
	return cmd
}

func runServe() error {
	cfg := config.Load()
	if err := ensureLogDir(cfg.Logger.File); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)

	store := ratelimit.NewStore(ratelimit.RedisConfig{
		Addr: cfg.Cache.RedisHost,
		DB:   cfg.Cache.RateLimitDB,
	})
	defer store.Close()

	app := server.New(server.Deps{
		Config:   cfg,
		Provider: logging.JokeProvider(icanhaz.New(cfg.Joke)),
		Store:    store,
	})

	idleConnsClosed := make(chan struct{})
	startServer(app, cfg, idleConnsClosed)
	<-idleConnsClosed
	return nil
}

// startServer starts the Fiber app and blocks until a shutdown signal is handled.
func startServer(app *fiber.App, cfg config.Config, idleConnsClosed chan struct{}) {
	go func() {
		logging.Info("Server listening", "addr", cfg.Server.Host+cfg.Server.Port)
		if err := app.Listen(cfg.Server.Host + cfg.Server.Port); err != nil {
			logging.Error("Server error", "error", err)
		}
	}()

	// Listen for OS termination signals
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigint)
	<-sigint

	logging.Warn("Shutdown signal received, closing server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	}

	close(idleConnsClosed)
	logging.Info("Server stopped cleanly")
}

// ensureLogDir creates the parent directory of a log file path.
func ensureLogDir(path string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
