package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/moneta-finance/moneta/internal/api"
	"github.com/moneta-finance/moneta/internal/assets"
	"github.com/moneta-finance/moneta/internal/assistant"
	"github.com/moneta-finance/moneta/internal/cache"
	"github.com/moneta-finance/moneta/internal/config"
	"github.com/moneta-finance/moneta/internal/database"
	"github.com/moneta-finance/moneta/internal/scheduler"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Moneta server",
	Long:  `Start the Moneta web server and the background maintenance jobs.`,
	Example: `moneta serve --config config.yml
moneta serve -c /path/to/config.yml --log-level debug
`,
	RunE: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bridge := assistant.New(cfg.Assistant, newCompleter(ctx, cfg))
	manager := assets.NewManager(db, cache.NewAssetCache(cfg.Cache))

	server, err := api.New(cfg, db, manager, bridge, log.GetLevel() == log.DebugLevel)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	sched, err := scheduler.New()
	if err != nil {
		return err
	}
	if err := sched.AddMaintenanceJob(cfg.MaintenanceSchedule, db); err != nil {
		return fmt.Errorf("failed to schedule maintenance: %w", err)
	}
	sched.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		return sched.Stop()
	})

	log.Info("moneta started successfully")
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("moneta stopped")
	return nil
}

// newCompleter returns the Gemini client, or nil if the assistant can't be used.
func newCompleter(ctx context.Context, cfg *config.Config) assistant.Completer {
	if !cfg.HasAssistant() {
		log.Warn("no assistant API key configured, the finance assistant is disabled")
		return nil
	}

	completer, err := assistant.NewGeminiCompleter(ctx, cfg.Assistant)
	if err != nil {
		log.Error("failed to create assistant client, the finance assistant is disabled", "error", err)
		return nil
	}
	log.Info("finance assistant enabled", "model", cfg.Assistant.Model)
	return completer
}
