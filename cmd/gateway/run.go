package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"voidxp/gateway/pkg/auth"
	"voidxp/gateway/pkg/cli"
	"voidxp/gateway/pkg/config"
	"voidxp/gateway/pkg/files"
	"voidxp/gateway/pkg/limits/guest"
	"voidxp/gateway/pkg/maintenance"
	"voidxp/gateway/pkg/routing"
	"voidxp/gateway/pkg/search"
	"voidxp/gateway/pkg/server"
	"voidxp/gateway/pkg/store"
	"voidxp/gateway/pkg/telemetry/logging"
	"voidxp/gateway/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the gateway server",
	Long: `Start the gateway server with the specified configuration.

The server authenticates callers, resolves provider routes, enforces
guest quotas, and serves the analytics and metrics endpoints.

Examples:
  # Start with default config
  gateway run

  # Start with custom config
  gateway run --config /etc/voidxp/config.yaml

  # Override listen address
  gateway run --listen 0.0.0.0:8080

  # Validate config without starting server
  gateway run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("", err.Error())
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	// Cancelled on SIGINT/SIGTERM so the watcher and scheduler stop
	// alongside the server.
	ctx, cancel := context.WithCancel(cli.SetupSignalHandler())
	defer cancel()

	// Core services.
	routes := routing.NewLive(cfg.Routes)
	limiter := guest.NewLimiter(cfg.Auth.GuestMaxPerDay)
	collector := metrics.NewCollector(cfg.Telemetry.Metrics)

	var eventStore *store.Store
	if cfg.Store.Enabled {
		eventStore, err = store.Open(store.Config{Path: cfg.Store.Path})
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer eventStore.Close()
		fmt.Println("✓ Event store initialized")
	}

	var userStore auth.UserStore
	if eventStore != nil {
		userStore = eventStore
	}
	authService := auth.NewService(cfg.Auth, userStore, nil)

	var searchService *search.Service
	if cfg.Search.Enabled {
		searchService = search.NewService(cfg.Search, collector, nil)
		fmt.Println("✓ Search enrichment enabled")
	}

	// Background maintenance.
	jobs := []maintenance.Job{
		{
			Name:     "guest-sweep",
			Schedule: cfg.Maintenance.GuestSweepSchedule,
			Run: func() int {
				evicted := limiter.Sweep(cfg.Maintenance.GuestSweepGrace)
				collector.SetGuestTrackedKeys(limiter.Size())
				return evicted
			},
		},
	}
	if searchService != nil {
		jobs = append(jobs, maintenance.Job{
			Name:     "search-cache-cleanup",
			Schedule: cfg.Maintenance.SearchCacheSchedule,
			Run:      searchService.CleanupCache,
		})
	}
	scheduler := maintenance.NewScheduler(jobs)
	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start maintenance scheduler: %w", err)
	}

	// Reload the routing table when the config file changes.
	if cfg.Maintenance.WatchConfig {
		go func() {
			err := routes.Watch(ctx, cfgFile, func() (string, error) {
				fresh, err := config.LoadConfigWithEnvOverrides(cfgFile)
				if err != nil {
					return "", err
				}
				return fresh.Routes, nil
			})
			if err != nil && ctx.Err() == nil {
				slog.Error("config watcher stopped", "error", err)
			}
		}()
	}

	srv := server.NewServer(cfg, server.Services{
		Routes:  routes,
		Guests:  limiter,
		Auth:    authService,
		Search:  searchService,
		Files:   files.NewProcessor(nil),
		Store:   eventStore,
		Metrics: collector,
	})

	fmt.Printf("✓ Routing table loaded (%d routes)\n", routes.Load().Len())
	fmt.Printf("✓ Guest quota: %d requests per day\n", limiter.Max())
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}
