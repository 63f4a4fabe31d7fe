package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fasttextd/internal/config"
	"fasttextd/internal/httpapi"
	"fasttextd/internal/manager"
	"fasttextd/internal/registry"
)

const shutdownTimeout = 10 * time.Second

type serveFlags struct {
	configPath string
	cfg        config.Config
	preload    string
	cors       string
}

func newServeCmd() *cobra.Command { return newServeCmdWith(&serveFlags{}) }

func newServeCmdWith(f *serveFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", os.Getenv("FASTTEXTD_CONFIG"), "Config file (.yaml, .json or .toml)")
	fl.StringVar(&f.cfg.Addr, "addr", envOr("FASTTEXTD_ADDR", config.DefaultAddr), "HTTP listen address, e.g. :8080")
	fl.StringVar(&f.cfg.ModelsDir, "models-dir", config.DefaultModelsDir, "Directory to scan for *.bin model files")
	fl.StringVar(&f.cfg.DefaultModel, "default-model", "", "Default model id when a request omits model")
	fl.StringVar(&f.preload, "preload", "", "Comma separated model ids to load at startup")
	fl.IntVar(&f.cfg.BudgetMB, "budget-mb", 0, "Memory budget in MB for all loaded models (0=unlimited)")
	fl.IntVar(&f.cfg.MarginMB, "margin-mb", 0, "Reserved memory margin in MB")
	fl.IntVar(&f.cfg.MaxQueueDepth, "max-queue-depth", config.DefaultMaxQueueDepth, "Queued reads per model before 429")
	fl.IntVar(&f.cfg.MaxInflight, "max-inflight", config.DefaultMaxInflight, "Concurrent reads per model")
	fl.IntVar(&f.cfg.MaxWaitMS, "max-wait-ms", config.DefaultMaxWaitMS, "Longest wait for a read slot")
	fl.IntVar(&f.cfg.RequestTimeoutMS, "request-timeout-ms", 0, "Per-request deadline for read endpoints (0=none)")
	fl.StringVar(&f.cfg.Normalize, "normalize", "", "Normalize request text: nfc or nfkc")
	fl.StringVar(&f.cfg.LogLevel, "log-level", config.DefaultLogLevel, "Log level: debug|info|warn|error")
	fl.StringVar(&f.cfg.LogFormat, "log-format", config.DefaultLogFormat, "Log format: console|json")
	fl.StringVar(&f.cors, "cors-origins", "", "Comma separated allowed CORS origins (enables CORS)")
	return cmd
}

// resolve loads the config file, if any, and overlays explicitly set flags.
func (f *serveFlags) resolve(fl *pflag.FlagSet) (config.Config, error) {
	cfg := f.cfg
	if f.configPath != "" {
		fileCfg, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = overlay(fileCfg, f.cfg, fl)
	}
	if fl.Changed("preload") {
		cfg.Preload = splitCSV(f.preload)
	}
	if fl.Changed("cors-origins") {
		cfg.CORS.Enabled = true
		cfg.CORS.Origins = splitCSV(f.cors)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// overlay copies flag values that were set on the command line over base.
func overlay(base, flags config.Config, fl *pflag.FlagSet) config.Config {
	set := func(name string, apply func()) {
		if fl.Changed(name) {
			apply()
		}
	}
	set("addr", func() { base.Addr = flags.Addr })
	set("models-dir", func() { base.ModelsDir = flags.ModelsDir })
	set("default-model", func() { base.DefaultModel = flags.DefaultModel })
	set("budget-mb", func() { base.BudgetMB = flags.BudgetMB })
	set("margin-mb", func() { base.MarginMB = flags.MarginMB })
	set("max-queue-depth", func() { base.MaxQueueDepth = flags.MaxQueueDepth })
	set("max-inflight", func() { base.MaxInflight = flags.MaxInflight })
	set("max-wait-ms", func() { base.MaxWaitMS = flags.MaxWaitMS })
	set("request-timeout-ms", func() { base.RequestTimeoutMS = flags.RequestTimeoutMS })
	set("normalize", func() { base.Normalize = flags.Normalize })
	set("log-level", func() { base.LogLevel = flags.LogLevel })
	set("log-format", func() { base.LogFormat = flags.LogFormat })
	return base
}

// buildManager scans the models directory and wires the manager. A build
// without the native engine still serves discovery and status endpoints.
func buildManager(cfg config.Config, log zerolog.Logger) (*manager.Manager, error) {
	reg, err := registry.LoadDir(cfg.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}
	mcfg := manager.ManagerConfig{
		Registry:      reg,
		BudgetMB:      cfg.BudgetMB,
		MarginMB:      cfg.MarginMB,
		DefaultModel:  cfg.DefaultModel,
		MaxQueueDepth: cfg.MaxQueueDepth,
		MaxInflight:   cfg.MaxInflight,
		MaxWait:       cfg.MaxWait(),
		DrainTimeout:  cfg.DrainTimeout(),
		MaxK:          cfg.MaxK,
		MaxBatch:      cfg.MaxBatch,
		Normalize:     cfg.Normalize,
		Publisher:     manager.NewZerologPublisher(log),
		Logger:        &log,
	}
	if eng, err := newEngine(); err != nil {
		log.Warn().Err(err).Msg("native engine unavailable; model reads will return 503")
	} else {
		mcfg.Engine = eng
	}
	mgr := manager.NewWithConfig(mcfg)

	report := mgr.SanityCheck()
	ev := log.Info()
	if report.Error != "" {
		ev = log.Warn().Str("problem", report.Error)
	}
	ev.Int("models", report.Models).
		Bool("engine", report.EngineAvailable).
		Bool("default_found", report.DefaultFound).
		Strs("missing_files", report.MissingFiles).
		Strs("without_vectors", report.WithoutVectors).
		Msg("sanity check")
	return mgr, nil
}

func serve(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	mgr, err := buildManager(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			log.Error().Err(err).Msg("manager close")
		}
	}()

	preload := cfg.Preload
	if cfg.DefaultModel != "" {
		preload = append([]string{cfg.DefaultModel}, preload...)
	}
	if len(preload) > 0 && mgr.SanityCheck().EngineAvailable {
		op := mgr.Preload(preload)
		log.Info().Str("op_id", op).Strs("models", preload).Msg("preload started")
	}

	httpapi.SetLogger(log)
	httpapi.SetBaseContext(ctx)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetRequestTimeout(cfg.RequestTimeout())
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Msg("fasttextd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	return nil
}
