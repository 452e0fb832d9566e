package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/unitsim/internal/buff"
	"github.com/udisondev/unitsim/internal/config"
	"github.com/udisondev/unitsim/internal/data"
	"github.com/udisondev/unitsim/internal/db"
	"github.com/udisondev/unitsim/internal/faction"
	"github.com/udisondev/unitsim/internal/model"
	"github.com/udisondev/unitsim/internal/world"
)

const (
	ConfigPath     = "config/unitsim.yaml"
	statusInterval = 10 * time.Second
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Config first: it decides the log level
	cfgPath := config.ResolvePath(ConfigPath)
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("unitsim starting", "config", cfgPath, "log_level", cfg.LogLevel)

	catalog, err := loadBuffCatalog(ctx, cfg)
	if err != nil {
		return fmt.Errorf("loading buff catalog: %w", err)
	}
	if err := buff.ValidateCatalog(catalog); err != nil {
		return fmt.Errorf("validating buff catalog: %w", err)
	}
	slog.Info("buff catalog ready", "buffs", catalog.Len(), "behaviors", buff.RegisteredClasses())

	prefabs, err := loadPrefabs(cfg)
	if err != nil {
		return fmt.Errorf("loading prefab catalog: %w", err)
	}

	relations := faction.NewRelationMatrix()
	relations.Setup()
	if err := cfg.ApplyRelations(relations); err != nil {
		return fmt.Errorf("applying faction relations: %w", err)
	}

	scenes, err := cfg.StaticScenes()
	if err != nil {
		return fmt.Errorf("building scenes: %w", err)
	}

	sim := world.NewSimulation(world.Deps{
		Relations: relations,
		Catalog:   catalog,
		Prefabs:   prefabs,
	})
	if cfg.InitialScene != "" {
		if err := sim.LoadScene(ctx, cfg.InitialScene, scenes); err != nil {
			return fmt.Errorf("loading initial scene: %w", err)
		}
	}

	runner := world.NewRunner(sim, cfg.TickInterval)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := runner.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation runner: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return reportStatus(gctx, runner, statusInterval)
	})

	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			slog.Info("shutting down", "signal", sig)
			return errShutdown
		case <-gctx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		return fmt.Errorf("simulation error: %w", err)
	}

	slog.Info("unitsim stopped")
	return nil
}

// errShutdown cancels the group on a termination signal.
var errShutdown = errors.New("shutdown requested")

// loadBuffCatalog picks the catalog source: database, YAML file or the
// built-in table, in that order of preference.
func loadBuffCatalog(ctx context.Context, cfg config.Simulation) (*data.BuffCatalog, error) {
	switch {
	case cfg.UseDatabase:
		return loadBuffCatalogFromDB(ctx, cfg.Database.DSN())
	case cfg.BuffCatalog != "":
		return data.LoadBuffCatalogFile(cfg.BuffCatalog)
	default:
		return data.DefaultBuffCatalog(), nil
	}
}

// loadBuffCatalogFromDB migrates the schema and reads buff_configs.
// An empty table is seeded with the built-in catalog.
func loadBuffCatalogFromDB(ctx context.Context, dsn string) (*data.BuffCatalog, error) {
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return nil, err
	}

	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer database.Close()
	slog.Info("database connected")

	repo := database.BuffConfigs()
	catalog, err := repo.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if catalog.Len() > 0 {
		return catalog, nil
	}

	builtin := data.DefaultBuffCatalog()
	if err := repo.Seed(ctx, builtin.Configs()); err != nil {
		return nil, fmt.Errorf("seeding buff configs: %w", err)
	}
	slog.Info("seeded empty buff_configs table", "buffs", builtin.Len())
	return builtin, nil
}

func loadPrefabs(cfg config.Simulation) (*data.TemplateLibrary, error) {
	if cfg.PrefabCatalog == "" {
		return data.DefaultTemplateLibrary(), nil
	}
	return data.LoadTemplateLibraryFile(cfg.PrefabCatalog)
}

// reportStatus periodically logs faction populations through the runner.
func reportStatus(ctx context.Context, runner *world.Runner, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			counts, err := world.Query(ctx, runner, factionCounts)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, world.ErrRunnerStopped) {
					return nil
				}
				return fmt.Errorf("status query: %w", err)
			}
			slog.Info("simulation status", "factions", counts)
		}
	}
}

func factionCounts(s *world.Simulation) map[string]int {
	counts := make(map[string]int)
	for _, f := range model.AllFactions() {
		if n := s.GetFactionUnitCount(f); n > 0 {
			counts[f.String()] = n
		}
	}
	counts["sim_ms"] = int(s.Now().Milliseconds())
	return counts
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
