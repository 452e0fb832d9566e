package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config path passed on the command line.
const EnvPath = "UNITSIM_CONFIG"

// Simulation holds all configuration of the unit simulation daemon.
type Simulation struct {
	LogLevel string `yaml:"log_level"`

	// Wall-clock cadence of the runner (default: 100ms)
	TickInterval time.Duration `yaml:"tick_interval"`

	// Static data sources. Empty paths select the built-in tables.
	BuffCatalog   string `yaml:"buff_catalog"`
	PrefabCatalog string `yaml:"prefab_catalog"`

	// Database (buff catalog source when UseDatabase is set)
	UseDatabase bool           `yaml:"use_database"`
	Database    DatabaseConfig `yaml:"database"`

	// Relation overrides applied after the default table
	Relations []RelationEntry `yaml:"relations"`

	Scenes       map[string][]SpawnEntry `yaml:"scenes"`
	InitialScene string                  `yaml:"initial_scene"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// RelationEntry is a directional relation override, e.g. FRIEND → HOSTILE = ENEMY.
type RelationEntry struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Relation string `yaml:"relation"`
}

// SpawnEntry is one unit placement of a configured scene.
type SpawnEntry struct {
	Prefab     string `yaml:"prefab"`
	Faction    string `yaml:"faction"`
	X          int32  `yaml:"x"`
	Y          int32  `yaml:"y"`
	Z          int32  `yaml:"z"`
	Heading    uint16 `yaml:"heading"`
	Persistent bool   `yaml:"persistent"`
	Active     *bool  `yaml:"active"` // nil = true
}

// IsActive reports whether the unit spawns enabled.
func (e SpawnEntry) IsActive() bool {
	return e.Active == nil || *e.Active
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:     "info",
		TickInterval: 100 * time.Millisecond,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "unitsim",
			Password: "unitsim",
			DBName:   "unitsim",
			SSLMode:  "disable",
		},
		Relations: []RelationEntry{
			{From: "FRIEND", To: "FRIEND", Relation: "ALLY"},
			{From: "HOSTILE", To: "HOSTILE", Relation: "ALLY"},
			{From: "FRIEND", To: "HOSTILE", Relation: "ENEMY"},
			{From: "HOSTILE", To: "FRIEND", Relation: "ENEMY"},
		},
		Scenes: map[string][]SpawnEntry{
			"SampleScene": {
				{Prefab: "SamplePrefab", Faction: "FRIEND", Persistent: true},
				{Prefab: "Soldier", Faction: "HOSTILE", X: 500},
				{Prefab: "Soldier", Faction: "HOSTILE", X: 520, Y: 40},
				{Prefab: "Crate", Faction: "OBJECT", X: 250, Y: -80},
			},
		},
		InitialScene: "SampleScene",
	}
}

// LoadSimulation loads simulation config from a YAML file, then applies
// UNITSIM_* environment overrides.
// If the file doesn't exist, returns defaults (with overrides).
// Scenes from the file are merged with the default ones; a list such as
// relations replaces the default list.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env overrides: %w", err)
	}
	return cfg, nil
}

// envOverrides is the scalar part of Simulation settable from the
// environment. Unset variables keep the loaded values.
type envOverrides struct {
	LogLevel      string        `env:"LOG_LEVEL"`
	TickInterval  time.Duration `env:"TICK_INTERVAL"`
	BuffCatalog   string        `env:"BUFF_CATALOG"`
	PrefabCatalog string        `env:"PREFAB_CATALOG"`
	UseDatabase   bool          `env:"USE_DATABASE"`
	InitialScene  string        `env:"INITIAL_SCENE"`
}

func applyEnv(cfg *Simulation) error {
	o := envOverrides{
		LogLevel:      cfg.LogLevel,
		TickInterval:  cfg.TickInterval,
		BuffCatalog:   cfg.BuffCatalog,
		PrefabCatalog: cfg.PrefabCatalog,
		UseDatabase:   cfg.UseDatabase,
		InitialScene:  cfg.InitialScene,
	}
	if err := env.ParseWithOptions(&o, env.Options{Prefix: "UNITSIM_"}); err != nil {
		return err
	}
	if err := env.ParseWithOptions(&cfg.Database, env.Options{Prefix: "UNITSIM_DB_"}); err != nil {
		return err
	}

	cfg.LogLevel = o.LogLevel
	cfg.TickInterval = o.TickInterval
	cfg.BuffCatalog = o.BuffCatalog
	cfg.PrefabCatalog = o.PrefabCatalog
	cfg.UseDatabase = o.UseDatabase
	cfg.InitialScene = o.InitialScene
	return nil
}

// ResolvePath returns the config path from the environment, or fallback.
func ResolvePath(fallback string) string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return fallback
}
