package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// FileEnvKey names the environment variable pointing at an optional TOML config file.
const FileEnvKey = "INVESTIGATOR_CONFIG"

// Config aggregates application configuration values.
type Config struct {
	Graph   GraphConfig   `toml:"graph"`
	Logging LoggingConfig `toml:"logging"`
	Ledger  LedgerConfig  `toml:"ledger"`
	Render  RenderConfig  `toml:"render"`
	Ingest  IngestConfig  `toml:"ingest"`
}

// GraphConfig describes connectivity to the Neo4j transfer graph.
type GraphConfig struct {
	URI            string `toml:"uri"`
	Database       string `toml:"database"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	MaxConnections int    `toml:"max_connections"`
	MaxHops        int    `toml:"max_hops"`
	FetchLimit     int    `toml:"fetch_limit"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `toml:"level"`
	Format        string `toml:"format"` // text|json
	IncludeCaller bool   `toml:"include_caller"`
}

// LedgerConfig controls ledger exports.
type LedgerConfig struct {
	ExportDir string `toml:"export_dir"`
}

// RenderConfig controls terminal output.
type RenderConfig struct {
	Color bool `toml:"color"`
}

// IngestConfig controls the bulk ingestion worker pool.
type IngestConfig struct {
	Workers int `toml:"workers"`
}

const (
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
	defaultGraphMaxHops     = 3
	defaultGraphFetchLimit  = 500
	defaultExportDir        = "."
	defaultIngestWorkers    = 8
)

// EnvSource resolves environment variables.
type EnvSource interface {
	Lookup(key string) (string, bool)
}

// EnvMap is an EnvSource backed by a map, used in tests.
type EnvMap map[string]string

func (e EnvMap) Lookup(key string) (string, bool) {
	value, ok := e[key]
	return value, ok
}

type osEnv struct{}

func (osEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// FromEnviron returns the process environment as an EnvSource.
func FromEnviron() EnvSource {
	return osEnv{}
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Graph: GraphConfig{
			MaxConnections: defaultGraphMaxSessions,
			MaxHops:        defaultGraphMaxHops,
			FetchLimit:     defaultGraphFetchLimit,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
		Ledger: LedgerConfig{ExportDir: defaultExportDir},
		Render: RenderConfig{Color: true},
		Ingest: IngestConfig{Workers: defaultIngestWorkers},
	}
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// LoadFromEnvironment reads .env, then the optional TOML file, then the process environment.
func LoadFromEnvironment() (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Load(FromEnviron())
}

// Load layers defaults, the TOML file named by INVESTIGATOR_CONFIG and env overrides.
func Load(source EnvSource) (Config, error) {
	if source == nil {
		return Config{}, errors.New("env source is required")
	}
	cfg := Default()

	if path, ok := source.Lookup(FileEnvKey); ok && strings.TrimSpace(path) != "" {
		if err := LoadFile(strings.TrimSpace(path), &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Graph.URI = valueOrDefault(source, "GRAPH_URI", cfg.Graph.URI)
	cfg.Graph.Database = valueOrDefault(source, "GRAPH_DATABASE", cfg.Graph.Database)
	cfg.Graph.Username = valueOrDefault(source, "GRAPH_USERNAME", cfg.Graph.Username)
	cfg.Graph.Password = valueOrDefault(source, "GRAPH_PASSWORD", cfg.Graph.Password)
	cfg.Graph.MaxConnections = parseIntWithDefault(source, "GRAPH_MAX_CONNECTIONS", cfg.Graph.MaxConnections)
	cfg.Graph.FetchLimit = parseIntWithDefault(source, "GRAPH_FETCH_LIMIT", cfg.Graph.FetchLimit)

	hops, err := parsePositive(source, "GRAPH_MAX_HOPS", cfg.Graph.MaxHops)
	if err != nil {
		return Config{}, err
	}
	cfg.Graph.MaxHops = hops

	cfg.Logging.Level = valueOrDefault(source, "LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault(source, "LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault(source, "LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)

	cfg.Ledger.ExportDir = valueOrDefault(source, "LEDGER_EXPORT_DIR", cfg.Ledger.ExportDir)

	cfg.Render.Color = parseBoolWithDefault(source, "INVESTIGATOR_COLOR", cfg.Render.Color)
	if _, ok := source.Lookup("NO_COLOR"); ok {
		cfg.Render.Color = false
	}

	workers, err := parsePositive(source, "INGEST_WORKERS", cfg.Ingest.Workers)
	if err != nil {
		return Config{}, err
	}
	cfg.Ingest.Workers = workers

	return cfg, nil
}

// LoadFile decodes a TOML file onto cfg. Keys absent from the file keep their values.
func LoadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func valueOrDefault(source EnvSource, key, fallback string) string {
	if v, ok := source.Lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(source EnvSource, key string, fallback bool) bool {
	if v, ok := source.Lookup(key); ok && v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(source EnvSource, key string, fallback int) int {
	if v, ok := source.Lookup(key); ok && v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePositive(source EnvSource, key string, fallback int) (int, error) {
	if v, ok := source.Lookup(key); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if n <= 0 {
			return 0, fmt.Errorf("%s must be positive, got %d", key, n)
		}
		return n, nil
	}
	return fallback, nil
}
