package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mwielgus/postgraph/pkg/errors"
	"github.com/mwielgus/postgraph/pkg/pipeline"
)

// Cache backends selectable in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendMongo = "mongo"
	CacheBackendNone  = "none"
)

// Config is the optional TOML configuration file
// (~/.config/postgraph/config.toml).
type Config struct {
	// Source is the default post directory when the command gets none.
	Source string `toml:"source"`

	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig overrides the layout constants. Zero values keep the
// built-in defaults.
type LayoutConfig struct {
	RowHeight     float64 `toml:"row_height"`
	PaddingTop    float64 `toml:"padding_top"`
	PaddingBottom float64 `toml:"padding_bottom"`
	MainX         float64 `toml:"main_x"`
	BranchSpacing float64 `toml:"branch_spacing"`
	LabelWidth    float64 `toml:"label_width"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file (default), redis, mongo, none
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// configPath returns the config file location using the XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file. A missing file yields the zero config;
// a malformed one is an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := validateBackend(cfg.Cache.Backend); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateBackend(backend string) error {
	switch backend {
	case "", CacheBackendFile, CacheBackendRedis, CacheBackendMongo, CacheBackendNone:
		return nil
	}
	return invalidBackendError(backend)
}

func invalidBackendError(backend string) error {
	return errors.New(errors.ErrCodeInvalidConfig,
		"invalid cache backend: %q (must be one of: file, redis, mongo, none)", backend)
}

// applyConfig folds config file values into pipeline options. Flags win:
// only unset option fields are filled.
func applyConfig(opts *pipeline.Options, cfg Config) {
	if opts.Source == "" {
		opts.Source = cfg.Source
	}
	if opts.RowHeight == 0 {
		opts.RowHeight = cfg.Layout.RowHeight
	}
	if opts.PaddingTop == 0 {
		opts.PaddingTop = cfg.Layout.PaddingTop
	}
	if opts.PaddingBottom == 0 {
		opts.PaddingBottom = cfg.Layout.PaddingBottom
	}
	if opts.MainX == 0 {
		opts.MainX = cfg.Layout.MainX
	}
	if opts.BranchSpacing == 0 {
		opts.BranchSpacing = cfg.Layout.BranchSpacing
	}
	if opts.LabelWidth == 0 {
		opts.LabelWidth = cfg.Layout.LabelWidth
	}
}
