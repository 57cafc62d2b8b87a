// Package serv is the HTTP entrypoint that wires a record.DB handle, a
// query.Engine, and a GraphQL-args resolver together behind net/http,
// the way the teacher's serv package wires core.GraphJin behind chi.
package serv

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config is the service's full runtime configuration: database selection
// and connection, the HTTP listener and CORS, and the pagination limits
// every resolver call is clamped against.
type Config struct {
	DB     DatabaseConfig `mapstructure:"database"`
	Server ServerConfig   `mapstructure:"server"`
	Page   PageConfig     `mapstructure:"page"`

	configPath string
	viper      *viper.Viper
}

// DatabaseConfig selects and configures the backing record.DB.
type DatabaseConfig struct {
	Type           string        `mapstructure:"type"` // "sqlite" | "postgres"
	ConnString     string        `mapstructure:"connection_string"`
	MaxConnections int           `mapstructure:"max_connections"`
	MaxConnIdle    int           `mapstructure:"max_idle_connections"`
	ConnLifetime   time.Duration `mapstructure:"connection_lifetime"`
}

// ServerConfig configures the HTTP listener and CORS.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	LogLevel       string   `mapstructure:"log_level"`
}

// PageConfig sets the pagination limit every resolver call is clamped
// against. The default page size when neither first nor last is supplied
// is page.DefaultForwardLimit, not configurable here.
type PageConfig struct {
	MaxLimit int `mapstructure:"max_limit"`
}

// ReadInConfig reads configFile (a path without extension, viper-style)
// off fs, applying defaults for anything unset.
func ReadInConfig(fs afero.Fs, configFile string) (*Config, error) {
	cp := filepath.Dir(configFile)
	vi := newViper(fs, cp, filepath.Base(configFile))

	if err := vi.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "serv: reading config")
	}

	c := &Config{viper: vi, configPath: cp}
	if err := vi.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "serv: decoding config")
	}
	return c, nil
}

func newViper(fs afero.Fs, configPath, configFile string) *viper.Viper {
	vi := viper.New()
	if fs != nil {
		vi.SetFs(fs)
	}

	vi.SetDefault("database.type", "sqlite")
	vi.SetDefault("database.max_connections", 10)
	vi.SetDefault("database.max_idle_connections", 2)
	vi.SetDefault("database.connection_lifetime", time.Hour)

	vi.SetDefault("server.addr", "0.0.0.0:8080")
	vi.SetDefault("server.log_level", "info")

	vi.SetDefault("page.max_limit", 200)

	vi.BindEnv("database.connection_string", "QS_DB_CONN_STRING") //nolint:errcheck
	vi.BindEnv("server.addr", "QS_SERVER_ADDR")                   //nolint:errcheck

	vi.SetConfigName(strings.TrimSuffix(configFile, filepath.Ext(configFile)))
	if configPath == "" {
		vi.AddConfigPath(".")
	} else {
		vi.AddConfigPath(configPath)
	}
	return vi
}

// WatchAndReload registers a callback invoked whenever the config file
// changes on disk; the change is logged, not auto-applied to already-open
// DB handles — reload requires a process restart since record.DB handles
// are opened once at startup.
func (c *Config) WatchAndReload(log *zap.SugaredLogger) {
	c.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("config file changed; restart to apply", "file", e.Name)
	})
	c.viper.WatchConfig()
}

// AbsolutePath resolves p relative to the directory the config file was
// loaded from.
func (c *Config) AbsolutePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.configPath, p)
}

// Validate checks the fields serve requires before opening a database
// handle.
func (c *Config) Validate() error {
	switch c.DB.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("serv: config: unsupported database.type %q", c.DB.Type)
	}
	if c.DB.ConnString == "" {
		return errors.New("serv: config: database.connection_string is required")
	}
	return nil
}
