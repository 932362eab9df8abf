// Package config loads the database connections used to call stored
// procedures.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/imdario/mergo"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	envPrefix = "SPROC"

	// DefaultName is used as the default connection when none is configured
	// and a connection has this name.
	DefaultName = "default"

	// DefaultPingTimeout bounds the ping done when a connection is opened.
	DefaultPingTimeout = 5 * time.Second
)

var (
	// ErrNoConnections is returned when no connection is configured.
	ErrNoConnections = errors.New("no connections configured")
	// ErrUnknownDefault is returned when the default connection is missing.
	ErrUnknownDefault = errors.New("default connection is not configured")
)

// Connection describes how to open a single database.
type Connection struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpen         int           `mapstructure:"maxOpen"`
	MaxIdle         int           `mapstructure:"maxIdle"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
	PingTimeout     time.Duration `mapstructure:"pingTimeout"`
}

// Config is the default connection name and every named connection.
type Config struct {
	Default     string                `mapstructure:"default"`
	Connections map[string]Connection `mapstructure:"connections"`
}

var connectionDefaults = Connection{
	MaxOpen:         10,
	MaxIdle:         5,
	ConnMaxLifetime: 5 * time.Minute,
	PingTimeout:     DefaultPingTimeout,
}

// Load reads configuration from path. Values may be overridden by SPROC_
// environment variables, e.g. SPROC_DEFAULT or SPROC_CONNECTIONS_MAIN_DSN.
// Connection names are lower case.
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand config path: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(expanded)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("default"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills unset connection settings and picks the default
// connection when it is implied.
func (c *Config) applyDefaults() error {
	for name, conn := range c.Connections {
		if err := mergo.Merge(&conn, connectionDefaults); err != nil {
			return fmt.Errorf("connection %q defaults: %w", name, err)
		}
		c.Connections[name] = conn
	}

	if c.Default == "" {
		if _, ok := c.Connections[DefaultName]; ok {
			c.Default = DefaultName
		} else if len(c.Connections) == 1 {
			for name := range c.Connections {
				c.Default = name
			}
		}
	}
	return nil
}

// Validate checks that the default exists and every connection can be opened.
func (c *Config) Validate() error {
	if len(c.Connections) == 0 {
		return ErrNoConnections
	}
	if _, ok := c.Connections[c.Default]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDefault, c.Default)
	}
	for _, name := range c.Names() {
		conn := c.Connections[name]
		if strings.TrimSpace(conn.Driver) == "" {
			return fmt.Errorf("config connections.%s.driver is required", name)
		}
		if strings.TrimSpace(conn.DSN) == "" {
			return fmt.Errorf("config connections.%s.dsn is required", name)
		}
	}
	return nil
}

// Names returns the connection names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Connections))
	for name := range c.Connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
