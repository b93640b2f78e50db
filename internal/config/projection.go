package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/wishlist-scheduler/pkg/constants"
)

// ProjectionConfig selects where players and price projections come from and
// how they are cached.
type ProjectionConfig struct {
	Source      string         `yaml:"source,omitempty" mapstructure:"source"` // file, postgres
	File        string         `yaml:"file,omitempty" mapstructure:"file"`
	Postgres    PostgresConfig `yaml:"postgres,omitempty" mapstructure:"postgres"`
	Redis       RedisConfig    `yaml:"redis,omitempty" mapstructure:"redis"`
	Concurrency int            `yaml:"concurrency,omitempty" mapstructure:"concurrency"`
}

// PostgresConfig holds the database connection for the postgres source.
type PostgresConfig struct {
	DSN string `yaml:"dsn,omitempty" mapstructure:"dsn"`
}

// RedisConfig holds the optional projection cache connection.
type RedisConfig struct {
	Addr       string `yaml:"addr,omitempty" mapstructure:"addr"`
	Password   string `yaml:"password,omitempty" mapstructure:"password"`
	DB         int    `yaml:"db,omitempty" mapstructure:"db"`
	TTLSeconds int    `yaml:"ttlSeconds,omitempty" mapstructure:"ttlSeconds"`
}

// TTL returns the cache entry lifetime.
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// Normalize applies defaults and canonical values.
func (p *ProjectionConfig) Normalize() {
	if p == nil {
		return
	}
	p.Source = strings.ToLower(strings.TrimSpace(p.Source))
	if p.Source == "" {
		p.Source = constants.ProjectionSourceFile
	}
	p.File = strings.TrimSpace(p.File)
	if p.Concurrency <= 0 {
		p.Concurrency = constants.DefaultProjectionConcurrency
	}
	if p.Redis.TTLSeconds <= 0 {
		p.Redis.TTLSeconds = constants.DefaultProjectionCacheTTLSeconds
	}
}

// Validate returns an error when the projection configuration is unsupported.
func (p *ProjectionConfig) Validate() error {
	if p == nil {
		return fmt.Errorf("projection configuration cannot be nil")
	}

	switch p.Source {
	case constants.ProjectionSourceFile:
		if p.File == "" {
			return fmt.Errorf("projection source %q requires a file", p.Source)
		}
	case constants.ProjectionSourcePostgres:
		if strings.TrimSpace(p.Postgres.DSN) == "" {
			return fmt.Errorf("projection source %q requires a dsn", p.Source)
		}
	default:
		return fmt.Errorf("projection source %q is not supported", p.Source)
	}

	if p.Redis.DB < 0 {
		return fmt.Errorf("redis db %d cannot be negative", p.Redis.DB)
	}

	return nil
}
