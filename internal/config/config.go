// Package config defines the data structures related to configuration and
// includes functions for loading, normalizing and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/wishlist-scheduler/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the wishlist scheduler.
type Configuration struct {
	Logging    LoggingConfig    `yaml:"logging,omitempty" mapstructure:"logging"`
	Output     OutputConfig     `yaml:"output,omitempty" mapstructure:"output"`
	Engine     EngineConfig     `yaml:"engine,omitempty" mapstructure:"engine"`
	Projection ProjectionConfig `yaml:"projection,omitempty" mapstructure:"projection"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with WISHLIST_ override
// file values, e.g. WISHLIST_ENGINE_HORIZON=4.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	engine := DefaultEngineConfig()
	v.SetDefault("engine.horizon", engine.Horizon)
	v.SetDefault("engine.maxHorizon", engine.MaxHorizon)
	v.SetDefault("engine.healthyMarginRatio", engine.HealthyMarginRatio)
	v.SetDefault("engine.byeWindow", engine.ByeWindow)
	v.SetDefault("engine.byePenalty", engine.ByePenalty)
	v.SetDefault("engine.volatilityThreshold", engine.VolatilityThreshold)
	v.SetDefault("engine.volatilityLookback", engine.VolatilityLookback)
	v.SetDefault("engine.volatilityPenalty", engine.VolatilityPenalty)
	v.SetDefault("engine.maxPenalty", engine.MaxPenalty)
	v.SetDefault("engine.maxTradesPerRound", engine.MaxTradesPerRound)
	v.SetDefault("engine.lowConfidenceThreshold", engine.LowConfidenceThreshold)
	v.SetDefault("engine.sellWarningThreshold", engine.SellWarningThreshold)

	v.SetDefault("projection.source", constants.ProjectionSourceFile)
	v.SetDefault("projection.concurrency", constants.DefaultProjectionConcurrency)
	v.SetDefault("projection.redis.ttlSeconds", constants.DefaultProjectionCacheTTLSeconds)

	v.SetDefault("output.format", constants.OutputFormatPretty)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.Engine.Normalize()
	if err := configuration.Engine.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	configuration.Projection.Normalize()
	if err := configuration.Projection.Validate(); err != nil {
		return nil, fmt.Errorf("invalid projection configuration: %w", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for settings that are legal but probably unintended.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	e := c.Engine
	if e.ByePenalty+e.VolatilityPenalty > e.MaxPenalty {
		warnings = append(warnings, fmt.Sprintf("Confidence penalties (%d bye + %d volatility) exceed the penalty cap of %d - the cap will apply",
			e.ByePenalty, e.VolatilityPenalty, e.MaxPenalty))
	}
	if e.SellWarningThreshold >= e.MaxTradesPerRound {
		warnings = append(warnings, fmt.Sprintf("Sell warning threshold %d is not below the per-round trade cap %d - sell volume warnings will never fire",
			e.SellWarningThreshold, e.MaxTradesPerRound))
	}
	if e.Horizon > 12 {
		warnings = append(warnings, fmt.Sprintf("Horizon of %d rounds is long - projections that far out are rarely reliable", e.Horizon))
	}

	if c.Projection.Redis.Addr == "" {
		warnings = append(warnings, "No redis address configured - projections are cached in process memory only")
	}

	return warnings
}
