package config

import (
	"fmt"

	"github.com/iwvelando/wishlist-scheduler/pkg/constants"
)

// EngineConfig holds the scheduling policy. The ranking and confidence-decay
// parameters are product decisions, so every one of them is configurable.
type EngineConfig struct {
	Horizon                int     `yaml:"horizon,omitempty" mapstructure:"horizon"`
	MaxHorizon             int     `yaml:"maxHorizon,omitempty" mapstructure:"maxHorizon"`
	HealthyMarginRatio     float64 `yaml:"healthyMarginRatio,omitempty" mapstructure:"healthyMarginRatio"`
	ByeWindow              int     `yaml:"byeWindow,omitempty" mapstructure:"byeWindow"`
	ByePenalty             int     `yaml:"byePenalty,omitempty" mapstructure:"byePenalty"`
	VolatilityThreshold    float64 `yaml:"volatilityThreshold,omitempty" mapstructure:"volatilityThreshold"`
	VolatilityLookback     int     `yaml:"volatilityLookback,omitempty" mapstructure:"volatilityLookback"`
	VolatilityPenalty      int     `yaml:"volatilityPenalty,omitempty" mapstructure:"volatilityPenalty"`
	MaxPenalty             int     `yaml:"maxPenalty,omitempty" mapstructure:"maxPenalty"`
	MaxTradesPerRound      int     `yaml:"maxTradesPerRound,omitempty" mapstructure:"maxTradesPerRound"`
	LowConfidenceThreshold int     `yaml:"lowConfidenceThreshold,omitempty" mapstructure:"lowConfidenceThreshold"`
	SellWarningThreshold   int     `yaml:"sellWarningThreshold,omitempty" mapstructure:"sellWarningThreshold"`
}

// DefaultEngineConfig returns the documented default scheduling policy.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Horizon:                constants.DefaultHorizon,
		MaxHorizon:             constants.MaxHorizon,
		HealthyMarginRatio:     constants.DefaultHealthyMarginRatio,
		ByeWindow:              constants.DefaultByeWindow,
		ByePenalty:             constants.DefaultByePenalty,
		VolatilityThreshold:    constants.DefaultVolatilityThreshold,
		VolatilityLookback:     constants.DefaultVolatilityLookback,
		VolatilityPenalty:      constants.DefaultVolatilityPenalty,
		MaxPenalty:             constants.DefaultMaxPenalty,
		MaxTradesPerRound:      constants.DefaultMaxTradesPerRound,
		LowConfidenceThreshold: constants.DefaultLowConfidenceThreshold,
		SellWarningThreshold:   constants.DefaultSellWarningThreshold,
	}
}

// Normalize fills structural parameters that cannot meaningfully be zero.
// Penalties and thresholds are left alone so that zero can disable them.
func (e *EngineConfig) Normalize() {
	if e == nil {
		return
	}
	if e.Horizon <= 0 {
		e.Horizon = constants.DefaultHorizon
	}
	if e.MaxHorizon <= 0 {
		e.MaxHorizon = constants.MaxHorizon
	}
	if e.HealthyMarginRatio <= 0 {
		e.HealthyMarginRatio = constants.DefaultHealthyMarginRatio
	}
	if e.VolatilityLookback <= 0 {
		e.VolatilityLookback = constants.DefaultVolatilityLookback
	}
	if e.MaxTradesPerRound <= 0 {
		e.MaxTradesPerRound = constants.DefaultMaxTradesPerRound
	}
}

// Validate returns an error when the engine configuration is unusable.
func (e *EngineConfig) Validate() error {
	if e == nil {
		return fmt.Errorf("engine configuration cannot be nil")
	}

	if e.Horizon <= 0 {
		return fmt.Errorf("horizon %d must be at least 1", e.Horizon)
	}
	if e.MaxHorizon < e.Horizon {
		return fmt.Errorf("horizon %d exceeds the horizon cap of %d", e.Horizon, e.MaxHorizon)
	}
	if e.MaxHorizon > constants.MaxRound {
		return fmt.Errorf("horizon cap %d exceeds the round limit of %d", e.MaxHorizon, constants.MaxRound)
	}
	if e.HealthyMarginRatio <= 0 || e.HealthyMarginRatio > 1 {
		return fmt.Errorf("healthy margin ratio %.2f must be in (0, 1]", e.HealthyMarginRatio)
	}
	if e.ByeWindow < 0 {
		return fmt.Errorf("bye window %d cannot be negative", e.ByeWindow)
	}
	if e.ByePenalty < 0 || e.VolatilityPenalty < 0 || e.MaxPenalty < 0 {
		return fmt.Errorf("confidence penalties cannot be negative")
	}
	if e.MaxPenalty > constants.MaxConfidence {
		return fmt.Errorf("penalty cap %d exceeds the maximum confidence of %d", e.MaxPenalty, constants.MaxConfidence)
	}
	if e.VolatilityThreshold < 0 {
		return fmt.Errorf("volatility threshold %.2f cannot be negative", e.VolatilityThreshold)
	}
	if e.MaxTradesPerRound <= 0 {
		return fmt.Errorf("max trades per round %d must be at least 1", e.MaxTradesPerRound)
	}
	if e.LowConfidenceThreshold < 0 || e.LowConfidenceThreshold > constants.MaxConfidence {
		return fmt.Errorf("low confidence threshold %d must be within [0, %d]", e.LowConfidenceThreshold, constants.MaxConfidence)
	}
	if e.SellWarningThreshold < 0 {
		return fmt.Errorf("sell warning threshold %d cannot be negative", e.SellWarningThreshold)
	}

	return nil
}
