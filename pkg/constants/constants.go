// Package constants provides shared constants for the wishlist scheduler.
package constants

// Scheduling defaults
const (
	// DefaultHorizon is the number of rounds, starting at the current round,
	// that the engine schedules over.
	DefaultHorizon = 6

	// MaxHorizon is the default cap on the horizon a request may ask for,
	// roughly one full season of rounds.
	MaxHorizon = 30

	// MaxRound is the highest current round or horizon a request may name.
	MaxRound = 1000

	// DefaultHealthyMarginRatio is the post-trade margin (as a share of the
	// salary available) at or above which confidence starts at 100.
	DefaultHealthyMarginRatio = 0.15

	// DefaultByeWindow is the number of rounds ahead in which an upcoming bye
	// is penalized.
	DefaultByeWindow = 2

	// DefaultByePenalty is the confidence penalty for an upcoming bye.
	DefaultByePenalty = 10

	// DefaultVolatilityThreshold is the relative price swing above which a
	// projection is treated as volatile (10%).
	DefaultVolatilityThreshold = 0.10

	// DefaultVolatilityLookback is the number of rounds before the trade round
	// used to measure price volatility.
	DefaultVolatilityLookback = 3

	// DefaultVolatilityPenalty is the confidence penalty for a volatile price.
	DefaultVolatilityPenalty = 10

	// DefaultMaxPenalty caps the total of all confidence penalties.
	DefaultMaxPenalty = 20

	// DefaultMaxTradesPerRound mirrors the competition's trade limit per round.
	DefaultMaxTradesPerRound = 2

	// DefaultLowConfidenceThreshold is the confidence below which a scheduled
	// trade gets a warning.
	DefaultLowConfidenceThreshold = 50

	// DefaultSellWarningThreshold is the number of sells in one round above
	// which a cash-generation step gets a warning.
	DefaultSellWarningThreshold = 1

	// MaxConfidence is the upper bound of every confidence score.
	MaxConfidence = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Projection source constants
const (
	// ProjectionSourceFile reads players and projections from a data file.
	ProjectionSourceFile = "file"

	// ProjectionSourcePostgres reads players and projections from Postgres.
	ProjectionSourcePostgres = "postgres"

	// DefaultProjectionConcurrency bounds concurrent projection lookups.
	DefaultProjectionConcurrency = 8

	// DefaultProjectionCacheTTLSeconds is how long cached projections live.
	DefaultProjectionCacheTTLSeconds = 900
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. WISHLIST_ENGINE_HORIZON.
	EnvPrefix = "WISHLIST"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)
