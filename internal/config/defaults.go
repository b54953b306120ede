package config

import "time"

// Dataset defaults
const (
	DefaultDatasetPath = ""
	DefaultSeedCount   = 120
	DefaultSeed        = 42
)

// Provider defaults
const (
	DefaultProviderKind  = "mock"
	DefaultTasksLatency  = 1500 * time.Millisecond
	DefaultCountsLatency = 1000 * time.Millisecond
	DefaultUpdateLatency = 300 * time.Millisecond
)

// View defaults
const (
	DefaultPageSize       = 20
	DefaultInfiniteScroll = true
	DefaultLoadBefore     = 900
	DefaultStripeHeight   = 650
	DefaultCooldown       = 500 * time.Millisecond
)

// Server defaults
const (
	DefaultServerAddr = ":8080"
	DefaultRemoteURL  = "http://localhost:8080"
)

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "info"
