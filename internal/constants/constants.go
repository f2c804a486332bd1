package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	SimulationTimeout  = 15 * time.Second
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	CareerHistoryLimit    = 10
	MaxCareerHistoryLimit = 100
	RecentSeriesLimit     = 20
	LineupSize            = 5
	FreeAgentTeam         = "Free Agent"
)

const (
	RateLimiterIdleTTL   = 3 * time.Minute
	RateLimiterSweepTick = time.Minute
)

const (
	MaxRosterFeedBytes = 4 << 20
)
