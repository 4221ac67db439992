package config

import "time"

// Application-wide constants organized by domain

// Check-in constraints
const (
	MoodLevelMin   = 1
	MoodLevelMax   = 5
	EnergyLevelMin = 1
	EnergyLevelMax = 3
	NotesMaxLength = 500
)

// Task lifecycle
const (
	// MaxDailyTaskRequests caps how many replacement tasks a user can
	// request against a single daily task.
	MaxDailyTaskRequests = 3

	// TaskTTL is fixed at creation and never recomputed.
	TaskTTL = 24 * time.Hour
)

// Plants reward board
const (
	PlantsBoardRows = 5
	PlantsBoardCols = 6
)

// Pagination
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Database and performance
const (
	DefaultQueryTimeout = 30 * time.Second
	StatsQueryTimeout   = 10 * time.Second

	TemplateCacheSize = 256
)

// Security
const (
	SessionTimeout    = 24 * time.Hour
	PasswordMinLength = 8
)

// Rate limiting
const (
	AuthRateLimit   = 5
	APIRateLimit    = 100
	RateLimitWindow = 1 * time.Minute
)

// Housekeeping
const (
	// EventRetention bounds the append-only user_events log; older rows
	// are purged by the nightly sweep.
	EventRetention = 180 * 24 * time.Hour
)
