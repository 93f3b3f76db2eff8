package constants

import "time"

// ConflictType represents the type of validation conflict
type ConflictType string

// SessionState represents the current state of the TUI application
type SessionState int

// RecurrenceType represents how often a habit or activity repeats
type RecurrenceType string

// PendingPolicy decides which one-time activities are listed on a given day
type PendingPolicy string

const (
	AppName                 = "goaltrack"
	DefaultKeyringUser      = "github-token"
	KeyringPostgresPassword = "postgres-password"
	DefaultConfigPath       = "~/.config/goaltrack/goaltrack.db"
	Version                 = "v0.3.0"

	// DataVersion is stamped on every persisted document
	DataVersion = "2.0.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "goaltrack-"
	BackupFileSuffix = ".db"

	// Sync constants
	GistFileName    = "goal-tracker-data.json"
	GistDescription = "goaltrack data"
	SyncTimeout     = 15 * time.Second
	GitHubAPIURL    = "https://api.github.com"

	// Recurrence constants
	RecurrenceNone   RecurrenceType = "none"
	RecurrenceDaily  RecurrenceType = "daily"
	RecurrenceWeekly RecurrenceType = "weekly"
	RecurrenceCustom RecurrenceType = "custom"

	// Pending policies for one-time activities
	PendingExact     PendingPolicy = "exact"
	PendingUpcoming  PendingPolicy = "upcoming"
	PendingCarryOver PendingPolicy = "carry_over"

	// Conflict Types
	ConflictDuplicateID        ConflictType = "duplicate_id"
	ConflictMissingWeekday     ConflictType = "missing_weekday"
	ConflictEmptyCustomDays    ConflictType = "empty_custom_days"
	ConflictInvalidWeekday     ConflictType = "invalid_weekday"
	ConflictInvalidTarget      ConflictType = "invalid_target"
	ConflictUnparseableTime    ConflictType = "unparseable_time"
	ConflictInvalidField       ConflictType = "invalid_field"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictOverlappingAnchors ConflictType = "overlapping_anchors"

	// Session States
	StateToday SessionState = iota
	StateWeek
	StateProgress
	StateAddHabit
)
