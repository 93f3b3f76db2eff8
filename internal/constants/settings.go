package constants

const (
	SettingWeekStartsOn            = "week_starts_on"
	SettingStreakThreshold         = "streak_threshold"
	SettingProgressWindowDays      = "progress_window_days"
	SettingPendingPolicy           = "pending_policy"
	SettingHabitsRespectRecurrence = "habits_respect_recurrence"
	SettingWorkBlockEnabled        = "work_block_enabled"
	SettingWorkStart               = "work_start"
	SettingWorkEnd                 = "work_end"
	SettingWorkDays                = "work_days"
	SettingGistID                  = "gist_id"
	SettingLastSynced              = "last_synced"

	// Default Settings Values
	DefaultWeekStartsOn       = 0
	DefaultStreakThreshold    = 0.7
	DefaultProgressWindowDays = 14
	DefaultPendingPolicy      = PendingCarryOver
	DefaultWorkStart          = "09:00"
	DefaultWorkEnd            = "18:15"
	DefaultWorkDays           = "1,2,3,4,5"

	// Progress constants
	StreakCap           = 365
	MonthlyWindowDays   = 30
	WeeklyBreakdown     = 4
	RankLimit           = 5
	StrugglingBelow     = 50
	StrongAtOrAbove     = 80
	DefaultNumberMax    = 100
	DefaultNumberTarget = 1

	// Completion color bands, in percent
	RateGreen  = 80
	RateYellow = 60
	RateOrange = 40
)
