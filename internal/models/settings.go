package models

import "github.com/julianstephens/goaltrack/internal/constants"

// Settings represents application-wide settings
type Settings struct {
	WeekStartsOn            int                     `json:"week_starts_on" yaml:"week_starts_on"`                       // 0 = Sunday .. 6 = Saturday
	StreakThreshold         float64                 `json:"streak_threshold" yaml:"streak_threshold"`                   // fraction of habits that keeps a streak alive
	ProgressWindowDays      int                     `json:"progress_window_days" yaml:"progress_window_days"`           // trailing window for per-item rates
	PendingPolicy           constants.PendingPolicy `json:"pending_policy" yaml:"pending_policy"`                       // which one-time activities show on a day
	HabitsRespectRecurrence bool                    `json:"habits_respect_recurrence" yaml:"habits_respect_recurrence"` // count habit rates only on due days
	WorkBlockEnabled        bool                    `json:"work_block_enabled" yaml:"work_block_enabled"`               // draw a work block on the calendar
	WorkStart               string                  `json:"work_start" yaml:"work_start"`                               // HH:MM
	WorkEnd                 string                  `json:"work_end" yaml:"work_end"`                                   // HH:MM
	WorkDays                []int                   `json:"work_days" yaml:"work_days"`                                 // weekdays 0-6
	GistID                  string                  `json:"gist_id,omitempty" yaml:"gist_id,omitempty"`
	LastSynced              string                  `json:"last_synced,omitempty" yaml:"last_synced,omitempty"` // RFC3339
}
