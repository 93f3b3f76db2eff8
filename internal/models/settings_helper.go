package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/goaltrack/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingWeekStartsOn:
			if _, err := fmt.Sscanf(value, "%d", &settings.WeekStartsOn); err != nil {
				return Settings{}, fmt.Errorf("parsing week_starts_on: %w", err)
			}
		case constants.SettingStreakThreshold:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing streak_threshold: %w", err)
			}
			settings.StreakThreshold = f
		case constants.SettingProgressWindowDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.ProgressWindowDays); err != nil {
				return Settings{}, fmt.Errorf("parsing progress_window_days: %w", err)
			}
		case constants.SettingPendingPolicy:
			settings.PendingPolicy = constants.PendingPolicy(value)
		case constants.SettingHabitsRespectRecurrence:
			settings.HabitsRespectRecurrence = value == "true"
		case constants.SettingWorkBlockEnabled:
			settings.WorkBlockEnabled = value == "true"
		case constants.SettingWorkStart:
			settings.WorkStart = value
		case constants.SettingWorkEnd:
			settings.WorkEnd = value
		case constants.SettingWorkDays:
			days, err := ParseDayList(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing work_days: %w", err)
			}
			settings.WorkDays = days
		case constants.SettingGistID:
			settings.GistID = value
		case constants.SettingLastSynced:
			settings.LastSynced = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingWeekStartsOn:            fmt.Sprintf("%d", settings.WeekStartsOn),
		constants.SettingStreakThreshold:         strconv.FormatFloat(settings.StreakThreshold, 'f', -1, 64),
		constants.SettingProgressWindowDays:      fmt.Sprintf("%d", settings.ProgressWindowDays),
		constants.SettingPendingPolicy:           string(settings.PendingPolicy),
		constants.SettingHabitsRespectRecurrence: fmt.Sprintf("%v", settings.HabitsRespectRecurrence),
		constants.SettingWorkBlockEnabled:        fmt.Sprintf("%v", settings.WorkBlockEnabled),
		constants.SettingWorkStart:               settings.WorkStart,
		constants.SettingWorkEnd:                 settings.WorkEnd,
		constants.SettingWorkDays:                FormatDayList(settings.WorkDays),
		constants.SettingGistID:                  settings.GistID,
		constants.SettingLastSynced:              settings.LastSynced,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.StreakThreshold <= 0 || settings.StreakThreshold > 1 {
		settings.StreakThreshold = constants.DefaultStreakThreshold
	}
	if settings.ProgressWindowDays <= 0 {
		settings.ProgressWindowDays = constants.DefaultProgressWindowDays
	}
	if settings.WeekStartsOn < 0 || settings.WeekStartsOn > 6 {
		settings.WeekStartsOn = constants.DefaultWeekStartsOn
	}
	switch settings.PendingPolicy {
	case constants.PendingExact, constants.PendingUpcoming, constants.PendingCarryOver:
	default:
		settings.PendingPolicy = constants.DefaultPendingPolicy
	}
	if settings.WorkStart == "" {
		settings.WorkStart = constants.DefaultWorkStart
	}
	if settings.WorkEnd == "" {
		settings.WorkEnd = constants.DefaultWorkEnd
	}
	if settings.WorkDays == nil {
		settings.WorkDays, _ = ParseDayList(constants.DefaultWorkDays)
	}
}

// DefaultSettings returns a Settings value with every default applied.
func DefaultSettings() Settings {
	s := Settings{}
	ApplyDefaultSettings(&s)
	return s
}

// ParseDayList parses a comma-separated list of weekday numbers (0-6).
func ParseDayList(value string) ([]int, error) {
	days := []int{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("weekday %d out of range 0-6", d)
		}
		days = append(days, d)
	}
	return days, nil
}

func FormatDayList(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}
