package models

import (
	"reflect"
	"testing"

	"github.com/julianstephens/goaltrack/internal/constants"
)

func TestSettingsMapRoundTrip(t *testing.T) {
	in := Settings{
		WeekStartsOn:            1,
		StreakThreshold:         0.8,
		ProgressWindowDays:      21,
		PendingPolicy:           constants.PendingUpcoming,
		HabitsRespectRecurrence: true,
		WorkBlockEnabled:        true,
		WorkStart:               "08:30",
		WorkEnd:                 "17:00",
		WorkDays:                []int{1, 2, 3},
		GistID:                  "abc",
	}

	out, err := MapToSettings(SettingsToMap(in))
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMapToSettings_Errors(t *testing.T) {
	tests := []struct {
		name string
		data map[string]string
	}{
		{"bad week start", map[string]string{constants.SettingWeekStartsOn: "monday"}},
		{"bad threshold", map[string]string{constants.SettingStreakThreshold: "lots"}},
		{"bad work day", map[string]string{constants.SettingWorkDays: "1,9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := MapToSettings(tt.data); err == nil {
				t.Error("MapToSettings() expected error")
			}
		})
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	s := Settings{PendingPolicy: "bogus"}
	ApplyDefaultSettings(&s)

	if s.StreakThreshold != constants.DefaultStreakThreshold {
		t.Errorf("StreakThreshold = %v, want %v", s.StreakThreshold, constants.DefaultStreakThreshold)
	}
	if s.ProgressWindowDays != constants.DefaultProgressWindowDays {
		t.Errorf("ProgressWindowDays = %v, want %v", s.ProgressWindowDays, constants.DefaultProgressWindowDays)
	}
	if s.PendingPolicy != constants.PendingCarryOver {
		t.Errorf("PendingPolicy = %v, want %v", s.PendingPolicy, constants.PendingCarryOver)
	}
	if !reflect.DeepEqual(s.WorkDays, []int{1, 2, 3, 4, 5}) {
		t.Errorf("WorkDays = %v, want [1 2 3 4 5]", s.WorkDays)
	}
}
