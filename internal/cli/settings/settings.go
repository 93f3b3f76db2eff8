package settings

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
	"github.com/julianstephens/goaltrack/internal/validation"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" default:"1" help:"Show current settings."`
	Set  SettingsSetCmd  `cmd:"" help:"Change a setting."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	values := models.SettingsToMap(settings)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tbl := cli.NewTable()
	for _, k := range keys {
		v := values[k]
		switch k {
		case constants.SettingWorkDays:
			v = fmt.Sprintf("%s (%s)", v, utils.FormatWeekdays(settings.WorkDays))
		case constants.SettingWeekStartsOn:
			v = fmt.Sprintf("%s (%s)", v, time.Weekday(settings.WeekStartsOn))
		case constants.SettingLastSynced:
			if at, err := time.Parse(time.RFC3339, v); err == nil {
				v = fmt.Sprintf("%s (%s)", v, humanize.Time(at))
			}
		}
		if v == "" {
			v = cli.Faint.Sprint("-")
		}
		tbl.AddRow(cli.Bold.Sprint(k), v)
	}
	ctx.Println(tbl)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting name, e.g. streak_threshold."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	updated, err := Apply(settings, c.Key, c.Value)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(updated); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Printf("Set %s = %s\n", c.Key, models.SettingsToMap(updated)[c.Key])
	return nil
}

// Apply sets one key from its text form and validates the result.
func Apply(settings models.Settings, key, value string) (models.Settings, error) {
	key = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(key, "-", "_")))
	value = strings.TrimSpace(value)

	values := models.SettingsToMap(settings)
	if _, ok := values[key]; !ok {
		return settings, fmt.Errorf("unknown setting %q", key)
	}

	switch key {
	case constants.SettingHabitsRespectRecurrence, constants.SettingWorkBlockEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return settings, fmt.Errorf("%s must be true or false", key)
		}
		value = strconv.FormatBool(b)
	case constants.SettingWeekStartsOn:
		d, err := utils.ParseWeekday(value)
		if err != nil {
			return settings, err
		}
		value = strconv.Itoa(d)
	case constants.SettingWorkDays:
		days, err := utils.ParseWeekdays(value)
		if err != nil {
			return settings, err
		}
		value = models.FormatDayList(days)
	case constants.SettingPendingPolicy:
		switch constants.PendingPolicy(value) {
		case constants.PendingExact, constants.PendingUpcoming, constants.PendingCarryOver:
		default:
			return settings, fmt.Errorf("pending_policy must be exact, upcoming or carry_over")
		}
	case constants.SettingProgressWindowDays:
		if n, err := strconv.Atoi(value); err != nil || n <= 0 {
			return settings, fmt.Errorf("progress_window_days must be a positive number")
		}
	}
	values[key] = value

	out, err := models.MapToSettings(values)
	if err != nil {
		return settings, err
	}
	result := validation.New().ValidateSettings(out)
	if result.HasErrors() {
		return settings, fmt.Errorf("invalid settings:\n%s", result.FormatReport())
	}
	return out, nil
}
