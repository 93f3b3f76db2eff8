// Package tracker is the application service over a storage.Provider: it
// loads what a view needs, calls the pure core packages and persists
// mutations. A Service is not safe for concurrent use.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/goaltrack/internal/catalog"
	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/progress"
	"github.com/julianstephens/goaltrack/internal/scheduler"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/utils"
)

type Service struct {
	store storage.Provider
	sched *scheduler.Scheduler
	now   func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{store: store, sched: scheduler.New(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the underlying provider for commands that work on it directly.
func (s *Service) Store() storage.Provider {
	return s.store
}

// Today returns local midnight of the service clock.
func (s *Service) Today() time.Time {
	return utils.Midnight(s.now())
}

// dayRecord returns the stored record for date or a fresh empty one.
func (s *Service) dayRecord(date time.Time) (models.DayRecord, bool, error) {
	key := utils.DateKey(date)
	rec, err := s.store.GetDayRecord(key)
	if errors.Is(err, storage.ErrNotFound) {
		return models.NewDayRecord(key), false, nil
	}
	if err != nil {
		return models.DayRecord{}, false, err
	}
	return rec, true, nil
}

// loadDays indexes the stored records between from and to inclusive.
func (s *Service) loadDays(from, to time.Time) (models.DayIndex, error) {
	recs, err := s.store.GetDayRecords(utils.DateKey(from), utils.DateKey(to))
	if err != nil {
		return nil, fmt.Errorf("failed to load day records: %w", err)
	}
	return models.NewDayIndex(recs), nil
}

func (s *Service) settings() (models.Settings, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (s *Service) calendarOptions(settings models.Settings) scheduler.Options {
	opts, err := scheduler.OptionsFromSettings(settings)
	if err != nil {
		logger.Warn("Ignoring invalid work block", "error", err)
		return scheduler.Options{}
	}
	return opts
}

// Week composes the calendar for the week containing date.
func (s *Service) Week(date time.Time) (scheduler.WeekCalendar, error) {
	settings, err := s.settings()
	if err != nil {
		return scheduler.WeekCalendar{}, err
	}
	cat, err := s.store.GetCatalog()
	if err != nil {
		return scheduler.WeekCalendar{}, err
	}
	start := utils.StartOfWeek(date, settings.WeekStartsOn)
	return s.sched.Week(cat, start, s.calendarOptions(settings)), nil
}

// Day composes the calendar for a single date, one-time activities included.
func (s *Service) Day(date time.Time) (scheduler.DayCalendar, error) {
	settings, err := s.settings()
	if err != nil {
		return scheduler.DayCalendar{}, err
	}
	cat, err := s.store.GetCatalog()
	if err != nil {
		return scheduler.DayCalendar{}, err
	}
	return s.sched.Day(cat, utils.Midnight(date), s.calendarOptions(settings)), nil
}

// Progress builds the full statistics report as of today. A positive
// window overrides the configured rate window.
func (s *Service) Progress(today time.Time, window int) (progress.Report, error) {
	settings, err := s.settings()
	if err != nil {
		return progress.Report{}, err
	}
	cat, err := s.store.GetCatalog()
	if err != nil {
		return progress.Report{}, err
	}
	today = utils.Midnight(today)
	opts := progress.OptionsFromSettings(settings)
	if window > 0 {
		opts.WindowDays = window
	}
	days, err := s.loadDays(utils.AddDays(today, -progress.LookbackDays(opts)), utils.AddDays(today, 6))
	if err != nil {
		return progress.Report{}, err
	}
	return progress.Summarize(cat, days, today, opts), nil
}

// UpdateCatalog loads the catalog, applies fn and saves the result unless
// fn fails.
func (s *Service) UpdateCatalog(fn func(*models.Catalog) error) error {
	cat, err := s.store.GetCatalog()
	if err != nil {
		return err
	}
	if err := fn(&cat); err != nil {
		return err
	}
	return s.store.SaveCatalog(cat)
}

// SeedDefaults installs the starter catalog when the catalog is empty.
func (s *Service) SeedDefaults() (bool, error) {
	cat, err := s.store.GetCatalog()
	if err != nil {
		return false, err
	}
	if len(cat.RoutineCategories) > 0 || len(cat.PlannedCategories) > 0 {
		return false, nil
	}
	return true, s.store.SaveCatalog(catalog.DefaultCatalog())
}
