package storage

import (
	"errors"

	"github.com/julianstephens/goaltrack/internal/models"
)

var (
	// ErrNotFound is returned when a day record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotLoaded is returned by any accessor called before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrNotInitialized is returned by Load when no store exists yet.
	ErrNotInitialized = errors.New("storage not initialized")
	// ErrAlreadyInitialized is returned by Init when the store exists.
	ErrAlreadyInitialized = errors.New("storage already initialized")
)

// Provider persists the catalog, settings and day records. Implementations
// are not safe for concurrent use; the process is the single writer.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Catalog
	GetCatalog() (models.Catalog, error)
	SaveCatalog(models.Catalog) error

	// Day records
	GetDayRecord(day string) (models.DayRecord, error)
	SaveDayRecord(models.DayRecord) error
	GetDayRecords(startDay, endDay string) ([]models.DayRecord, error)

	// Whole-document transfer, used by sync, backup and import/export.
	Export() (models.AppData, error)
	Import(models.AppData) error

	// Utils
	GetConfigPath() string
}

// InRange reports whether day lies in the inclusive range [start, end].
// Date keys are YYYY-MM-DD so lexical order is calendar order; an empty
// bound is open.
func InRange(day, start, end string) bool {
	if start != "" && day < start {
		return false
	}
	if end != "" && day > end {
		return false
	}
	return true
}
