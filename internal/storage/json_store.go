package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/models"
)

// JSONStore keeps the whole AppData document in one file, rewritten
// atomically on every mutation.
type JSONStore struct {
	path string
	data *models.AppData
	now  func() time.Time
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
		now:  time.Now,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyInitialized, s.path)
	}

	data := models.NewAppData()
	settings := models.DefaultSettings()
	data.Settings = &settings
	s.data = &data

	return s.save()
}

func (s *JSONStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	data, skipped, err := models.DecodeAppData(raw)
	if err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	for _, day := range skipped {
		logger.Warn("Skipping malformed day record", "date", day, "path", s.path)
	}
	s.data = &data

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	return s.write(true)
}

// write serializes the document to a temp file and renames it over the
// store, so a crash never leaves a half-written file.
func (s *JSONStore) write(stamp bool) error {
	if stamp {
		s.data.LastUpdated = s.now().UTC()
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".goaltrack-*.json")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.data == nil {
		return models.Settings{}, ErrNotLoaded
	}
	settings := models.Settings{}
	if s.data.Settings != nil {
		settings = *s.data.Settings
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.data == nil {
		return ErrNotLoaded
	}
	s.data.Settings = &settings
	return s.save()
}

func (s *JSONStore) GetCatalog() (models.Catalog, error) {
	if s.data == nil {
		return models.Catalog{}, ErrNotLoaded
	}
	return s.data.Catalog().Clone(), nil
}

func (s *JSONStore) SaveCatalog(catalog models.Catalog) error {
	if s.data == nil {
		return ErrNotLoaded
	}
	s.data.SetCatalog(catalog.Clone())
	return s.save()
}

func (s *JSONStore) GetDayRecord(day string) (models.DayRecord, error) {
	if s.data == nil {
		return models.DayRecord{}, ErrNotLoaded
	}
	rec, ok := s.data.Days[day]
	if !ok {
		return models.DayRecord{}, fmt.Errorf("day %s: %w", day, ErrNotFound)
	}
	return rec.Clone(), nil
}

func (s *JSONStore) SaveDayRecord(rec models.DayRecord) error {
	if s.data == nil {
		return ErrNotLoaded
	}
	if rec.Date == "" {
		return fmt.Errorf("day record has no date")
	}
	s.data.Days[rec.Date] = rec.Clone()
	return s.save()
}

func (s *JSONStore) GetDayRecords(startDay, endDay string) ([]models.DayRecord, error) {
	if s.data == nil {
		return nil, ErrNotLoaded
	}
	var out []models.DayRecord
	for day, rec := range s.data.Days {
		if InRange(day, startDay, endDay) {
			out = append(out, rec.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *JSONStore) Export() (models.AppData, error) {
	if s.data == nil {
		return models.AppData{}, ErrNotLoaded
	}
	out := *s.data
	out.SetCatalog(s.data.Catalog().Clone())
	out.Days = make(map[string]models.DayRecord, len(s.data.Days))
	for k, v := range s.data.Days {
		out.Days[k] = v.Clone()
	}
	if s.data.Settings != nil {
		settings := *s.data.Settings
		out.Settings = &settings
	}
	return out, nil
}

// Import replaces the whole document. A non-zero LastUpdated is kept so
// that a pulled remote copy does not look newer than it is.
func (s *JSONStore) Import(data models.AppData) error {
	if s.data == nil {
		return ErrNotLoaded
	}
	data.Normalize()
	s.data = &data
	return s.write(data.LastUpdated.IsZero())
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
