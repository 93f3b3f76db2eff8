package sqldb

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
)

func (s *Store) Export() (models.AppData, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return models.AppData{}, err
	}
	catalog, err := s.GetCatalog()
	if err != nil {
		return models.AppData{}, err
	}
	records, err := s.GetDayRecords("", "")
	if err != nil {
		return models.AppData{}, err
	}
	updated, err := s.LastUpdated()
	if err != nil {
		return models.AppData{}, err
	}

	data := models.NewAppData()
	data.Version = constants.DataVersion
	data.Settings = &settings
	data.SetCatalog(catalog)
	for _, rec := range records {
		data.Days[rec.Date] = rec
	}
	data.LastUpdated = updated
	return data, nil
}

// Import replaces every table's contents with data in one transaction.
// A non-zero LastUpdated is preserved.
func (s *Store) Import(data models.AppData) error {
	data.Normalize()
	return s.withTx(func(tx *sql.Tx) error {
		for _, table := range []string{"settings", "day_records"} {
			if err := s.exec(tx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		settings := models.DefaultSettings()
		if data.Settings != nil {
			settings = *data.Settings
			models.ApplyDefaultSettings(&settings)
		}
		if err := s.saveSettings(tx, settings); err != nil {
			return err
		}
		if err := s.saveCatalog(tx, data.Catalog()); err != nil {
			return err
		}
		for _, rec := range data.Days {
			if err := s.saveDayRecord(tx, rec); err != nil {
				return err
			}
		}

		stamp := data.LastUpdated
		if stamp.IsZero() {
			stamp = s.now()
		}
		return s.touch(tx, stamp)
	})
}
