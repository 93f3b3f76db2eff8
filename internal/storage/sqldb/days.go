package sqldb

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage"
)

// lastDay bounds open-ended range queries.
const lastDay = "9999-12-31"

type rowScanner interface {
	Scan(dest ...any) error
}

// errMalformedDay marks a stored row whose JSON columns do not decode.
var errMalformedDay = errors.New("malformed day record")

func scanDayRecord(row rowScanner) (models.DayRecord, error) {
	var date string
	var routine, planned, reflection []byte
	if err := row.Scan(&date, &routine, &planned, &reflection); err != nil {
		return models.DayRecord{}, err
	}

	rec := models.NewDayRecord(date)
	if err := json.Unmarshal(routine, &rec.Routine); err != nil {
		return models.DayRecord{}, fmt.Errorf("day %s: %w: routine: %w", date, errMalformedDay, err)
	}
	if err := json.Unmarshal(planned, &rec.Planned); err != nil {
		return models.DayRecord{}, fmt.Errorf("day %s: %w: planned: %w", date, errMalformedDay, err)
	}
	if err := json.Unmarshal(reflection, &rec.Reflection); err != nil {
		return models.DayRecord{}, fmt.Errorf("day %s: %w: reflection: %w", date, errMalformedDay, err)
	}
	rec.Normalize()
	return rec, nil
}

func (s *Store) GetDayRecord(day string) (models.DayRecord, error) {
	if s.db == nil {
		return models.DayRecord{}, storage.ErrNotLoaded
	}
	row := s.db.QueryRow(s.rebind("SELECT date, routine, planned, reflection FROM day_records WHERE date = ?"), day)
	rec, err := scanDayRecord(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.DayRecord{}, fmt.Errorf("day %s: %w", day, storage.ErrNotFound)
	case errors.Is(err, errMalformedDay):
		logger.Warn("Treating malformed day record as missing", "error", err)
		return models.DayRecord{}, fmt.Errorf("day %s: %w", day, storage.ErrNotFound)
	}
	return rec, err
}

func (s *Store) SaveDayRecord(rec models.DayRecord) error {
	if rec.Date == "" {
		return fmt.Errorf("day record has no date")
	}
	return s.withTx(func(tx *sql.Tx) error {
		now := s.now()
		if err := s.saveDayRecord(tx, rec); err != nil {
			return err
		}
		return s.touch(tx, now)
	})
}

func (s *Store) saveDayRecord(e execer, rec models.DayRecord) error {
	rec.Normalize()
	routine, err := json.Marshal(rec.Routine)
	if err != nil {
		return err
	}
	planned, err := json.Marshal(rec.Planned)
	if err != nil {
		return err
	}
	reflection, err := json.Marshal(rec.Reflection)
	if err != nil {
		return err
	}

	err = s.exec(e, `INSERT INTO day_records (date, routine, planned, reflection, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			routine = excluded.routine,
			planned = excluded.planned,
			reflection = excluded.reflection,
			updated_at = excluded.updated_at`,
		rec.Date, string(routine), string(planned), string(reflection), s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save day %s: %w", rec.Date, err)
	}
	return nil
}

func (s *Store) GetDayRecords(startDay, endDay string) ([]models.DayRecord, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}
	if endDay == "" {
		endDay = lastDay
	}

	rows, err := s.db.Query(s.rebind(`SELECT date, routine, planned, reflection FROM day_records
		WHERE date >= ? AND date <= ? ORDER BY date`), startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query day records: %w", err)
	}
	defer rows.Close()

	var out []models.DayRecord
	for rows.Next() {
		rec, err := scanDayRecord(rows)
		if errors.Is(err, errMalformedDay) {
			logger.Warn("Skipping malformed day record", "error", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
