package sqldb

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage"
)

type categoryKey struct {
	kind     string
	position int
}

func (s *Store) GetCatalog() (models.Catalog, error) {
	if s.db == nil {
		return models.Catalog{}, storage.ErrNotLoaded
	}

	catalog := models.Catalog{
		RoutineCategories: []models.RoutineCategory{},
		PlannedCategories: []models.PlannedCategory{},
	}
	index := make(map[categoryKey]int)

	rows, err := s.db.Query("SELECT kind, position, id, name, type, time FROM categories ORDER BY kind, position")
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to query categories: %w", err)
	}
	for rows.Next() {
		var kind, id, name, typ, tm string
		var pos int
		if err := rows.Scan(&kind, &pos, &id, &name, &typ, &tm); err != nil {
			rows.Close()
			return models.Catalog{}, err
		}
		switch kind {
		case kindRoutine:
			index[categoryKey{kind, pos}] = len(catalog.RoutineCategories)
			catalog.RoutineCategories = append(catalog.RoutineCategories, models.RoutineCategory{
				ID: id, Name: name, Type: models.CategoryType(typ), Time: tm, Habits: []models.Habit{},
			})
		case kindPlanned:
			index[categoryKey{kind, pos}] = len(catalog.PlannedCategories)
			catalog.PlannedCategories = append(catalog.PlannedCategories, models.PlannedCategory{
				ID: id, Name: name, Type: models.CategoryType(typ), Activities: []models.Activity{},
			})
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return models.Catalog{}, err
	}

	rows, err = s.db.Query("SELECT kind, category_position, payload FROM items ORDER BY kind, category_position, position")
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var catPos int
		var payload []byte
		if err := rows.Scan(&kind, &catPos, &payload); err != nil {
			return models.Catalog{}, err
		}
		i, ok := index[categoryKey{kind, catPos}]
		if !ok {
			continue
		}
		switch kind {
		case kindRoutine:
			var h models.Habit
			if err := json.Unmarshal(payload, &h); err != nil {
				return models.Catalog{}, fmt.Errorf("failed to decode habit: %w", err)
			}
			catalog.RoutineCategories[i].Habits = append(catalog.RoutineCategories[i].Habits, h)
		case kindPlanned:
			var a models.Activity
			if err := json.Unmarshal(payload, &a); err != nil {
				return models.Catalog{}, fmt.Errorf("failed to decode activity: %w", err)
			}
			catalog.PlannedCategories[i].Activities = append(catalog.PlannedCategories[i].Activities, a)
		}
	}
	return catalog, rows.Err()
}

// SaveCatalog replaces the stored catalog wholesale; positions carry the
// user's display order.
func (s *Store) SaveCatalog(catalog models.Catalog) error {
	return s.withTx(func(tx *sql.Tx) error {
		if err := s.saveCatalog(tx, catalog); err != nil {
			return err
		}
		return s.touch(tx, s.now())
	})
}

func (s *Store) saveCatalog(e execer, catalog models.Catalog) error {
	if err := s.exec(e, "DELETE FROM items"); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if err := s.exec(e, "DELETE FROM categories"); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	for ci, c := range catalog.RoutineCategories {
		if err := s.insertCategory(e, kindRoutine, ci, c.ID, c.Name, string(c.Type), c.Time); err != nil {
			return err
		}
		for hi, h := range c.Habits {
			if err := s.insertItem(e, kindRoutine, ci, hi, h.ID, h); err != nil {
				return err
			}
		}
	}
	for ci, c := range catalog.PlannedCategories {
		if err := s.insertCategory(e, kindPlanned, ci, c.ID, c.Name, string(c.Type), ""); err != nil {
			return err
		}
		for ai, a := range c.Activities {
			if err := s.insertItem(e, kindPlanned, ci, ai, a.ID, a); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) insertCategory(e execer, kind string, pos int, id, name, typ, tm string) error {
	err := s.exec(e, "INSERT INTO categories (kind, position, id, name, type, time) VALUES (?, ?, ?, ?, ?, ?)",
		kind, pos, id, name, typ, tm)
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", id, err)
	}
	return nil
}

func (s *Store) insertItem(e execer, kind string, catPos, pos int, id string, item any) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", id, err)
	}
	err = s.exec(e, "INSERT INTO items (kind, category_position, position, id, payload) VALUES (?, ?, ?, ?, ?)",
		kind, catPos, pos, id, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save item %s: %w", id, err)
	}
	return nil
}
