package models

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
)

// AppData is the whole persisted document: catalog, settings and every day
// record keyed by date. Fields are only ever added, never renamed, so older
// documents keep decoding.
type AppData struct {
	Version           string               `json:"version" yaml:"version"`
	Settings          *Settings            `json:"settings,omitempty" yaml:"settings,omitempty"`
	RoutineCategories []RoutineCategory    `json:"routineCategories" yaml:"routineCategories"`
	PlannedCategories []PlannedCategory    `json:"plannedCategories" yaml:"plannedCategories"`
	Days              map[string]DayRecord `json:"days" yaml:"days"`
	LastUpdated       time.Time            `json:"lastUpdated" yaml:"lastUpdated"`
}

func NewAppData() AppData {
	return AppData{
		Version:           constants.DataVersion,
		RoutineCategories: []RoutineCategory{},
		PlannedCategories: []PlannedCategory{},
		Days:              make(map[string]DayRecord),
	}
}

func (d AppData) Catalog() Catalog {
	return Catalog{RoutineCategories: d.RoutineCategories, PlannedCategories: d.PlannedCategories}
}

func (d *AppData) SetCatalog(c Catalog) {
	d.RoutineCategories = c.RoutineCategories
	d.PlannedCategories = c.PlannedCategories
}

// Normalize fills defaults left empty by older documents and re-keys each
// day record with its map key.
func (d *AppData) Normalize() {
	if d.Version == "" {
		d.Version = constants.DataVersion
	}
	if d.RoutineCategories == nil {
		d.RoutineCategories = []RoutineCategory{}
	}
	if d.PlannedCategories == nil {
		d.PlannedCategories = []PlannedCategory{}
	}
	if d.Days == nil {
		d.Days = make(map[string]DayRecord)
	}
	for key, rec := range d.Days {
		rec.Date = key
		rec.Normalize()
		d.Days[key] = rec
	}
}

// DecodeAppData parses a JSON document one day record at a time. A record
// that fails to decode is left out and its date returned in skipped; a
// malformed day reads as a day without data.
func DecodeAppData(raw []byte) (data AppData, skipped []string, err error) {
	var doc struct {
		AppData
		Days map[string]json.RawMessage `json:"days"`
	}
	doc.AppData = NewAppData()
	if err := json.Unmarshal(raw, &doc); err != nil {
		return AppData{}, nil, err
	}

	data = doc.AppData
	data.Days = make(map[string]DayRecord, len(doc.Days))
	for key, msg := range doc.Days {
		var rec DayRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			skipped = append(skipped, key)
			continue
		}
		data.Days[key] = rec
	}
	slices.Sort(skipped)
	data.Normalize()
	return data, skipped, nil
}
