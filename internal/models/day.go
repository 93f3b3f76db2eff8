package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RoutineValue is a habit's mark for one day: a boolean for yes/no habits or
// an accumulated number for numeric ones. It serializes as a bare JSON
// boolean or number.
type RoutineValue struct {
	Checked  bool
	Number   float64
	IsNumber bool
}

func BoolValue(b bool) RoutineValue {
	return RoutineValue{Checked: b}
}

func NumberValue(n float64) RoutineValue {
	return RoutineValue{Number: n, IsNumber: true}
}

// Truthy reports whether the mark counts as done for a boolean habit.
func (v RoutineValue) Truthy() bool {
	if v.IsNumber {
		return v.Number != 0
	}
	return v.Checked
}

// Float returns the numeric reading; true counts as 1.
func (v RoutineValue) Float() float64 {
	if v.IsNumber {
		return v.Number
	}
	if v.Checked {
		return 1
	}
	return 0
}

func (v RoutineValue) String() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return strconv.FormatBool(v.Checked)
}

func (v RoutineValue) MarshalJSON() ([]byte, error) {
	if v.IsNumber {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Checked)
}

func (v *RoutineValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = RoutineValue{}
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("routine value must be a boolean or number: %w", err)
	}
	*v = NumberValue(n)
	return nil
}

func (v RoutineValue) MarshalYAML() (interface{}, error) {
	if v.IsNumber {
		return v.Number, nil
	}
	return v.Checked, nil
}

func (v *RoutineValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = BoolValue(b)
		return nil
	}
	var n float64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("routine value must be a boolean or number: %w", err)
	}
	*v = NumberValue(n)
	return nil
}

// Reflection is the free-text journal attached to a day.
type Reflection struct {
	WentWell  string `json:"wentWell,omitempty" yaml:"wentWell,omitempty"`
	Improve   string `json:"improve,omitempty" yaml:"improve,omitempty"`
	Gratitude string `json:"gratitude,omitempty" yaml:"gratitude,omitempty"`
}

func (r Reflection) IsEmpty() bool {
	return r.WentWell == "" && r.Improve == "" && r.Gratitude == ""
}

// DayRecord holds the completion marks for one calendar date (YYYY-MM-DD,
// local wall-clock). A record exists only once something was written for
// that date.
type DayRecord struct {
	Date       string                  `json:"date,omitempty" yaml:"date,omitempty"`
	Routine    map[string]RoutineValue `json:"routine" yaml:"routine"`
	Planned    map[string]bool         `json:"planned" yaml:"planned"`
	Reflection Reflection              `json:"reflection" yaml:"reflection,omitempty"`
}

func NewDayRecord(date string) DayRecord {
	return DayRecord{
		Date:    date,
		Routine: make(map[string]RoutineValue),
		Planned: make(map[string]bool),
	}
}

// Normalize fills nil maps, which appear in records decoded from older data.
func (d *DayRecord) Normalize() {
	if d.Routine == nil {
		d.Routine = make(map[string]RoutineValue)
	}
	if d.Planned == nil {
		d.Planned = make(map[string]bool)
	}
}

// Clone returns a copy that shares no maps with d.
func (d DayRecord) Clone() DayRecord {
	out := NewDayRecord(d.Date)
	for k, v := range d.Routine {
		out.Routine[k] = v
	}
	for k, v := range d.Planned {
		out.Planned[k] = v
	}
	out.Reflection = d.Reflection
	return out
}

// DayLookup resolves a date key to its record, if one exists.
type DayLookup interface {
	Get(day string) (DayRecord, bool)
}

// DayIndex is an in-memory DayLookup keyed by date.
type DayIndex map[string]DayRecord

func (idx DayIndex) Get(day string) (DayRecord, bool) {
	rec, ok := idx[day]
	return rec, ok
}

// NewDayIndex builds an index from a list of records.
func NewDayIndex(records []DayRecord) DayIndex {
	idx := make(DayIndex, len(records))
	for _, r := range records {
		idx[r.Date] = r
	}
	return idx
}
