package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/layout"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/scheduler"
	"github.com/julianstephens/goaltrack/internal/timespec"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// Validate is the shared struct-tag validator.
var Validate *validator.Validate

func init() {
	Validate = validator.New()
	if err := Validate.RegisterValidation("category_type", validateCategoryType); err != nil {
		panic(fmt.Sprintf("failed to register category_type validator: %v", err))
	}
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return models.CategoryType(fl.Field().String()).Valid()
}

// Conflict is one problem found in stored data. Warnings describe data the
// app tolerates but the user probably did not intend.
type Conflict struct {
	Type        constants.ConflictType
	Description string
	Date        string   // YYYY-MM-DD when the conflict is tied to a day
	Items       []string // names involved
	IDs         []string // ids involved
	Warning     bool
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors reports whether any conflict is more than a warning.
func (vr *ValidationResult) HasErrors() bool {
	return slices.ContainsFunc(vr.Conflicts, func(c Conflict) bool { return !c.Warning })
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

func (vr *ValidationResult) merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		if c.Warning {
			fmt.Fprintf(&b, "- [warn] %s\n", c.Description)
		} else {
			fmt.Fprintf(&b, "- %s\n", c.Description)
		}
	}
	return b.String()
}

// Validator checks the catalog, settings and day records for problems.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateAppData runs every check over a whole document.
func (v *Validator) ValidateAppData(data models.AppData) ValidationResult {
	result := v.ValidateCatalog(data.Catalog())
	if data.Settings != nil {
		result.merge(v.ValidateSettings(*data.Settings))
	}
	keys := make([]string, 0, len(data.Days))
	for key := range data.Days {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		result.merge(v.ValidateDayRecord(key, data.Days[key]))
	}
	return result
}

// ValidateCatalog reports problems in the catalog. The core tolerates all
// of them; nothing here is repaired.
func (v *Validator) ValidateCatalog(catalog models.Catalog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	v.checkTags(&result, catalog)
	checkDuplicates(&result, catalog)

	for _, h := range catalog.AllHabits() {
		checkRecurrence(&result, h.Name, h.ID, h.Recurrence)
		checkTimeLabel(&result, h.Name, h.ID, h.Time)
		checkNumeric(&result, h.Habit)
	}
	for _, a := range catalog.AllActivities() {
		checkRecurrence(&result, a.Name, a.ID, a.Recurrence)
		checkTimeLabel(&result, a.Name, a.ID, a.Time)
	}
	for _, c := range catalog.RoutineCategories {
		checkTimeLabel(&result, c.Name, c.ID, c.Time)
	}
	checkOverlaps(&result, catalog)

	return result
}

func (v *Validator) checkTags(result *ValidationResult, catalog models.Catalog) {
	err := Validate.Struct(catalog)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.add(Conflict{Type: constants.ConflictInvalidField, Description: err.Error()})
		return
	}
	for _, fe := range fieldErrs {
		typ := constants.ConflictInvalidField
		if fe.Tag() == "datetime" {
			typ = constants.ConflictInvalidDate
		}
		result.add(Conflict{
			Type:        typ,
			Description: fmt.Sprintf("%s: %s", strings.TrimPrefix(fe.Namespace(), "Catalog."), describeTag(fe)),
		})
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("%q is not one of: %s", fe.Value(), fe.Param())
	case "category_type":
		return fmt.Sprintf("%q is not a category type", fe.Value())
	case "datetime":
		return fmt.Sprintf("%q is not a YYYY-MM-DD date", fe.Value())
	}
	return fmt.Sprintf("failed %s check", fe.Tag())
}

func checkDuplicates(result *ValidationResult, catalog models.Catalog) {
	report := func(kind string, ids map[string][]string) {
		keys := make([]string, 0, len(ids))
		for id := range ids {
			keys = append(keys, id)
		}
		slices.Sort(keys)
		for _, id := range keys {
			names := ids[id]
			if len(names) < 2 {
				continue
			}
			result.add(Conflict{
				Type:        constants.ConflictDuplicateID,
				Description: fmt.Sprintf("Duplicate %s id %q shared by %s", kind, id, strings.Join(quoteAll(names), ", ")),
				Items:       names,
				IDs:         []string{id},
			})
		}
	}

	categories := map[string][]string{}
	habits := map[string][]string{}
	activities := map[string][]string{}
	for _, c := range catalog.RoutineCategories {
		categories[c.ID] = append(categories[c.ID], c.Name)
		for _, h := range c.Habits {
			habits[h.ID] = append(habits[h.ID], h.Name)
		}
	}
	for _, c := range catalog.PlannedCategories {
		categories[c.ID] = append(categories[c.ID], c.Name)
		for _, a := range c.Activities {
			activities[a.ID] = append(activities[a.ID], a.Name)
		}
	}
	report("category", categories)
	report("habit", habits)
	report("activity", activities)
}

func checkRecurrence(result *ValidationResult, name, id string, rec models.Recurrence) {
	switch rec.Type {
	case constants.RecurrenceWeekly:
		if rec.Weekday == nil {
			result.add(Conflict{
				Type:        constants.ConflictMissingWeekday,
				Description: fmt.Sprintf("%q repeats weekly but has no weekday; it will never be due", name),
				Items:       []string{name},
				IDs:         []string{id},
			})
		} else if *rec.Weekday < 0 || *rec.Weekday > 6 {
			result.add(Conflict{
				Type:        constants.ConflictInvalidWeekday,
				Description: fmt.Sprintf("%q has weekday %d outside 0-6", name, *rec.Weekday),
				Items:       []string{name},
				IDs:         []string{id},
			})
		}
	case constants.RecurrenceCustom:
		if len(rec.Days) == 0 {
			result.add(Conflict{
				Type:        constants.ConflictEmptyCustomDays,
				Description: fmt.Sprintf("%q repeats on custom days but lists none; it will never be due", name),
				Items:       []string{name},
				IDs:         []string{id},
			})
		}
		for _, d := range rec.Days {
			if d < 0 || d > 6 {
				result.add(Conflict{
					Type:        constants.ConflictInvalidWeekday,
					Description: fmt.Sprintf("%q lists weekday %d outside 0-6", name, d),
					Items:       []string{name},
					IDs:         []string{id},
				})
			}
		}
	}
}

// checkTimeLabel warns about non-empty labels that resolve to no slot; such
// items still show, in the all-day row.
func checkTimeLabel(result *ValidationResult, name, id, label string) {
	if strings.TrimSpace(label) == "" {
		return
	}
	if _, ok := timespec.ParseStartSlot(label); ok {
		return
	}
	lower := strings.ToLower(label)
	if strings.Contains(lower, "all day") || strings.Contains(lower, "throughout") {
		return
	}
	result.add(Conflict{
		Type:        constants.ConflictUnparseableTime,
		Description: fmt.Sprintf("%q has time %q that matches no clock time; shown as all-day", name, label),
		Items:       []string{name},
		IDs:         []string{id},
		Warning:     true,
	})
}

func checkNumeric(result *ValidationResult, h models.Habit) {
	if !h.IsNumeric() {
		return
	}
	lo, hi := h.Bounds()
	target := h.TargetValue()
	var problem string
	switch {
	case lo > hi:
		problem = fmt.Sprintf("min %g is above max %g", lo, hi)
	case target < lo:
		problem = fmt.Sprintf("target %g is below min %g", target, lo)
	case target > hi:
		problem = fmt.Sprintf("target %g is above max %g and can never be reached", target, hi)
	case target <= 0:
		problem = fmt.Sprintf("target %g is not positive", target)
	default:
		return
	}
	result.add(Conflict{
		Type:        constants.ConflictInvalidTarget,
		Description: fmt.Sprintf("Habit %q: %s", h.Name, problem),
		Items:       []string{h.Name},
		IDs:         []string{h.ID},
	})
}

// checkOverlaps warns about anchored recurring items that share time on
// the same weekday. The calendar still lays them out side by side.
func checkOverlaps(result *ValidationResult, catalog models.Catalog) {
	// Any week works; the weekly grid only depends on weekdays.
	start := time.Date(2024, 1, 7, 0, 0, 0, 0, time.Local) // a Sunday
	week := scheduler.New().Week(catalog, start, scheduler.Options{})

	type pair struct{ a, b string }
	days := map[pair][]time.Weekday{}
	names := map[pair][2]string{}
	var order []pair

	for _, day := range week.Days {
		events := day.Events
		for i := range events {
			for j := i + 1; j < len(events); j++ {
				a := layout.Interval{Start: events[i].StartSlot, Length: events[i].DurationSlots}
				b := layout.Interval{Start: events[j].StartSlot, Length: events[j].DurationSlots}
				if !layout.Overlaps(a, b) {
					continue
				}
				p := pair{events[i].ID, events[j].ID}
				if p.b < p.a {
					p = pair{p.b, p.a}
				}
				if _, seen := days[p]; !seen {
					order = append(order, p)
					names[p] = [2]string{events[i].Name, events[j].Name}
				}
				days[p] = append(days[p], day.Date.Weekday())
			}
		}
	}

	for _, p := range order {
		n := names[p]
		labels := make([]string, len(days[p]))
		for i, d := range days[p] {
			labels[i] = utils.WeekdayShort(d)
		}
		result.add(Conflict{
			Type:        constants.ConflictOverlappingAnchors,
			Description: fmt.Sprintf("%q and %q overlap on %s", n[0], n[1], strings.Join(labels, ", ")),
			Items:       []string{n[0], n[1]},
			IDs:         []string{p.a, p.b},
			Warning:     true,
		})
	}
}

// ValidateSettings checks settings that would otherwise be silently defaulted.
func (v *Validator) ValidateSettings(s models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if _, err := scheduler.OptionsFromSettings(s); err != nil {
		result.add(Conflict{Type: constants.ConflictInvalidField, Description: "Work block: " + err.Error()})
	}
	for _, d := range s.WorkDays {
		if d < 0 || d > 6 {
			result.add(Conflict{
				Type:        constants.ConflictInvalidWeekday,
				Description: fmt.Sprintf("Work days list weekday %d outside 0-6", d),
			})
		}
	}
	if s.StreakThreshold <= 0 || s.StreakThreshold > 1 {
		result.add(Conflict{
			Type:        constants.ConflictInvalidField,
			Description: fmt.Sprintf("Streak threshold %g is outside (0, 1]", s.StreakThreshold),
		})
	}
	return result
}

// ValidateDayRecord checks that a record's key is a real date and agrees
// with the record's own date.
func (v *Validator) ValidateDayRecord(key string, rec models.DayRecord) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if _, err := utils.ParseDateKey(key); err != nil {
		result.add(Conflict{
			Type:        constants.ConflictInvalidDate,
			Description: fmt.Sprintf("Day record key %q is not a YYYY-MM-DD date", key),
			Date:        key,
		})
		return result
	}
	if rec.Date != "" && rec.Date != key {
		result.add(Conflict{
			Type:        constants.ConflictInvalidDate,
			Description: fmt.Sprintf("Day record stored under %s claims date %s", key, rec.Date),
			Date:        key,
			Warning:     true,
		})
	}
	return result
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
