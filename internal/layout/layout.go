// Package layout assigns side-by-side columns to overlapping intervals on a
// single day's slot grid.
//
// The assignment is a greedy interval colouring: intervals are visited in a
// fixed order and each takes the lowest column not used by an already placed
// interval it overlaps. The column count reported for an interval is one
// more than the highest column among the intervals it overlaps (itself
// included). With non-transitive overlaps this can exceed the number of
// intervals live at any single instant during that interval; this is
// accepted behaviour.
package layout

import (
	"cmp"
	"slices"
)

// Interval is a half-open span [Start, Start+Length) of slots.
type Interval struct {
	ID     string
	Start  int
	Length int
}

func (i Interval) End() int {
	return i.Start + i.Length
}

// Placement is an interval with its assigned column.
type Placement struct {
	Interval
	Column       int
	TotalColumns int
}

// Overlaps reports whether two half-open intervals share any slot.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End() && a.End() > b.Start
}

// Assign places every interval in a column such that no two overlapping
// intervals share one. Output order is start ascending, longer first on
// ties, then by ID; the input slice is left untouched.
func Assign(intervals []Interval) []Placement {
	sorted := slices.Clone(intervals)
	slices.SortStableFunc(sorted, func(a, b Interval) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Length, a.Length); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	placed := make([]Placement, 0, len(sorted))
	for _, iv := range sorted {
		used := make(map[int]bool)
		for _, p := range placed {
			if Overlaps(p.Interval, iv) {
				used[p.Column] = true
			}
		}
		col := 0
		for used[col] {
			col++
		}
		placed = append(placed, Placement{Interval: iv, Column: col})
	}

	for i := range placed {
		maxCol := placed[i].Column
		for j := range placed {
			if i != j && Overlaps(placed[i].Interval, placed[j].Interval) {
				maxCol = max(maxCol, placed[j].Column)
			}
		}
		placed[i].TotalColumns = maxCol + 1
	}
	return placed
}
