// Package calib holds the step size calibration table and the search that
// turns a burst duration and a tick period into an integration step.
package calib

import (
	"errors"
	"fmt"
	"math"
)

// DefaultSize is the number of entries in the built-in table.
const DefaultSize = 144

var (
	ErrTableSize    = errors.New("calib: table needs at least two entries")
	ErrNotMonotonic = errors.New("calib: dt must increase and points must decrease")
	ErrInvalidEntry = errors.New("calib: entry values must be finite and positive")
)

// Entry pairs a step size with the points per burst it sustains.
type Entry struct {
	Dt     float64 `json:"dt" yaml:"dt"`
	Points float64 `json:"points" yaml:"points"`
}

// Table is an immutable calibration table ordered by increasing Dt.
type Table struct {
	entries []Entry
}

// NewTable validates entries and returns a table holding a private copy.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTableSize, len(entries))
	}

	for i, e := range entries {
		if !positive(e.Dt) || !positive(e.Points) {
			return nil, fmt.Errorf("%w: entry %d (dt=%g, points=%g)", ErrInvalidEntry, i, e.Dt, e.Points)
		}
		if i == 0 {
			continue
		}
		prev := entries[i-1]
		if e.Dt <= prev.Dt || e.Points >= prev.Points {
			return nil, fmt.Errorf("%w: entry %d", ErrNotMonotonic, i)
		}
	}

	own := make([]Entry, len(entries))
	copy(own, entries)
	return &Table{entries: own}, nil
}

// MustNewTable is like NewTable but panics on invalid data.
func MustNewTable(entries []Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultTable = MustNewTable(defaultEntries)

// Default returns the built-in table. It is shared and never mutated.
func Default() *Table {
	return defaultTable
}

func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) At(i int) Entry {
	return t.entries[i]
}

// Entries returns a copy of the table contents.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// MinPoints is the density of the largest step.
func (t *Table) MinPoints() float64 {
	return t.entries[len(t.entries)-1].Points
}

// MaxPoints is the density of the smallest step.
func (t *Table) MaxPoints() float64 {
	return t.entries[0].Points
}

// Contains reports whether dt is one of the table's literal step sizes.
func (t *Table) Contains(dt float64) bool {
	for _, e := range t.entries {
		if e.Dt == dt {
			return true
		}
	}
	return false
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
