package calib

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnknownStrategy = errors.New("calib: unknown selection strategy")

// Strategy chooses how Select matches the live density against the table.
type Strategy int

const (
	// Tolerance looks for an entry whose density is close to an integer
	// multiple of the live rate, scaling the target until one is found.
	Tolerance Strategy = iota
	// Nearest picks the entry with the smallest absolute density difference.
	Nearest
)

// tolerance is the allowed fractional excess per whole multiple.
const tolerance = 0.1

func (s Strategy) String() string {
	switch s {
	case Tolerance:
		return "tolerance"
	case Nearest:
		return "nearest"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "tolerance":
		return Tolerance, nil
	case "nearest":
		return Nearest, nil
	}
	return Tolerance, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Selection is the outcome of a table search.
type Selection struct {
	Dt          float64
	PointsBurst float64
	// PointsLive is the number of ticks spanning one burst.
	PointsLive float64
	// Index is the chosen entry, or -1 when nothing matched.
	Index int
	Matched bool
	// WithinTolerance is false when the entry came from the fallback scan.
	WithinTolerance bool
}

// Ratio is the number of table points per live tick.
func (s Selection) Ratio() float64 {
	if !s.Matched {
		return 0
	}
	return s.PointsBurst / s.PointsLive
}

// PointsLive is burst duration times tick frequency.
func PointsLive(burst, period float64) float64 {
	frequency := 1 / period
	return burst * frequency
}

// Select searches the table for the step size that sustains the requested
// burst duration at the given tick period. Callers check Matched; an
// unmatched selection carries no step size.
func (t *Table) Select(burst, period float64, strategy Strategy) Selection {
	ptsLive := PointsLive(burst, period)
	none := Selection{PointsLive: ptsLive, Index: -1}
	if !positive(ptsLive) {
		return none
	}

	var idx int
	var ok, within bool
	switch strategy {
	case Nearest:
		idx, ok = t.nearest(ptsLive)
	default:
		idx, ok, within = t.tolerant(ptsLive)
	}
	if !ok {
		return none
	}

	e := t.entries[idx]
	return Selection{
		Dt:              e.Dt,
		PointsBurst:     e.Points,
		PointsLive:      ptsLive,
		Index:           idx,
		Matched:         true,
		WithinTolerance: within,
	}
}

// tolerant scales ptsLive by successive integers until a denser entry sits
// within tolerance of a whole multiple, or the scaled density passes the
// densest entry. Without a clean multiple the entry found for the final
// scaled density is used, or the last one found before it.
func (t *Table) tolerant(ptsLive float64) (idx int, ok, within bool) {
	aux := ptsLive
	factor := 1.0
	maxPoints := t.MaxPoints()
	last := -1

	for aux < maxPoints {
		aux = ptsLive * factor
		factor++

		i := t.firstAbove(aux)
		if i < 0 {
			continue
		}
		last = i
		ratio := t.entries[i].Points / ptsLive
		if math.IsInf(ratio, 0) {
			break
		}
		whole := math.Floor(ratio)
		if ratio-whole <= tolerance*whole {
			return i, true, true
		}
	}

	if i := t.firstAbove(aux); i >= 0 {
		last = i
	}
	if last < 0 {
		return -1, false, false
	}
	return last, true, false
}

// firstAbove scans from the largest step down and returns the first entry
// denser than target, or -1.
func (t *Table) firstAbove(target float64) int {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Points > target {
			return i
		}
	}
	return -1
}

func (t *Table) nearest(ptsLive float64) (int, bool) {
	best := -1
	bestDiff := math.Inf(1)
	for i := len(t.entries) - 1; i >= 0; i-- {
		d := math.Abs(t.entries[i].Points - ptsLive)
		if d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best, best >= 0
}
