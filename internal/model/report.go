package model

import "sort"

// RunReport collects the results of minifying one source tree.
type RunReport struct {
	Source      Path
	Output      Path
	Scheme      Scheme
	FolderCount int
	FileCount   int
	Units       []*Unit
}

// Minified returns the units whose output was written, sorted by output path.
func (r RunReport) Minified() []*Unit {
	units := make([]*Unit, 0, len(r.Units))
	for _, unit := range r.Units {
		if unit.Minified() {
			units = append(units, unit)
		}
	}

	sort.Slice(units, func(i, j int) bool {
		return units[i].Output < units[j].Output
	})

	return units
}

// Count returns how many units ended in the given status.
func (r RunReport) Count(status Status) int {
	count := 0

	for _, unit := range r.Units {
		if unit.Outcome.Status == status {
			count++
		}
	}

	return count
}

// Totals sums original and compressed sizes over minified units.
func (r RunReport) Totals() (original, compressed int64) {
	for _, unit := range r.Units {
		if !unit.Minified() {
			continue
		}

		original += unit.OriginalSize
		compressed += unit.CompressedSize
	}

	return original, compressed
}
