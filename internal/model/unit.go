package model

import (
	"fmt"
	"path/filepath"
)

// Status is the terminal state of one file's processing.
type Status int

const (
	// StatusPending means the unit has not been persisted yet.
	StatusPending Status = iota
	// StatusMinified means the output was written.
	StatusMinified
	// StatusSkipped means the file was deliberately left alone.
	StatusSkipped
	// StatusFailed means an I/O error stopped the file.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusMinified:
		return "minified"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome explains how a unit ended.
type Outcome struct {
	Status Status
	Reason string
	Err    error
	// Unrenamed lists identifiers that were eligible for renaming but got no
	// synthetic name because the naming budget ran out.
	Unrenamed []string
}

// Unit is one file's working state.
type Unit struct {
	Input  Path
	Output Path

	RawLines  []string
	Lines     []string
	Stream    string
	Variables []string
	Functions []string
	Result    string

	OriginalSize   int64
	CompressedSize int64

	Outcome Outcome
}

// NewUnit creates a pending unit for the given input and output paths.
func NewUnit(input, output Path) *Unit {
	return &Unit{Input: input, Output: output}
}

// Minified reports whether the unit's output was persisted.
func (u *Unit) Minified() bool {
	return u.Outcome.Status == StatusMinified
}

// Reduction returns the size reduction in percent, 0 for empty inputs.
func (u *Unit) Reduction() float64 {
	if u.OriginalSize == 0 {
		return 0
	}

	return float64(u.OriginalSize-u.CompressedSize) / float64(u.OriginalSize) * 100
}

// StatusLine formats the one-line compression report for the unit.
func (u *Unit) StatusLine() string {
	return fmt.Sprintf("Status - File : %s compressed - OSize : %.2f kb - CSize : %.2f kb PR : %.2f ",
		filepath.Base(string(u.Input)),
		Kilobytes(u.OriginalSize),
		Kilobytes(u.CompressedSize),
		u.Reduction(),
	)
}

// Kilobytes converts a byte count to decimal kilobytes.
func Kilobytes(size int64) float64 {
	return float64(size) / 1000.0
}
