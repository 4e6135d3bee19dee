package job

import (
	"github.com/roach88/scancmdr/internal/compiler"
	"github.com/roach88/scancmdr/internal/geometry"
)

// Kind names a pattern compiler.
type Kind string

const (
	KindSpot        Kind = "spot"
	KindGrid        Kind = "grid"
	KindTarget      Kind = "target"
	KindRapidGrid   Kind = "rapid-grid"
	KindRapidTarget Kind = "rapid-target"
	KindPattern     Kind = "pattern"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindSpot, KindGrid, KindTarget, KindRapidGrid, KindRapidTarget, KindPattern}

// Valid reports whether k names a compiler.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Job is one protocol to compile.
type Job struct {
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Kind        Kind            `yaml:"kind" json:"kind"`
	Trigger     string          `yaml:"trigger,omitempty" json:"trigger,omitempty"`
	Timing      compiler.Timing `yaml:"timing" json:"timing"`
	Frame       Frame           `yaml:"frame" json:"frame"`

	// Position is the spot location.
	Position *geometry.Pixel `yaml:"position,omitempty" json:"position,omitempty"`

	// Lattice is the grid for grid kinds, and the index mapping for patterns.
	Lattice *compiler.Lattice `yaml:"lattice,omitempty" json:"lattice,omitempty"`

	// Targets is a target file; Points lists targets inline instead.
	Targets   string           `yaml:"targets,omitempty" json:"targets,omitempty"`
	Points    []geometry.Pixel `yaml:"points,omitempty" json:"points,omitempty"`
	NumPoints int              `yaml:"num_points,omitempty" json:"num_points,omitempty"` // limits Targets; 0 reads the whole file

	// Pattern is a pattern file.
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
}

// Frame describes the pixel to device mapping. Scale wins over Calibration
// when both are set.
type Frame struct {
	Scale             int64          `yaml:"scale,omitempty" json:"scale,omitempty"`
	Calibration       string         `yaml:"calibration,omitempty" json:"calibration,omitempty"`
	CalibrationPoints int            `yaml:"calibration_points,omitempty" json:"calibration_points,omitempty"`
	Center            geometry.Pixel `yaml:"center" json:"center"`
	Rotation          float64        `yaml:"rotation,omitempty" json:"rotation,omitempty"` // radians
}
