package job

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/scancmdr/internal/compiler"
	"github.com/roach88/scancmdr/internal/geometry"
)

// Template returns an example job of the given kind.
func Template(kind Kind) (*Job, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}

	j := &Job{
		Name:    "example-" + string(kind),
		Kind:    kind,
		Trigger: compiler.TriggerNone.String(),
		Timing: compiler.Timing{
			Baseline:   400,
			PulseWidth: 200,
			Pulses:     1,
			ISI:        400,
			Iterations: 1,
			Period:     2000,
			Reps:       1,
		},
		Frame: Frame{
			Scale:  100,
			Center: geometry.Pixel{X: 716, Y: 206},
		},
	}

	switch kind {
	case KindSpot:
		j.Position = &geometry.Pixel{X: 450, Y: 400}
	case KindGrid, KindRapidGrid:
		j.Lattice = &compiler.Lattice{
			Dims:    geometry.Pixel{X: 5, Y: 5},
			Start:   geometry.Pixel{X: 40, Y: 320},
			Spacing: geometry.Pixel{X: 50, Y: 50},
		}
		if kind == KindRapidGrid {
			j.Timing.Baseline, j.Timing.PulseWidth, j.Timing.ISI = 10, 5, 10
		}
	case KindTarget, KindRapidTarget:
		j.Points = []geometry.Pixel{{X: 450, Y: 400}, {X: 500, Y: 380}, {X: 620, Y: 250}}
	case KindPattern:
		j.Pattern = "pattern.txt"
		j.Lattice = &compiler.Lattice{
			Start:   geometry.Pixel{X: 40, Y: 320},
			Spacing: geometry.Pixel{X: 50, Y: 50},
		}
	}
	return j, nil
}

// WriteYAML encodes j as YAML.
func WriteYAML(w io.Writer, j *Job) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(j); err != nil {
		return fmt.Errorf("encoding job: %w", err)
	}
	return enc.Close()
}
