package compiler

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/scancmdr/internal/geometry"
	"github.com/roach88/scancmdr/internal/protocol"
)

// Frame describes how pixel coordinates map onto the device.
type Frame struct {
	Scale    int64          `json:"scale" yaml:"scale"`       // device units per pixel
	Center   geometry.Pixel `json:"center" yaml:"center"`     // pixel at device origin
	Rotation float64        `json:"rotation" yaml:"rotation"` // radians, counter-clockwise
}

// Lattice describes a rectangular grid in pixel space. Columns advance +X
// and rows advance -Y from Start.
type Lattice struct {
	Dims    geometry.Pixel `json:"dims" yaml:"dims,omitempty"` // unused by patterns
	Start   geometry.Pixel `json:"start" yaml:"start"`
	Spacing geometry.Pixel `json:"spacing" yaml:"spacing"`
}

// BuildError reports a protocol that could not be compiled.
type BuildError struct {
	Kind string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: %v", e.Kind, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Compiler builds protocols. The zero value is not usable; call New.
type Compiler struct {
	logger      *slog.Logger
	maxCommands int
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used for coercion and build messages.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = l
	}
}

// WithMaxCommands caps the number of commands in one protocol.
//
// Default: protocol.DefaultMaxCommands. Zero or less removes the cap.
func WithMaxCommands(n int) Option {
	return func(c *Compiler) {
		c.maxCommands = n
	}
}

// New returns a Compiler. Logs are discarded unless WithLogger is given.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxCommands: protocol.DefaultMaxCommands,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// prepare coerces t and converts it to cycles.
func (c *Compiler) prepare(kind string, t Timing, slots uint32) schedule {
	ct, changed := Coerce(t, slots)
	if changed {
		c.logger.Debug("timing coerced",
			"kind", kind,
			"isi", ct.ISI,
			"period", ct.Period,
			"requested_isi", t.ISI,
			"requested_period", t.Period,
		)
	}
	return toCycles(ct)
}

func (c *Compiler) newList() *protocol.List {
	return protocol.New(c.maxCommands)
}

// finish renders l and releases it. A list that overflowed yields no text.
func (c *Compiler) finish(kind string, l *protocol.List) (string, error) {
	defer l.Release()

	text, err := l.Serialize()
	if err != nil {
		c.logger.Error("protocol build failed", "kind", kind, "error", err)
		return "", &BuildError{Kind: kind, Err: err}
	}
	c.logger.Info("protocol compiled",
		"kind", kind,
		"commands", l.Len(),
		"bytes", len(text),
	)
	return text, nil
}

// toDevice converts points with the frame's scale and center. When the frame
// is rotated the points are first rotated about their centroid.
func (f Frame) toDevice(points []geometry.Pixel) []geometry.Device {
	if f.Rotation != 0 && len(points) > 0 {
		points = geometry.RotateAll(points, geometry.Centroid(points), f.Rotation)
	}
	out := make([]geometry.Device, len(points))
	for i, p := range points {
		out[i] = geometry.ToDevice(p, f.Scale, f.Center, 0)
	}
	return out
}
