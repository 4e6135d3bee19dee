package job

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource []byte

// Load error codes (E010-E019)
const (
	ErrCodeRead        = "E010" // job file unreadable
	ErrCodeParse       = "E011" // YAML or CUE syntax error
	ErrCodeSchema      = "E012" // job violates #Job
	ErrCodeUnsupported = "E013" // unknown file extension
)

// LoadError reports a job file that could not be loaded.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads a .yaml, .yml or .cue job file, checks it against the schema,
// applies defaults and resolves relative source paths against the file's
// directory.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading job file: %v", err)}
	}

	var j *Job
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		j, err = ParseYAML(data, path)
	case ".cue":
		j, err = ParseCUE(data, path)
	default:
		return nil, &LoadError{Code: ErrCodeUnsupported, Message: fmt.Sprintf("unsupported job file %q (want .yaml, .yml or .cue)", path)}
	}
	if err != nil {
		return nil, err
	}

	j.Resolve(filepath.Dir(path))
	return j, nil
}

// ParseYAML decodes a YAML job. Unknown fields are rejected.
func ParseYAML(data []byte, filename string) (*Job, error) {
	// Strict decode first so typos are reported with YAML line numbers.
	var strict Job
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&strict); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("%s: %v", filename, err)}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("%s: %v", filename, err)}
	}

	ctx := cuecontext.New()
	v := ctx.Encode(raw)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, ErrCodeParse)
	}
	return decode(ctx, v)
}

// ParseCUE decodes a CUE job. The file's top-level struct is the job.
func ParseCUE(data []byte, filename string) (*Job, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, ErrCodeParse)
	}
	return decode(ctx, v)
}

// decode unifies v with #Job and decodes the concrete result.
func decode(ctx *cue.Context, v cue.Value) (*Job, error) {
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling job schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Job"))

	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err, ErrCodeSchema)
	}

	var j Job
	if err := unified.Decode(&j); err != nil {
		return nil, formatCUEError(err, ErrCodeSchema)
	}
	return &j, nil
}

// Resolve makes relative source paths relative to dir.
func (j *Job) Resolve(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) || dir == "" {
			return p
		}
		return filepath.Join(dir, p)
	}
	j.Targets = resolve(j.Targets)
	j.Pattern = resolve(j.Pattern)
	j.Frame.Calibration = resolve(j.Frame.Calibration)
}

// formatCUEError keeps the first error and its position.
func formatCUEError(err error, code string) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
