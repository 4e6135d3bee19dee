package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scancmdr/internal/testutil"
)

const spotJob = `
name: scenario
kind: spot
timing:
  baseline: 400
  pulse_width: 200
  isi: 400
  period: 2000
frame:
  scale: 100
  center: {x: 716, y: 206}
position: {x: 450, y: 400}
`

const spotProtocol = "C\n" +
	"AV,0,4,26600\n" +
	"AV,0,3,-19400\n" +
	"AS,0,9,1\n" +
	"AV,40000,7,4\n" +
	"AV,60000,7,0\n" +
	"AE,200050,9,1\n"

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// decodeData unmarshals the data payload of a JSON CLIResponse into v.
func decodeData(t *testing.T, out string, v any) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(t, "ok", resp.Status, out)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

// decodeError returns the error payload of a JSON CLIResponse.
func decodeError(t *testing.T, out string) CLIError {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(t, "error", resp.Status, out)
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func TestCompileToStdout(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "spot.yaml", spotJob)

	stdout, stderr, err := execute(t, "compile", path)
	require.NoError(t, err)
	assert.Equal(t, spotProtocol, stdout)
	assert.Contains(t, stderr, `✓ Compiled spot job "scenario": 6 command(s), scale 100`)
}

func TestCompileJSONIncludesProtocol(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "spot.yaml", spotJob)

	stdout, _, err := execute(t, "--format", "json", "compile", path)
	require.NoError(t, err)

	var summary CompileSummary
	decodeData(t, stdout, &summary)
	assert.Equal(t, "scenario", summary.Name)
	assert.Equal(t, "spot", summary.Kind)
	assert.Equal(t, 6, summary.Commands)
	assert.Equal(t, spotProtocol, summary.Protocol)
	assert.Empty(t, summary.ID)
}

func TestCompileToFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "spot.yaml", spotJob)
	out := filepath.Join(dir, "spot.txt")

	stdout, _, err := execute(t, "compile", path, "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote protocol to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, spotProtocol, string(data))
}

func TestCompileFailures(t *testing.T) {
	tests := []struct {
		name     string
		job      string
		args     []string
		wantExit int
		wantCode string
	}{
		{
			name:     "missing scale and calibration",
			job:      "name: x\nkind: spot\ntiming: {pulse_width: 1}\nframe: {center: {x: 0, y: 0}}\nposition: {x: 1, y: 1}\n",
			wantExit: ExitFailure,
			wantCode: "E407",
		},
		{
			name:     "target without points",
			job:      "name: x\nkind: target\ntiming: {pulse_width: 1}\nframe: {scale: 1, center: {x: 0, y: 0}}\n",
			wantExit: ExitFailure,
			wantCode: "E405",
		},
		{
			name:     "schema violation",
			job:      "name: x\nkind: hexagon\ntiming: {pulse_width: 1}\nframe: {scale: 1, center: {x: 0, y: 0}}\n",
			wantExit: ExitCommandError,
			wantCode: "E012",
		},
		{
			name:     "missing targets file",
			job:      "name: x\nkind: target\ntargets: nowhere.txt\ntiming: {pulse_width: 1}\nframe: {scale: 1, center: {x: 0, y: 0}}\n",
			wantExit: ExitCommandError,
			wantCode: "SOURCE_OPEN",
		},
		{
			name:     "command limit",
			job:      spotJob,
			args:     []string{"--max-commands", "3"},
			wantExit: ExitFailure,
			wantCode: ErrCodeCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), "job.yaml", tt.job)

			args := append([]string{"--format", "json", "compile", path}, tt.args...)
			stdout, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			assert.Equal(t, tt.wantCode, decodeError(t, stdout).Code)
		})
	}
}

func TestCompileMissingJobFile(t *testing.T) {
	stdout, _, err := execute(t, "compile", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E010]")
}

func TestCompileInvalidJobText(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "job.yaml",
		"name: x\nkind: spot\ntiming: {pulse_width: 1}\nframe: {center: {x: 0, y: 0}}\nposition: {x: 1, y: 1}\n")

	stdout, _, err := execute(t, "compile", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ Job invalid")
	assert.Contains(t, stdout, "E407 frame: either scale or calibration is required")
}

func TestLibraryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "spot.yaml", spotJob)
	db := filepath.Join(dir, "library.db")

	stdout, _, err := execute(t, "--format", "json", "compile", path, "--db", db, "-o", filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	var first CompileSummary
	decodeData(t, stdout, &first)
	assert.True(t, first.Created)
	assert.NotEmpty(t, first.ID)
	assert.Len(t, first.Hash, 64)
	assert.Empty(t, first.Protocol)

	// Same job again resolves to the stored record.
	_, stderr, err := execute(t, "compile", path, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Already stored as "+first.ID)

	stdout, _, err = execute(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, first.ID)
	assert.Contains(t, stdout, first.Hash[:12])
	assert.Contains(t, stdout, "scenario")

	stdout, _, err = execute(t, "show", first.Hash[:8], "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, first.ID)
	assert.Contains(t, stdout, spotProtocol)

	stdout, _, err = execute(t, "--format", "json", "show", first.ID, "--db", db)
	require.NoError(t, err)
	var rec struct {
		Name     string          `json:"name"`
		Body     string          `json:"body"`
		Commands int             `json:"commands"`
		MaxDepth int             `json:"max_depth"`
		Params   json.RawMessage `json:"params"`
	}
	decodeData(t, stdout, &rec)
	assert.Equal(t, "scenario", rec.Name)
	assert.Equal(t, spotProtocol, rec.Body)
	assert.Equal(t, 6, rec.Commands)
	assert.Equal(t, 1, rec.MaxDepth)
	assert.Contains(t, string(rec.Params), `"kind":"spot"`)

	stdout, _, err = execute(t, "delete", first.ID, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Deleted "+first.ID)

	stdout, _, err = execute(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No protocols stored")
}

func TestShowUnknownReference(t *testing.T) {
	db := filepath.Join(t.TempDir(), "library.db")

	stdout, _, err := execute(t, "--format", "json", "show", "deadbeefdeadbeef", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeNotFound, decodeError(t, stdout).Code)
}

func TestListJSONEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "library.db")

	stdout, _, err := execute(t, "--format", "json", "list", "--db", db)
	require.NoError(t, err)
	var recs []map[string]any
	decodeData(t, stdout, &recs)
	assert.Empty(t, recs)
}

func TestScale(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "cal.coord", "0\t0\t0\t0\n1000\t2000\t10\t20\n")

	stdout, _, err := execute(t, "scale", path)
	require.NoError(t, err)
	assert.Equal(t, "Scale: 100 device units per pixel (2 calibration point(s))\n", stdout)

	stdout, _, err = execute(t, "--format", "json", "scale", path, "-n", "2")
	require.NoError(t, err)
	var res ScaleResult
	decodeData(t, stdout, &res)
	assert.Equal(t, ScaleResult{Scale: 100, Points: 2}, res)
}

func TestScaleFailures(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteFile(t, dir, "cal.coord", "0 0 0 0\n1000 2000 10 20\n")
	same := testutil.WriteFile(t, dir, "same.coord", "5 5 5 5\n5 5 5 5\n")

	tests := []struct {
		name     string
		args     []string
		wantExit int
		wantCode string
	}{
		{"short file", []string{good, "-n", "3"}, ExitCommandError, "SOURCE_SHORT"},
		{"missing file", []string{filepath.Join(dir, "absent")}, ExitCommandError, "SOURCE_OPEN"},
		{"degenerate", []string{same}, ExitFailure, ErrCodeCalibration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, append([]string{"--format", "json", "scale"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			assert.Equal(t, tt.wantCode, decodeError(t, stdout).Code)
		})
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "spot.txt", spotProtocol)

	stdout, _, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Equal(t, "✓ "+path+": 6 command(s), loop depth 1\n", stdout)

	stdout, _, err = execute(t, "--format", "json", "check", path)
	require.NoError(t, err)
	var res CheckResult
	decodeData(t, stdout, &res)
	assert.True(t, res.Valid)
	assert.Equal(t, 6, res.Commands)
	assert.Equal(t, 1, res.MaxDepth)
}

func TestCheckFailures(t *testing.T) {
	dir := t.TempDir()
	unclosed := testutil.WriteFile(t, dir, "unclosed.txt", "C\nAS,0,9,2\nAV,10,7,4\n")
	garbage := testutil.WriteFile(t, dir, "garbage.txt", "C\nAV,zero,7,4\n")

	stdout, _, err := execute(t, "check", unclosed)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "E203")

	stdout, _, err = execute(t, "--format", "json", "check", garbage)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, ErrCodeParse, decodeError(t, stdout).Code)

	stdout, _, err = execute(t, "check", filepath.Join(dir, "absent.txt"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E002]")
}

func TestInitToStdout(t *testing.T) {
	stdout, _, err := execute(t, "init", "grid")
	require.NoError(t, err)
	assert.Contains(t, stdout, "kind: grid")
	assert.Contains(t, stdout, "pulse_width: 200")
}

func TestInitThenCompile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spot.yaml")

	stdout, _, err := execute(t, "init", "spot", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Wrote spot job template to "+path)

	stdout, _, err = execute(t, "compile", path)
	require.NoError(t, err)
	assert.Equal(t, spotProtocol, stdout)

	_, _, err = execute(t, "init", "spot", "-o", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "init", "target", "-o", path, "--force")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: target")
}

func TestInitUnknownKind(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "init", "hexagon")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "E401", decodeError(t, stdout).Code)
}
