package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/types"
)

// testEnv is an isolated config and data directory pair.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{
		t:         t,
		configDir: filepath.Join(dir, "config"),
		dataDir:   filepath.Join(dir, "data"),
	}
}

// writeConfig writes config.yaml before the first run.
func (e *testEnv) writeConfig(name, content string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(e.t, os.WriteFile(filepath.Join(e.configDir, name), []byte(content), 0o644))
}

type result struct {
	stdout string
	stderr string
	code   int
}

func (e *testEnv) run(args ...string) result {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	all := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code := Run(all, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func (e *testEnv) mustRun(args ...string) result {
	e.t.Helper()
	r := e.run(args...)
	require.Equalf(e.t, exitSuccess, r.code, "qty %v\nstdout: %s\nstderr: %s", args, r.stdout, r.stderr)
	return r
}

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("version")
	assert.Contains(t, r.stdout, "qty v"+Version)
	assert.Contains(t, r.stdout, modulePath)
	assert.NoDirExists(t, env.configDir, "version must not touch the config dir")
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("init")
	assert.Contains(t, r.stdout, "initialized")

	assert.FileExists(t, filepath.Join(env.configDir, "config.yaml"))
	assert.FileExists(t, filepath.Join(env.dataDir, "entries.jsonl"))

	// Idempotent.
	env.mustRun("init")

	got := decode[initResult](t, env.mustRun("--json", "init").stdout)
	assert.Equal(t, env.dataDir, got.DataDir)
	assert.Equal(t, env.configDir, got.ConfigDir)
}

func TestConvert(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		want []float64
	}{
		{"miles to kilometres", []string{"1", "mi", "km"}, []float64{1.609344}},
		{"psi to kPa", []string{"14.7", "psi", "kPa"}, []float64{101.35}},
		{"celsius to fahrenheit", []string{"--", "-40", "degC", "degF"}, []float64{-40}},
		{"kelvin to celsius", []string{"273.15", "K", "degC"}, []float64{0}},
		{"compound", []string{"1", "kg/m³", "g/cm**3"}, []float64{0.001}},
		{"vector", []string{"[3, 4]", "ft", "m"}, []float64{0.9144, 1.2192}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--json", "convert"}, tt.args...)
			got := decode[convertResult](t, env.mustRun(args...).stdout)
			require.Len(t, got.Values, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got.Values[i], 0.01)
			}
		})
	}
}

func TestConvertHumanOutput(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("convert", "1", "ft", "m")
	assert.Contains(t, r.stdout, " ft = 0.3048")
	assert.Contains(t, r.stdout, " m\n")

	r = env.mustRun("convert", "--precision", "3", "1", "mi", "km")
	assert.Contains(t, r.stdout, "= 1.61")
	assert.NotContains(t, r.stdout, "1.609")
}

func TestConvertKinds(t *testing.T) {
	env := newTestEnv(t)

	got := decode[convertResult](t, env.mustRun("--json", "convert", "1", "N*m", "J").stdout)
	assert.Equal(t, []dim.Kind{dim.KindMoment, dim.KindEnergy}, got.Kinds)

	env.mustRun("convert", "--kind", "pressure", "1", "bar", "psi")

	r := env.run("convert", "--kind", "mass", "1", "bar", "psi")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "cannot convert")

	r = env.run("convert", "--kind", "speed", "1", "m/s", "kt")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown dimension kind")
}

func TestConvertErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"dimension mismatch", []string{"1", "kg", "m"}, "cannot convert from 'kg' ([mass]) to 'm' ([length])"},
		{"unknown unit", []string{"1", "blarg", "m"}, "unknown unit"},
		{"bad number", []string{"one", "m", "ft"}, "malformed quantity"},
		{"offset compound", []string{"1", "degC/s", "K/s"}, "offset unit"},
		{"missing args", []string{"1", "m"}, "accepts 3 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := env.run(append([]string{"convert"}, tt.args...)...)
			assert.Equal(t, exitUserError, r.code)
			assert.Contains(t, r.stderr, tt.msg)
		})
	}
}

func TestUnitsShow(t *testing.T) {
	env := newTestEnv(t)

	got := decode[unitJSON](t, env.mustRun("--json", "units", "show", "psi").stdout)
	assert.Equal(t, "psi", got.Name)
	assert.InDelta(t, 6894.757, got.Scale, 1e-3)
	assert.Equal(t, []dim.Kind{dim.KindPressure}, got.Kinds)

	got = decode[unitJSON](t, env.mustRun("--json", "units", "show", "degF").stdout)
	assert.InDelta(t, 459.67, got.Offset, 1e-9)
	assert.Equal(t, []dim.Kind{dim.KindTemperature}, got.Kinds)

	r := env.mustRun("units", "show", "mA*h")
	assert.Contains(t, r.stdout, "scale:")
	assert.Contains(t, r.stdout, "capacity")

	r = env.run("units", "show", "N**")
	assert.Equal(t, exitUserError, r.code)
}

func TestUnitsList(t *testing.T) {
	env := newTestEnv(t)

	got := decode[[]unitJSON](t, env.mustRun("--json", "units", "list").stdout)
	byName := make(map[string]unitJSON, len(got))
	for _, u := range got {
		byName[u.Name] = u
	}
	require.Contains(t, byName, "m")
	assert.True(t, byName["m"].Prefixable)
	assert.Contains(t, byName["m"].Aliases, "meter")
	require.Contains(t, byName, "psi")
	assert.NotContains(t, byName, "meter", "aliases are not listed separately")

	r := env.mustRun("units", "list")
	assert.Contains(t, r.stdout, "NAME")
}

func TestCustomUnits(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("units.yaml", "units:\n  - name: cli_smoot\n    definition: 1.7018 m\n")
	env.writeConfig("config.yaml", "backend: sqlite\nunits:\n  - name: cli_cubit\n    definition: 18 in\n")

	got := decode[convertResult](t, env.mustRun("--json", "convert", "1", "cli_smoot", "m").stdout)
	assert.InDelta(t, 1.7018, got.Values[0], 1e-12)

	got = decode[convertResult](t, env.mustRun("--json", "convert", "2", "cli_cubit", "in").stdout)
	assert.InDelta(t, 36, got.Values[0], 1e-9)

	// A second load in the same process skips units already registered.
	env.mustRun("convert", "1", "cli_smoot", "cli_cubit")
}

func TestBadUnitsFile(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("units.yaml", "units:\n  - name: cli_bogus\n    definition: 3 blarg\n")

	r := env.run("convert", "1", "m", "ft")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown unit")
}

func TestBadLocale(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("config.yaml", "backend: sqlite\nlocale: \"!!\"\n")

	r := env.run("convert", "1", "m", "ft")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "locale")
}

func TestLocaleFormatting(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("config.yaml", "backend: sqlite\nlocale: de\n")

	r := env.mustRun("convert", "1", "ft", "m")
	assert.Contains(t, r.stdout, "0,3048")
}

func TestSheetLifecycle(t *testing.T) {
	env := newTestEnv(t)

	set := decode[types.Entry](t, env.mustRun("--json", "sheet", "set", "mtow", "79000", "kg",
		"--kind", "mass", "--note", "max takeoff").stdout)
	assert.NotEmpty(t, set.EntryID)
	assert.Equal(t, dim.KindMass, set.Kind)
	assert.Equal(t, "max takeoff", set.Note)

	got := decode[types.Entry](t, env.mustRun("--json", "sheet", "get", "mtow", "--unit", "t").stdout)
	assert.Equal(t, "t", got.Unit)
	assert.InDelta(t, 79, got.Values[0], 1e-9)
	assert.Equal(t, set.EntryID, got.EntryID)

	r := env.mustRun("sheet", "get", "mtow")
	assert.Contains(t, r.stdout, "mtow = ")
	assert.Contains(t, r.stdout, "(mass)")
	assert.Contains(t, r.stdout, "max takeoff")

	env.mustRun("sheet", "set", "span", "35.8", "m")
	env.mustRun("sheet", "set", "wind", "[3, 4]", "kt", "--kind", "velocity")

	all := decode[[]types.Entry](t, env.mustRun("--json", "sheet", "list").stdout)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"mtow", "span", "wind"}, []string{all[0].Name, all[1].Name, all[2].Name})
	assert.Equal(t, dim.KindLength, all[1].Kind, "kind inferred from the unit")
	assert.True(t, all[2].Vector)

	lengths := decode[[]types.Entry](t, env.mustRun("--json", "sheet", "list", "--kind", "length").stdout)
	require.Len(t, lengths, 1)
	assert.Equal(t, "span", lengths[0].Name)

	table := env.mustRun("sheet", "list")
	assert.Contains(t, table.stdout, "NAME")
	assert.Contains(t, table.stdout, "wind")

	env.mustRun("sheet", "delete", "span")
	r = env.run("sheet", "get", "span")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "entry not found")
}

func TestSheetSetUpdatesByName(t *testing.T) {
	env := newTestEnv(t)

	first := decode[types.Entry](t, env.mustRun("--json", "sheet", "set", "cruise", "450", "kt", "--note", "econ").stdout)
	second := decode[types.Entry](t, env.mustRun("--json", "sheet", "set", "cruise", "470", "kt").stdout)

	assert.Equal(t, first.EntryID, second.EntryID)
	assert.Equal(t, []float64{470}, second.Values)
	assert.Equal(t, "econ", second.Note, "note kept when --note is not given")
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
}

func TestSheetSetErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"kind mismatch", []string{"x", "1", "kg", "--kind", "length"}, "dimension kind mismatch"},
		{"ambiguous kind", []string{"x", "1", "J"}, "ambiguous"},
		{"no kind", []string{"x", "1", "m*s"}, "measures no known kind"},
		{"unknown unit", []string{"x", "1", "blarg", "--kind", "mass"}, "unknown unit"},
		{"unknown kind", []string{"x", "1", "kg", "--kind", "weight"}, "unknown dimension kind"},
		{"bad value", []string{"x", "[1, 2", "kg"}, "missing ']'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := env.run(append([]string{"sheet", "set"}, tt.args...)...)
			assert.Equal(t, exitUserError, r.code)
			assert.Contains(t, r.stderr, tt.msg)
		})
	}

	all := decode[[]types.Entry](t, env.mustRun("--json", "sheet", "list").stdout)
	assert.Empty(t, all)
}

func TestSheetPreferredUnits(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("config.yaml", "backend: sqlite\npreferred_units:\n  length: ft\n")

	env.mustRun("sheet", "set", "rail", "1", "m")
	got := decode[types.Entry](t, env.mustRun("--json", "sheet", "get", "rail").stdout)
	assert.Equal(t, "ft", got.Unit)
	assert.InDelta(t, 3.28084, got.Values[0], 1e-5)

	got = decode[types.Entry](t, env.mustRun("--json", "sheet", "get", "rail", "--unit", "cm").stdout)
	assert.Equal(t, "cm", got.Unit)
	assert.InDelta(t, 100, got.Values[0], 1e-9)

	r := env.run("sheet", "get", "rail", "--unit", "kg")
	assert.Equal(t, exitUserError, r.code)
}

func TestSheetExportImport(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("sheet", "set", "mtow", "79000", "kg")
	env.mustRun("sheet", "set", "span", "35.8", "m")

	stdout := env.mustRun("sheet", "export").stdout
	assert.Contains(t, stdout, `"name":"mtow"`)

	file := filepath.Join(t.TempDir(), "sheet.jsonl")
	env.mustRun("sheet", "export", file)
	assert.FileExists(t, file)

	other := newTestEnv(t)
	r := other.mustRun("sheet", "import", file)
	assert.Equal(t, "imported 2 entries\n", r.stdout)

	a := decode[[]types.Entry](t, env.mustRun("--json", "sheet", "list").stdout)
	b := decode[[]types.Entry](t, other.mustRun("--json", "sheet", "list").stdout)
	require.Len(t, b, 2)
	for i := range a {
		assert.Equal(t, a[i].EntryID, b[i].EntryID)
		assert.Equal(t, a[i].Values, b[i].Values)
		assert.True(t, a[i].CreatedAt.Equal(b[i].CreatedAt))
	}

	r = other.run("sheet", "import", filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Equal(t, exitUserError, r.code)
}

func TestStorageFailureIsSystemError(t *testing.T) {
	env := newTestEnv(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	env.dataDir = filepath.Join(blocker, "data")

	r := env.run("sheet", "list")
	assert.Equal(t, exitSysError, r.code)
}

func TestUnknownBackendIsUserError(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("config.yaml", "backend: dolt\n")

	r := env.run("sheet", "list")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown backend")
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		in     string
		want   []float64
		vector bool
	}{
		{"1.5", []float64{1.5}, false},
		{"-2e3", []float64{-2000}, false},
		{"[1, 2, 3]", []float64{1, 2, 3}, true},
		{"[1 2]", []float64{1, 2}, true},
		{"4,5", []float64{4, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, vector, err := parseNumbers(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.vector, vector)
		})
	}

	for _, bad := range []string{"", "x", "[]", "[1, y]", "[1, 2"} {
		_, _, err := parseNumbers(bad)
		assert.Error(t, err, bad)
	}
}
