package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/opldsm/config"
	"github.com/katalvlaran/opldsm/opl"
)

const model = `1. Car is a physical object.
2. Fuel is a physical object.
3. Driving is a process.
4. Driving requires Car.
5. Driving consumes Fuel.
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeModel(t *testing.T, dir, src string) string {
	t.Helper()
	path := filepath.Join(dir, "model.opl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRoot_WritesMatrix(t *testing.T) {
	dir := t.TempDir()
	in := writeModel(t, dir, model)
	out := filepath.Join(dir, "po.csv")

	stdout, _, err := execute(t, "--log-level", "error", in, out, "PO")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Processed:")
	assert.Contains(t, stdout, "relationships")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, ",Car,Fuel\nDriving,r,c\n", string(data))
}

func TestRoot_ConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	in := writeModel(t, dir, model)
	out := filepath.Join(dir, "oo.csv")
	cfgPath := filepath.Join(dir, "opldsm.yaml")
	cfgText := "input: " + in + "\noutput: " + out + "\nmatrix: PP\nlog_level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgText), 0o644))

	// positional kind overrides the file's PP
	_, _, err := execute(t, "--config", cfgPath, in, out, "OO")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, ",Car,Fuel\nCar,1,1\nFuel,1,1\n", string(data))
}

func TestRoot_ClusteredWithReport(t *testing.T) {
	dir := t.TempDir()
	in := writeModel(t, dir, model)
	out := filepath.Join(dir, "po.csv")
	report := filepath.Join(dir, "clusters.csv")

	stdout, _, err := execute(t, "--log-level", "error", "-k", "1", "--seed", "3",
		"--cluster-report", report, in, out, "po")
	require.NoError(t, err)
	assert.Contains(t, stdout, "seed 3")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Equal(t, "Objects,0,0\nProcesses,0\n", string(data))
}

func TestRoot_InvalidInput(t *testing.T) {
	dir := t.TempDir()
	in := writeModel(t, dir, "1. Car is a physical object.\n")
	out := filepath.Join(dir, "po.csv")

	_, _, err := execute(t, "--log-level", "error", in, out, "PO")
	require.ErrorIs(t, err, opl.ErrInvalidInput)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), "Invalid input, exiting.")
}

func TestRoot_BadArguments(t *testing.T) {
	dir := t.TempDir()
	in := writeModel(t, dir, model)

	_, _, err := execute(t, in, filepath.Join(dir, "x.csv"), "XX")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = execute(t, in)
	assert.ErrorIs(t, err, config.ErrInvalidConfig, "missing output")

	_, _, err = execute(t, "a", "b", "PO", "extra")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "opldsm version "+Version))
}

// TestRoot_ZeroFlagsOverrideConfig turns off clustering configured in the file.
func TestRoot_ZeroFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	in := writeModel(t, dir, model)
	out := filepath.Join(dir, "po.csv")
	report := filepath.Join(dir, "clusters.csv")
	cfgPath := filepath.Join(dir, "opldsm.yaml")
	cfgText := "clusters: 1\nseed: 5\ncluster_report: " + report + "\nlog_level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgText), 0o644))

	stdout, _, err := execute(t, "--config", cfgPath, "--clusters", "0", "--cluster-report", "", in, out, "PO")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "Reordered:")
	assert.FileExists(t, out)
	assert.NoFileExists(t, report)

	// without the overrides the file's clustering applies
	stdout, _, err = execute(t, "--config", cfgPath, in, out, "PO")
	require.NoError(t, err)
	assert.Contains(t, stdout, "seed 5")
	assert.FileExists(t, report)
}

// TestRoot_KindIsCaseInsensitive accepts any casing and padding of the kind.
func TestRoot_KindIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	in := writeModel(t, dir, model)

	for _, kind := range []string{"pp", " Pp ", "PP"} {
		out := filepath.Join(dir, "pp.csv")
		_, _, err := execute(t, "--log-level", "error", in, out, kind)
		require.NoError(t, err, kind)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, ",Driving\nDriving,2\n", string(data), kind)
	}
}
