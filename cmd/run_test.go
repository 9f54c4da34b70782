package cmd

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/phenolcst/phenol_water"
)

func TestLoadParams(t *testing.T) {
	var (
		err error
		dir = t.TempDir()
	)
	fileInput := []byte(`
Title: Test Case
PhenolVolume: 4
WaterStep: 3 # ml added per observation
MaxObservations: 15
`)
	fileName := filepath.Join(dir, "params.yaml")
	require.NoError(t, ioutil.WriteFile(fileName, fileInput, 0644))
	ep, err := loadParams(fileName)
	require.NoError(t, err)
	ep.Print()
	assert.Equal(t, "Test Case", ep.Title)
	assert.Equal(t, 4, ep.PhenolVolume)
	assert.Equal(t, 3, ep.WaterStep)
	assert.Equal(t, 15, ep.MaxObservations)
	// Unset keys keep their defaults
	assert.Equal(t, 3, ep.WaterStart)
	assert.Equal(t, 60, ep.DisappearanceMin)

	ep, err = loadParams("")
	require.NoError(t, err)
	assert.Equal(t, 10, ep.DefaultObservations)

	_, err = loadParams(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, ioutil.WriteFile(fileName, []byte("MinObservations: 25\n"), 0644))
	_, err = loadParams(fileName)
	assert.Error(t, err)
}

func TestRunExperiment(t *testing.T) {
	var (
		dir      = t.TempDir()
		csvFile  = filepath.Join(dir, "cst_observations.csv")
		plotFile = filepath.Join(dir, "cst.svg")
		out      bytes.Buffer
	)
	ep, err := loadParams("")
	require.NoError(t, err)
	rc := &RunConfig{N: 10, Seed: 42, SeedSet: true, CSVFile: csvFile, PlotFile: plotFile}
	res, err := RunExperiment(rc, ep, &out)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Count)
	assert.Contains(t, out.String(), "CST of phenol-water system")
	// header plus 10 rows, 5 separators each
	assert.Equal(t, 55, strings.Count(out.String(), " | "))

	data, err := ioutil.ReadFile(csvFile)
	require.NoError(t, err)
	expected, err := phenol_water.MarshalCSV(phenol_water.Simulate(10, ep, phenol_water.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(data))

	svg, err := ioutil.ReadFile(plotFile)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	{ // Default count, drawn seed
		res, err = RunExperiment(&RunConfig{}, ep, &out)
		require.NoError(t, err)
		assert.Equal(t, ep.DefaultObservations, res.Count)
	}
	{ // Unknown plot format leaves no file behind
		bad := filepath.Join(dir, "cst.gif")
		_, err = RunExperiment(&RunConfig{N: 5, PlotFile: bad}, ep, &out)
		assert.Error(t, err)
		_, statErr := os.Stat(bad)
		assert.True(t, os.IsNotExist(statErr))
	}
}
