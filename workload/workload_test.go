package workload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVDefaultColumns(t *testing.T) {
	data := "1,0,5,2\n2, 1, 3\n# comment\n3,2,8,1\n"
	w, err := Parse([]byte(data), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []scheduler.ProcessSpec{
		{ID: "1", ArrivalTime: 0, BurstTime: 5, Priority: 2},
		{ID: "2", ArrivalTime: 1, BurstTime: 3},
		{ID: "3", ArrivalTime: 2, BurstTime: 8, Priority: 1},
	}, w.Processes)
	assert.Nil(t, w.Quantum)
}

func TestParseCSVHeaderReordersColumns(t *testing.T) {
	data := "burst,priority,id,arrival_time\n2.5,1,A,0\n1,0,B,0.75\n"
	w, err := Parse([]byte(data), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []scheduler.ProcessSpec{
		{ID: "A", ArrivalTime: 0, BurstTime: 2.5, Priority: 1},
		{ID: "B", ArrivalTime: 0.75, BurstTime: 1},
	}, w.Processes)

	procs, err := w.Build()
	require.NoError(t, err)
	assert.Equal(t, scheduler.Time(75), procs[1].ArrivalTime)
}

func TestParseCSVErrors(t *testing.T) {
	for _, data := range []string{
		"1,0\n",
		"1,zero,5\n",
		"1,0,five\n",
		"1,0,5,high\n",
		"1,\"0,5\n",
	} {
		_, err := Parse([]byte(data), FormatCSV)
		assert.Equal(t, ErrMalformedWorkload, errors.Cause(err), "input %q", data)
	}
}

func TestParseJSON(t *testing.T) {
	data := `{"quantum": 2, "processes": [
		{"id": 1, "arrival": 0, "burst": 5},
		{"id": "P2", "arrival": 1, "burst": 3, "priority": 4}
	]}`
	w, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)
	require.NotNil(t, w.Quantum)
	assert.Equal(t, 2.0, *w.Quantum)
	assert.Equal(t, []scheduler.ProcessSpec{
		{ID: "1", ArrivalTime: 0, BurstTime: 5},
		{ID: "P2", ArrivalTime: 1, BurstTime: 3, Priority: 4},
	}, w.Processes)

	_, err = Parse([]byte(`{"processes": [{"id": true}]}`), FormatJSON)
	assert.Equal(t, ErrMalformedWorkload, errors.Cause(err))
}

func TestParseYAML(t *testing.T) {
	data := `
quantum: 0.5
processes:
  - id: 7
    arrival: 0
    burst: 1.25
  - id: worker
    arrival: 0.1
    burst: 0.75
    priority: 1
`
	w, err := Parse([]byte(data), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 0.5, *w.Quantum)
	assert.Equal(t, "7", w.Processes[0].ID)
	assert.Equal(t, "worker", w.Processes[1].ID)
	assert.Equal(t, 1, w.Processes[1].Priority)

	_, err = Parse([]byte("processes:\n  - id: [1, 2]\n"), FormatYAML)
	assert.Equal(t, ErrMalformedWorkload, errors.Cause(err))
}

func TestFormats(t *testing.T) {
	for location, want := range map[string]Format{
		"jobs.csv":                       FormatCSV,
		"/tmp/a/b.JSON":                  FormatJSON,
		"mem://localhost/w.yml":          FormatYAML,
		"https://example.com/w.yaml?x=1": FormatYAML,
	} {
		got, err := FormatOf(location)
		require.NoError(t, err, location)
		assert.Equal(t, want, got)
	}
	_, err := FormatOf("jobs.xlsx")
	assert.Equal(t, ErrUnknownFormat, errors.Cause(err))
	_, err = Parse(nil, Format("toml"))
	assert.Equal(t, ErrUnknownFormat, errors.Cause(err))
}

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "workload.csv")
	require.NoError(t, os.WriteFile(location, []byte("id,arrival,burst\nP1,0,2\nP2,5,1\n"), 0o644))

	w, err := Load(context.Background(), location, "")
	require.NoError(t, err)
	assert.Len(t, w.Processes, 2)

	_, err = Load(context.Background(), filepath.Join(dir, "missing.csv"), "")
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	w, err := Read(strings.NewReader("1,0,1\n"), FormatCSV)
	require.NoError(t, err)
	assert.Len(t, w.Processes, 1)
}
