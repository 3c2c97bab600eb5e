package workload

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrMalformedWorkload = errors.New("malformed workload")
	ErrUnknownFormat     = errors.New("unknown workload format")
)

// Workload is a process set plus an optional Round-Robin quantum.
type Workload struct {
	Quantum   *float64                `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	Processes []scheduler.ProcessSpec `json:"processes" yaml:"processes"`
}

// Build validates every process of the workload.
func (w *Workload) Build() ([]*scheduler.Process, error) {
	return scheduler.NewProcesses(w.Processes)
}

// ParseFormat resolves a format name; "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "csv", "txt":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// FormatOf guesses the format of location from its extension.
func FormatOf(location string) (Format, error) {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	return ParseFormat(path.Ext(location))
}

// Load downloads location through afs, so local paths and any registered
// storage scheme work alike. An empty format is inferred from the extension.
func Load(ctx context.Context, location string, format Format) (*Workload, error) {
	if format == "" {
		f, err := FormatOf(location)
		if err != nil {
			return nil, err
		}
		format = f
	}
	fs := afs.New()
	exists, err := fs.Exists(ctx, location)
	if err != nil {
		return nil, errors.Wrapf(err, "check workload %s", location)
	}
	if !exists {
		return nil, errors.Errorf("workload %s not found", location)
	}
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, errors.Wrapf(err, "download workload %s", location)
	}
	return Parse(data, format)
}

// Read parses a workload from r.
func Read(r io.Reader, format Format) (*Workload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read workload")
	}
	return Parse(data, format)
}

func Parse(data []byte, format Format) (*Workload, error) {
	switch format {
	case FormatCSV:
		return parseCSV(data)
	case FormatJSON:
		return parseDocument(data, json.Unmarshal)
	case FormatYAML:
		return parseDocument(data, yaml.Unmarshal)
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", string(format))
}

type document struct {
	Quantum   *float64      `json:"quantum" yaml:"quantum"`
	Processes []processNode `json:"processes" yaml:"processes"`
}

type processNode struct {
	ID       processID `json:"id" yaml:"id"`
	Arrival  float64   `json:"arrival" yaml:"arrival"`
	Burst    float64   `json:"burst" yaml:"burst"`
	Priority int       `json:"priority" yaml:"priority"`
}

// processID accepts both numeric and string ids.
type processID string

func (id *processID) UnmarshalJSON(data []byte) error {
	var decoded scheduler.ProcessID
	if err := decoded.UnmarshalJSON(data); err != nil {
		return err
	}
	*id = processID(decoded)
	return nil
}

func (id *processID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: process id must be a scalar", node.Line)
	}
	*id = processID(node.Value)
	return nil
}

func parseDocument(data []byte, unmarshal func([]byte, any) error) (*Workload, error) {
	var doc document
	if err := unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(ErrMalformedWorkload, "%v", err)
	}
	w := &Workload{Quantum: doc.Quantum, Processes: make([]scheduler.ProcessSpec, 0, len(doc.Processes))}
	for _, p := range doc.Processes {
		w.Processes = append(w.Processes, scheduler.ProcessSpec{
			ID:          string(p.ID),
			ArrivalTime: p.Arrival,
			BurstTime:   p.Burst,
			Priority:    p.Priority,
		})
	}
	return w, nil
}

const (
	colID = iota
	colArrival
	colBurst
	colPriority
)

var headerNames = map[string]int{
	"id":           colID,
	"pid":          colID,
	"process":      colID,
	"arrival":      colArrival,
	"arrival_time": colArrival,
	"burst":        colBurst,
	"burst_time":   colBurst,
	"duration":     colBurst,
	"priority":     colPriority,
}

func parseCSV(data []byte) (*Workload, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedWorkload, "reading CSV: %v", err)
	}

	columns := []int{colID, colArrival, colBurst, colPriority}
	if len(rows) > 0 {
		if mapped, ok := headerColumns(rows[0]); ok {
			columns = mapped
			rows = rows[1:]
		}
	}

	w := &Workload{Processes: make([]scheduler.ProcessSpec, 0, len(rows))}
	for i, row := range rows {
		if len(row) < 3 {
			return nil, errors.Wrapf(ErrMalformedWorkload, "row %d: want at least 3 fields, got %d", i+1, len(row))
		}
		var spec scheduler.ProcessSpec
		for j, field := range row {
			if j >= len(columns) {
				break
			}
			field = strings.TrimSpace(field)
			switch columns[j] {
			case colID:
				spec.ID = field
			case colArrival:
				if spec.ArrivalTime, err = strconv.ParseFloat(field, 64); err != nil {
					return nil, errors.Wrapf(ErrMalformedWorkload, "row %d: arrival %q", i+1, field)
				}
			case colBurst:
				if spec.BurstTime, err = strconv.ParseFloat(field, 64); err != nil {
					return nil, errors.Wrapf(ErrMalformedWorkload, "row %d: burst %q", i+1, field)
				}
			case colPriority:
				if field == "" {
					continue
				}
				if spec.Priority, err = strconv.Atoi(field); err != nil {
					return nil, errors.Wrapf(ErrMalformedWorkload, "row %d: priority %q", i+1, field)
				}
			}
		}
		w.Processes = append(w.Processes, spec)
	}
	return w, nil
}

// headerColumns maps a header row to column roles. A row is a header only
// when every field is a known column name and id, arrival and burst appear.
func headerColumns(row []string) ([]int, bool) {
	columns := make([]int, 0, len(row))
	seen := map[int]bool{}
	for _, field := range row {
		col, ok := headerNames[strings.ToLower(strings.TrimSpace(field))]
		if !ok {
			return nil, false
		}
		columns = append(columns, col)
		seen[col] = true
	}
	return columns, seen[colID] && seen[colArrival] && seen[colBurst]
}
