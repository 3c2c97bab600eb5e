package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gthulhu/schedsim/report"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/Gthulhu/schedsim/simulator/rest"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func checkOutput(output string) error {
	switch output {
	case outputText, outputJSON:
		return nil
	}
	return errors.Errorf("unknown output %q, want %s or %s", output, outputText, outputJSON)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRun(w io.Writer, output string, run *domain.SimulationRun) error {
	if output == outputJSON {
		return writeJSON(w, run)
	}
	if err := report.Render(w, run.Report); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Run %s, workload %s", run.RunID, run.WorkloadHash)
	if run.Cached {
		_, _ = fmt.Fprint(w, ", cached")
	}
	if run.Persisted {
		_, _ = fmt.Fprint(w, ", persisted")
	}
	_, _ = fmt.Fprintln(w)
	return nil
}

func writeComparison(w io.Writer, output string, cmp *rest.CompareSimulationResponse) error {
	if output == outputJSON {
		return writeJSON(w, cmp)
	}
	for _, run := range cmp.Runs {
		if err := report.Render(w, run.Report); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w)
	}
	_, _ = fmt.Fprintln(w, "Ranking")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Policy", "Wait", "Turnaround", "Response", "Switches"})
	for _, r := range cmp.Ranking {
		table.Append([]string{
			fmt.Sprint(r.Rank),
			string(r.Policy),
			fmt.Sprintf("%.2f", r.AverageWaitingTime),
			fmt.Sprintf("%.2f", r.AverageTurnaroundTime),
			fmt.Sprintf("%.2f", r.AverageResponseTime),
			fmt.Sprint(r.ContextSwitches),
		})
	}
	table.Render()
	return nil
}
