package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// Render writes a human readable report: a title, a text Gantt chart and
// the per-process table with averages in its footer.
func Render(w io.Writer, rep *Report) error {
	if rep == nil {
		return errors.New("nil report")
	}
	var buf bytes.Buffer
	title := strings.ToUpper(string(rep.Policy))
	if rep.Quantum > 0 {
		title = fmt.Sprintf("%s (quantum %s)", title, rep.Quantum)
	}
	writeTitle(&buf, title)
	WriteGantt(&buf, rep.Timeline)
	writeTable(&buf, rep)
	writeSummary(&buf, rep.Summary)
	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "write report")
}

func writeTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// WriteGantt draws the timeline as a row of labelled cells with the start
// time of every cell below its left border and the makespan at the end.
func WriteGantt(w io.Writer, entries []Entry) {
	_, _ = fmt.Fprintln(w, "Gantt chart")
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "(empty)")
		return
	}
	widths := make([]int, len(entries))
	for i, e := range entries {
		widths[i] = max(len(e.Label)+4, len(e.Start.String())+1)
	}

	var border, labels, times strings.Builder
	border.WriteString("+")
	labels.WriteString("|")
	for i, e := range entries {
		border.WriteString(strings.Repeat("-", widths[i]) + "+")
		left := (widths[i] - len(e.Label)) / 2
		right := widths[i] - len(e.Label) - left
		labels.WriteString(strings.Repeat(" ", left) + e.Label + strings.Repeat(" ", right) + "|")
		start := e.Start.String()
		times.WriteString(start + strings.Repeat(" ", widths[i]+1-len(start)))
	}
	times.WriteString(entries[len(entries)-1].End.String())

	_, _ = fmt.Fprintln(w, border.String())
	_, _ = fmt.Fprintln(w, labels.String())
	_, _ = fmt.Fprintln(w, border.String())
	_, _ = fmt.Fprintln(w, times.String())
	_, _ = fmt.Fprintln(w)
}

func writeTable(w io.Writer, rep *Report) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	rows := make([][]string, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, []string{
			r.ProcessID,
			fmt.Sprint(r.Priority),
			r.ArrivalTime.String(),
			r.BurstTime.String(),
			r.StartTime.String(),
			r.FinishTime.String(),
			r.WaitingTime.String(),
			r.TurnaroundTime.String(),
			r.ResponseTime.String(),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Arrival", "Burst", "Start", "Finish", "Wait", "Turnaround", "Response"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "", "",
		fmt.Sprintf("Average\n%.2f", rep.Summary.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", rep.Summary.AverageTurnaroundTime),
		fmt.Sprintf("Average\n%.2f", rep.Summary.AverageResponseTime)})
	table.Render()
}

func writeSummary(w io.Writer, s Summary) {
	_, _ = fmt.Fprintf(w, "Makespan %s, idle %s, utilization %.2f%%, throughput %.2f/t, context switches %d\n",
		s.Makespan, s.IdleTime, s.CPUUtilization*100, s.Throughput, s.ContextSwitches)
}
