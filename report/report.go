// Package report renders the comparator's terminal report and the
// optional JSON export of a benchmark session.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/units"

	"github.com/clashbench/clash/stats"
)

const barWidth = 30

// Render writes the full comparison report: per-command run status,
// the time and memory tables with bar charts, and the closing summary.
func Render(w io.Writer, all []stats.Command) {
	fmt.Fprintln(w)
	for _, c := range all {
		status := "ok"
		if c.FailedRuns > 0 {
			status = fmt.Sprintf("%d/%d runs exited nonzero", c.FailedRuns, c.Runs)
		}
		fmt.Fprintf(w, "  %s (%d runs) [%s]\n", c.Label, c.Runs, status)
	}
	fmt.Fprintln(w)
	renderTimeTable(w, all)
	fmt.Fprintln(w)
	renderMemoryTable(w, all)
	fmt.Fprintln(w)
	renderSummary(w, all)
}

func renderTimeTable(w io.Writer, all []stats.Command) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "  Time")
	for _, c := range all {
		fmt.Fprintf(tw, "\t%s", c.Label)
	}
	fmt.Fprintln(tw)
	row := func(name string, metric func(stats.Command) string) {
		fmt.Fprintf(tw, "  %s", name)
		for _, c := range all {
			fmt.Fprintf(tw, "\t%s", metric(c))
		}
		fmt.Fprintln(tw)
	}
	row("Mean", func(c stats.Command) string { return FormatDuration(c.TimeMean) })
	row("Min", func(c stats.Command) string { return FormatDuration(c.TimeMin) })
	row("Max", func(c stats.Command) string { return FormatDuration(c.TimeMax) })
	row("Std Dev", func(c stats.Command) string { return "±" + FormatDuration(c.TimeStdDev) })
	tw.Flush()
	renderBars(w, all,
		func(c stats.Command) float64 { return float64(c.TimeMean) },
		func(v float64) string { return FormatDuration(time.Duration(v)) })
	if comp := stats.CompareTime(all); comp != nil {
		if comp.Ratio > 1.01 {
			fmt.Fprintf(w, "  -> %s is %.2fx faster\n", all[comp.Winner].Label, comp.Ratio)
		} else {
			fmt.Fprintln(w, "  -> Roughly the same speed")
		}
	}
}

func renderMemoryTable(w io.Writer, all []stats.Command) {
	unmeasured := true
	for _, c := range all {
		if c.PeakMemoryBytes > 0 {
			unmeasured = false
			break
		}
	}
	if unmeasured {
		fmt.Fprintln(w, "  Memory data unavailable (processes too short-lived to measure)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "  Memory")
	for _, c := range all {
		fmt.Fprintf(tw, "\t%s", c.Label)
	}
	fmt.Fprintln(tw)
	fmt.Fprint(tw, "  Peak RSS")
	for _, c := range all {
		fmt.Fprintf(tw, "\t%s", FormatBytes(c.PeakMemoryBytes))
	}
	fmt.Fprintln(tw)
	tw.Flush()
	renderBars(w, all,
		func(c stats.Command) float64 { return float64(c.PeakMemoryBytes) },
		func(v float64) string { return FormatBytes(uint64(v)) })
	if comp := stats.CompareMemory(all); comp != nil {
		if comp.Ratio > 1.01 {
			fmt.Fprintf(w, "  -> %s uses %.2fx less memory\n", all[comp.Winner].Label, comp.Ratio)
		} else {
			fmt.Fprintln(w, "  -> Roughly the same memory usage")
		}
	}
}

func renderBars(w io.Writer, all []stats.Command, value func(stats.Command) float64, format func(float64) string) {
	var max float64
	labelWidth := 0
	for _, c := range all {
		if v := value(c); v > max {
			max = v
		}
		if n := len([]rune(c.Label)); n > labelWidth {
			labelWidth = n
		}
	}
	if max <= 0 {
		return
	}
	for _, c := range all {
		v := value(c)
		filled := int(v/max*barWidth + 0.5)
		fmt.Fprintf(w, "  %*s %s%s  %s\n", labelWidth, c.Label,
			strings.Repeat("━", filled), strings.Repeat("─", barWidth-filled), format(v))
	}
}

func renderSummary(w io.Writer, all []stats.Command) {
	var parts []string
	if comp := stats.CompareTime(all); comp != nil && comp.Ratio > 1.01 {
		parts = append(parts, fmt.Sprintf("%s wins on speed (%.2fx)", all[comp.Winner].Label, comp.Ratio))
	}
	if comp := stats.CompareMemory(all); comp != nil && comp.Ratio > 1.01 {
		parts = append(parts, fmt.Sprintf("%s wins on memory (%.2fx)", all[comp.Winner].Label, comp.Ratio))
	}
	if len(parts) == 0 {
		fmt.Fprintln(w, "  Summary: all commands perform similarly.")
		return
	}
	fmt.Fprintf(w, "  Summary: %s\n", strings.Join(parts, ", "))
}

// FormatDuration renders d with precision adapted to its magnitude.
func FormatDuration(d time.Duration) string {
	secs := d.Seconds()
	switch {
	case secs >= 60:
		mins := int(secs / 60)
		return fmt.Sprintf("%dm %.3fs", mins, secs-float64(mins)*60)
	case secs >= 1:
		return fmt.Sprintf("%.3fs", secs)
	case secs >= 0.001:
		return fmt.Sprintf("%.1fms", secs*1000)
	default:
		return fmt.Sprintf("%.0fµs", secs*1e6)
	}
}

// FormatBytes renders n as a binary-prefixed quantity, or "n/a" when
// no measurement was possible.
func FormatBytes(n uint64) string {
	if n == 0 {
		return "n/a"
	}
	switch {
	case n >= uint64(units.GiB):
		return fmt.Sprintf("%.1f GiB", float64(n)/float64(units.GiB))
	case n >= uint64(units.MiB):
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(units.MiB))
	case n >= uint64(units.KiB):
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(units.KiB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
