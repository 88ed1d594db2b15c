// Package stats aggregates per-run measurements into per-command
// summaries and picks winners between commands.
package stats

import (
	"math"
	"path/filepath"
	"time"

	"github.com/clashbench/clash/runner"
)

// Command holds the aggregated statistics for all runs of one command.
type Command struct {
	Command         string          `json:"command"`
	Label           string          `json:"label"`
	Runs            int             `json:"runs"`
	TimeMean        time.Duration   `json:"time_mean_ns"`
	TimeMin         time.Duration   `json:"time_min_ns"`
	TimeMax         time.Duration   `json:"time_max_ns"`
	TimeStdDev      time.Duration   `json:"time_std_dev_ns"`
	PeakMemoryBytes uint64          `json:"peak_memory_bytes"`
	FailedRuns      int             `json:"failed_runs"`
	Results         []runner.Result `json:"results"`
}

// Compute aggregates results for a command.  The standard deviation is
// the sample deviation (n-1 divisor); with a single run it is zero.
func Compute(command string, results []runner.Result) Command {
	c := Command{
		Command: command,
		Label:   makeLabel(command),
		Runs:    len(results),
		Results: results,
	}
	if len(results) == 0 {
		return c
	}
	c.TimeMin = results[0].Duration
	var total time.Duration
	for _, r := range results {
		total += r.Duration
		if r.Duration < c.TimeMin {
			c.TimeMin = r.Duration
		}
		if r.Duration > c.TimeMax {
			c.TimeMax = r.Duration
		}
		if r.PeakMemoryBytes > c.PeakMemoryBytes {
			c.PeakMemoryBytes = r.PeakMemoryBytes
		}
		if r.ExitCode != 0 {
			c.FailedRuns++
		}
	}
	c.TimeMean = total / time.Duration(len(results))
	if len(results) > 1 {
		mean := float64(c.TimeMean)
		var variance float64
		for _, r := range results {
			d := float64(r.Duration) - mean
			variance += d * d
		}
		variance /= float64(len(results) - 1)
		c.TimeStdDev = time.Duration(math.Sqrt(variance))
	}
	return c
}

// Comparison names the winning command for one metric and how much
// better it did than the runner-up.
type Comparison struct {
	Winner int
	Ratio  float64
}

// CompareTime ranks commands by mean duration.  The ratio is the
// slowest mean over the winner's.
func CompareTime(all []Command) *Comparison {
	return compare(all, func(c Command) float64 {
		return float64(c.TimeMean)
	})
}

// CompareMemory ranks commands by peak memory.  It returns nil when
// any command is missing memory data (process too short-lived to
// sample), since a zero would win every comparison vacuously.
func CompareMemory(all []Command) *Comparison {
	for _, c := range all {
		if c.PeakMemoryBytes == 0 {
			return nil
		}
	}
	return compare(all, func(c Command) float64 {
		return float64(c.PeakMemoryBytes)
	})
}

func compare(all []Command, metric func(Command) float64) *Comparison {
	if len(all) < 2 {
		return nil
	}
	winner, worst := 0, 0
	for i := 1; i < len(all); i++ {
		if metric(all[i]) < metric(all[winner]) {
			winner = i
		}
		if metric(all[i]) > metric(all[worst]) {
			worst = i
		}
	}
	best := metric(all[winner])
	if best == 0 {
		return &Comparison{Winner: winner, Ratio: 1}
	}
	return &Comparison{Winner: winner, Ratio: metric(all[worst]) / best}
}

// makeLabel derives a short display name from a command line: the
// program's basename plus its arguments, truncated.
func makeLabel(command string) string {
	argv, err := runner.SplitCommand(command)
	if err != nil || len(argv) == 0 {
		return command
	}
	label := filepath.Base(argv[0])
	for _, arg := range argv[1:] {
		label += " " + arg
	}
	const max = 28
	if runes := []rune(label); len(runes) > max {
		label = string(runes[:max-1]) + "…"
	}
	return label
}
