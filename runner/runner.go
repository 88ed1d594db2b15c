// Package runner executes a benchmark command repeatedly, measuring
// wall-clock time and peak resident memory for each run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/prometheus/procfs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// sampleInterval is how often the child's memory is polled.  VmHWM is
// a high-water mark so a slow poll only risks missing a short-lived
// process entirely, not undercounting a spike.
const sampleInterval = 30 * time.Millisecond

// Result holds the measurements from a single run of a command.
type Result struct {
	Duration        time.Duration `json:"duration_ns"`
	PeakMemoryBytes uint64        `json:"peak_memory_bytes"`
	ExitCode        int           `json:"exit_code"`
}

// ProgressFunc is called before each run and once after the last run
// of a phase.  done counts completed runs in the current phase.
type ProgressFunc func(done, total int, warmup bool)

// Runner executes commands for the comparator.  A zero Log means no
// logging.
type Runner struct {
	Runs   int
	Warmup int
	Log    *zap.Logger
}

// Run executes command Warmup times unmeasured and then Runs times
// measured, returning one Result per measured run.  A command that
// exits nonzero still yields a Result (the comparator reports failed
// runs); only spawn and wait failures, or ctx cancellation, return an
// error.
func (r *Runner) Run(ctx context.Context, command string, progress ProgressFunc) ([]Result, error) {
	argv, err := SplitCommand(command)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", command, err)
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	for i := 0; i < r.Warmup; i++ {
		if progress != nil {
			progress(i, r.Warmup, true)
		}
		if _, err := runOnce(ctx, argv); err != nil {
			return nil, err
		}
	}
	results := make([]Result, 0, r.Runs)
	for i := 0; i < r.Runs; i++ {
		if progress != nil {
			progress(i, r.Runs, false)
		}
		res, err := runOnce(ctx, argv)
		if err != nil {
			return nil, err
		}
		log.Debug("run complete",
			zap.String("command", command),
			zap.Int("run", i+1),
			zap.Duration("duration", res.Duration),
			zap.Uint64("peak_memory_bytes", res.PeakMemoryBytes),
			zap.Int("exit_code", res.ExitCode))
		results = append(results, res)
	}
	if progress != nil {
		progress(r.Runs, r.Runs, false)
	}
	return results, nil
}

// runOnce spawns argv with its output discarded, waits for it, and
// samples its peak RSS while it runs.  The timer starts after the
// spawn so process startup cost is attributed to the child, not to
// fork/exec overhead in the harness.
func runOnce(ctx context.Context, argv []string) (Result, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("starting %q: %w", argv[0], err)
	}
	pid := cmd.Process.Pid

	var peak uint64
	done := make(chan struct{})
	var g errgroup.Group
	g.Go(func() error {
		ticker := time.NewTicker(sampleInterval)
		defer ticker.Stop()
		for {
			if rss := peakRSS(pid); rss > peak {
				peak = rss
			}
			select {
			case <-done:
				// One final sample before the pid is reaped.
				if rss := peakRSS(pid); rss > peak {
					peak = rss
				}
				return nil
			case <-ticker.C:
			}
		}
	})

	start := time.Now()
	waitErr := cmd.Wait()
	elapsed := time.Since(start)
	close(done)
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return Result{}, fmt.Errorf("waiting on %q: %w", argv[0], waitErr)
		}
	}
	return Result{
		Duration:        elapsed,
		PeakMemoryBytes: peak,
		ExitCode:        cmd.ProcessState.ExitCode(),
	}, nil
}

// peakRSS returns the high-water resident set size of pid in bytes, or
// zero when /proc is unavailable (non-Linux hosts, or the process has
// already exited).  Memory data is best-effort: the comparator reports
// it as unavailable rather than failing the benchmark.
func peakRSS(pid int) uint64 {
	p, err := procfs.NewProc(pid)
	if err != nil {
		return 0
	}
	status, err := p.NewStatus()
	if err != nil {
		return 0
	}
	return status.VmHWM
}
