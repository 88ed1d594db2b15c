// Package progress shows a live-updating status line while benchmark
// runs are in flight.  A background goroutine repaints at a fixed
// interval while the benchmark loop updates the state, so a stalled
// child process still shows a live terminal.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

const (
	refreshInterval = 100 * time.Millisecond
	barWidth        = 20
)

// Meter renders one status line for the command currently running.
type Meter struct {
	live   *uilive.Writer
	closed chan struct{}
	wg     sync.WaitGroup

	mu     sync.Mutex
	label  string
	done   int
	total  int
	warmup bool
}

// NewMeter starts a meter writing to w and returns it.  Callers must
// Close it before printing anything else to the same stream.
func NewMeter(w io.Writer) *Meter {
	live := uilive.New()
	live.Out = w
	m := &Meter{live: live, closed: make(chan struct{})}
	m.wg.Add(1)
	go m.run()
	return m
}

// Update records the state of the current phase for the next repaint.
func (m *Meter) Update(label string, done, total int, warmup bool) {
	m.mu.Lock()
	m.label = label
	m.done = done
	m.total = total
	m.warmup = warmup
	m.mu.Unlock()
}

// Close stops the repaint loop and clears the status line.
func (m *Meter) Close() {
	close(m.closed)
	m.wg.Wait()
	fmt.Fprint(m.live, "")
	m.live.Flush()
}

func (m *Meter) run() {
	defer m.wg.Done()
	for {
		m.paint()
		select {
		case <-m.closed:
			return
		case <-time.After(refreshInterval):
		}
	}
}

func (m *Meter) paint() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.total == 0 {
		return
	}
	phase := "Running"
	if m.warmup {
		phase = "Warmup "
	}
	filled := m.done * barWidth / m.total
	fmt.Fprintf(m.live, "  %s  %s %s%s %d/%d\n", m.label, phase,
		strings.Repeat("━", filled), strings.Repeat("─", barWidth-filled),
		m.done, m.total)
	m.live.Flush()
}
