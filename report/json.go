package report

import (
	"os"
	"runtime"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pbnjay/memory"
	"github.com/segmentio/ksuid"
	"go.uber.org/multierr"

	"github.com/clashbench/clash/stats"
)

// Host describes the machine a session ran on.
type Host struct {
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	CPUs        int    `json:"cpus"`
	MemoryBytes uint64 `json:"memory_bytes"`
}

// Session is the exported record of one comparator invocation.
type Session struct {
	ID       string          `json:"id"`
	Time     time.Time       `json:"time"`
	Host     Host            `json:"host"`
	Commands []stats.Command `json:"commands"`
}

// NewSession wraps aggregated results with a fresh session ID and the
// host environment, so exports from different machines stay
// distinguishable.
func NewSession(all []stats.Command) Session {
	return Session{
		ID:   ksuid.New().String(),
		Time: time.Now().UTC(),
		Host: Host{
			OS:          runtime.GOOS,
			Arch:        runtime.GOARCH,
			CPUs:        runtime.NumCPU(),
			MemoryBytes: memory.TotalMemory(),
		},
		Commands: all,
	}
}

// WriteJSON exports a session for all commands to path.
func WriteJSON(path string, all []stats.Command) (err error) {
	data, err := json.MarshalIndent(NewSession(all), "", "  ")
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	_, err = f.Write(append(data, '\n'))
	return err
}
