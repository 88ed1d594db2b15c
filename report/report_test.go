package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clashbench/clash/runner"
	"github.com/clashbench/clash/stats"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{90*time.Second + 500*time.Millisecond, "1m 30.500s"},
		{2500 * time.Millisecond, "2.500s"},
		{42 * time.Millisecond, "42.0ms"},
		{750 * time.Microsecond, "750µs"},
		{0, "0µs"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatDuration(c.d))
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "n/a", FormatBytes(0))
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KiB", FormatBytes(1536))
	assert.Equal(t, "8.0 MiB", FormatBytes(8<<20))
	assert.Equal(t, "2.0 GiB", FormatBytes(2<<30))
}

func sample() []stats.Command {
	fast := stats.Compute("./fast", []runner.Result{
		{Duration: 100 * time.Millisecond, PeakMemoryBytes: 10 << 20},
		{Duration: 100 * time.Millisecond, PeakMemoryBytes: 10 << 20},
	})
	slow := stats.Compute("./slow", []runner.Result{
		{Duration: 400 * time.Millisecond, PeakMemoryBytes: 40 << 20},
		{Duration: 400 * time.Millisecond, PeakMemoryBytes: 40 << 20},
	})
	return []stats.Command{fast, slow}
}

func TestRender(t *testing.T) {
	var buf strings.Builder
	Render(&buf, sample())
	out := buf.String()
	assert.Contains(t, out, "fast (2 runs) [ok]")
	assert.Contains(t, out, "Mean")
	assert.Contains(t, out, "Peak RSS")
	assert.Contains(t, out, "fast is 4.00x faster")
	assert.Contains(t, out, "fast uses 4.00x less memory")
	assert.Contains(t, out, "Summary: fast wins on speed (4.00x), fast wins on memory (4.00x)")
}

func TestRenderNoMemoryData(t *testing.T) {
	all := []stats.Command{
		stats.Compute("a", []runner.Result{{Duration: time.Second}}),
		stats.Compute("b", []runner.Result{{Duration: time.Second}}),
	}
	var buf strings.Builder
	Render(&buf, all)
	assert.Contains(t, buf.String(), "Memory data unavailable")
}

func TestRenderFailedRuns(t *testing.T) {
	all := []stats.Command{
		stats.Compute("a", []runner.Result{{Duration: time.Second, ExitCode: 1}}),
		stats.Compute("b", []runner.Result{{Duration: time.Second}}),
	}
	var buf strings.Builder
	Render(&buf, all)
	assert.Contains(t, buf.String(), "1/1 runs exited nonzero")
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, sample()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var s Session
	require.NoError(t, json.Unmarshal(data, &s))
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.Time.IsZero())
	assert.Greater(t, s.Host.CPUs, 0)
	require.Len(t, s.Commands, 2)
	assert.Equal(t, "./fast", s.Commands[0].Command)
	assert.Equal(t, 2, s.Commands[0].Runs)
}
