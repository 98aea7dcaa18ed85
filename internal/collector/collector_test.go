package collector

import (
	"io"
	"strings"
	"syscall"
	"testing"

	"emperror.dev/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMeminfo = `MemTotal:        1000 kB
MemFree:          200 kB
MemAvailable:     500 kB
Buffers:           10 kB
Cached:           100 kB
SwapTotal:        400 kB
SwapFree:         300 kB
`

func readerOf(s string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

func TestStatsCollectorMemory(t *testing.T) {
	s := NewStatsCollector()
	s.openMeminfo = readerOf(sampleMeminfo)

	m, err := s.Memory()
	require.NoError(t, err)

	assert.Equal(t, uint64(1000*1024), m.Total)
	assert.Equal(t, uint64(500*1024), m.Used)
	assert.Equal(t, uint64(500*1024), m.Available)
	assert.InDelta(t, 50.0, m.UsagePercent, 1e-9)
	assert.Equal(t, uint64(400*1024), m.SwapTotal)
	assert.Equal(t, uint64(100*1024), m.SwapUsed)
	assert.InDelta(t, 25.0, m.SwapPercent, 1e-9)
}

func TestStatsCollectorMemoryNoSwap(t *testing.T) {
	s := NewStatsCollector()
	s.openMeminfo = readerOf("MemTotal: 2048 kB\nMemAvailable: 1024 kB\n")

	m, err := s.Memory()
	require.NoError(t, err)
	assert.Zero(t, m.SwapTotal)
	assert.Zero(t, m.SwapPercent)
}

func TestStatsCollectorMemoryErrors(t *testing.T) {
	s := NewStatsCollector()
	s.openMeminfo = func() (io.ReadCloser, error) {
		return nil, errors.New("permission denied")
	}
	_, err := s.Memory()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read /proc/meminfo")

	s.openMeminfo = readerOf("SwapTotal: 0 kB\n")
	_, err = s.Memory()
	assert.Error(t, err)
}

func TestStatsCollectorCPU(t *testing.T) {
	s := NewStatsCollector()
	s.openStat = readerOf("cpu  100 0 100 800 0 0 0 0\ncpu0 50 0 50 400 0 0 0\ncpu1 50 0 50 400 0 0 0\nintr 1\n")

	first, err := s.CPU()
	require.NoError(t, err)
	assert.InDelta(t, 20.0, first.Usage, 1e-9)

	// 100 busy + 100 idle jiffies since the previous read
	s.openStat = readerOf("cpu  150 0 150 900 0 0 0 0\ncpu0 100 0 100 400 0 0 0\ncpu1 50 0 50 500 0 0 0\n")
	second, err := s.CPU()
	require.NoError(t, err)
	assert.InDelta(t, 50.0, second.Usage, 1e-9)

	// without a previous reading usage is measured since boot
	s.ClearCPUCache()
	third, err := s.CPU()
	require.NoError(t, err)
	assert.InDelta(t, 25.0, third.Usage, 1e-9)
}

func TestStatsCollectorCPUMissingAggregate(t *testing.T) {
	s := NewStatsCollector()
	s.openStat = readerOf("intr 1\n")
	_, err := s.CPU()
	assert.Error(t, err)

	// per-core lines alone are not enough
	s.openStat = readerOf("cpu0 50 0 50 400 0 0 0\ncpu1 50 0 50 400 0 0 0\n")
	_, err = s.CPU()
	assert.Error(t, err)
	assert.Empty(t, s.cpuCache.GetPreviousStats())
}

func TestStatsCollectorDisk(t *testing.T) {
	s := NewStatsCollector()
	s.statfs = func(path string, buf *syscall.Statfs_t) error {
		buf.Blocks = 100
		buf.Bavail = 25
		buf.Bsize = 4096
		return nil
	}

	d, err := s.Disk("/data")
	require.NoError(t, err)
	assert.Equal(t, "/data", d.Mountpoint)
	assert.Equal(t, uint64(100*4096), d.Total)
	assert.Equal(t, uint64(75*4096), d.Used)
	assert.InDelta(t, 75.0, d.UsagePercent, 1e-9)

	s.statfs = func(string, *syscall.Statfs_t) error { return syscall.ENOENT }
	_, err = s.Disk("/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statfs /missing")
}

func TestNewProvider(t *testing.T) {
	p, err := New(SourceProcfs)
	require.NoError(t, err)
	assert.IsType(t, &StatsCollector{}, p)

	p, err = New("")
	require.NoError(t, err)
	assert.IsType(t, &PsutilCollector{}, p)

	_, err = New("wmi")
	assert.Error(t, err)
}
