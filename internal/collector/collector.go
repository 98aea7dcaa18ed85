package collector

import (
	"io"
	"os"
	"syscall"

	"emperror.dev/errors"

	"github.com/prabalesh/ticktop/internal/models"
)

// Stat sources selectable from configuration.
const (
	SourcePsutil = "psutil"
	SourceProcfs = "procfs"
)

// Provider answers synchronous resource-stat queries.
type Provider interface {
	Memory() (models.MemoryStats, error)
	CPU() (models.CPUStats, error)
	Disk(mountpoint string) (models.DiskStats, error)
}

// New returns the provider for source.
func New(source string) (Provider, error) {
	switch source {
	case "", SourcePsutil:
		return NewPsutilCollector(), nil
	case SourceProcfs:
		return NewStatsCollector(), nil
	default:
		return nil, errors.Errorf("unknown stat source %q", source)
	}
}

// StatsCollector reads /proc and statfs directly.
type StatsCollector struct {
	cpuCache *CPUCache

	// Overridable for tests.
	openMeminfo func() (io.ReadCloser, error)
	openStat    func() (io.ReadCloser, error)
	statfs      func(path string, buf *syscall.Statfs_t) error
}

func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		cpuCache: NewCPUCache(),
		openMeminfo: func() (io.ReadCloser, error) {
			return os.Open("/proc/meminfo")
		},
		openStat: func() (io.ReadCloser, error) {
			return os.Open("/proc/stat")
		},
		statfs: syscall.Statfs,
	}
}

func (s *StatsCollector) ClearCPUCache() {
	s.cpuCache.Clear()
}
