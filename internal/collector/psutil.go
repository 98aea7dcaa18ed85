package collector

import (
	"emperror.dev/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/prabalesh/ticktop/internal/models"
)

// PsutilCollector answers queries through gopsutil. It works on every
// platform gopsutil supports.
type PsutilCollector struct{}

func NewPsutilCollector() *PsutilCollector {
	return &PsutilCollector{}
}

func (p *PsutilCollector) Memory() (models.MemoryStats, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return models.MemoryStats{}, errors.Wrap(err, "query virtual memory")
	}
	sw, err := mem.SwapMemory()
	if err != nil {
		return models.MemoryStats{}, errors.Wrap(err, "query swap memory")
	}

	return models.MemoryStats{
		Total:        vm.Total,
		Used:         vm.Used,
		Free:         vm.Free,
		Available:    vm.Available,
		UsagePercent: vm.UsedPercent,
		SwapTotal:    sw.Total,
		SwapUsed:     sw.Used,
		SwapPercent:  sw.UsedPercent,
	}, nil
}

// CPU uses a zero interval, so usage is measured since the previous call.
func (p *PsutilCollector) CPU() (models.CPUStats, error) {
	overall, err := cpu.Percent(0, false)
	if err != nil {
		return models.CPUStats{}, errors.Wrap(err, "query cpu percent")
	}
	if len(overall) == 0 {
		return models.CPUStats{}, errors.New("query cpu percent: no data")
	}

	return models.CPUStats{Usage: overall[0]}, nil
}

func (p *PsutilCollector) Disk(mountpoint string) (models.DiskStats, error) {
	u, err := disk.Usage(mountpoint)
	if err != nil {
		return models.DiskStats{}, errors.Wrapf(err, "query disk usage %s", mountpoint)
	}

	return models.DiskStats{
		Mountpoint:   u.Path,
		Total:        u.Total,
		Used:         u.Used,
		Free:         u.Free,
		UsagePercent: u.UsedPercent,
	}, nil
}
