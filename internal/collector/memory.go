package collector

import (
	"bufio"
	"strconv"
	"strings"

	"emperror.dev/errors"

	"github.com/prabalesh/ticktop/internal/models"
)

func (s *StatsCollector) Memory() (models.MemoryStats, error) {
	f, err := s.openMeminfo()
	if err != nil {
		return models.MemoryStats{}, errors.Wrap(err, "read /proc/meminfo")
	}
	defer f.Close()

	memInfo := make(map[string]uint64)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		key := strings.TrimSuffix(fields[0], ":")
		value, err := strconv.ParseUint(fields[1], 10, 64)
		if err == nil {
			memInfo[key] = value * 1024 // kB to bytes
		}
	}
	if err := scanner.Err(); err != nil {
		return models.MemoryStats{}, errors.Wrap(err, "scan /proc/meminfo")
	}

	total, ok := memInfo["MemTotal"]
	if !ok || total == 0 {
		return models.MemoryStats{}, errors.New("/proc/meminfo: MemTotal missing")
	}

	available, ok := memInfo["MemAvailable"]
	if !ok {
		// kernels before 3.14
		available = memInfo["MemFree"] + memInfo["Buffers"] + memInfo["Cached"]
	}
	if available > total {
		available = total
	}
	used := total - available

	swapTotal := memInfo["SwapTotal"]
	swapFree := memInfo["SwapFree"]
	if swapFree > swapTotal {
		swapFree = swapTotal
	}
	swapUsed := swapTotal - swapFree

	return models.MemoryStats{
		Total:        total,
		Used:         used,
		Free:         memInfo["MemFree"],
		Available:    available,
		UsagePercent: percentOf(used, total),
		SwapTotal:    swapTotal,
		SwapUsed:     swapUsed,
		SwapPercent:  percentOf(swapUsed, swapTotal),
	}, nil
}

func percentOf(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}
