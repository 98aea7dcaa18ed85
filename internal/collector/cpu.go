package collector

import (
	"bufio"
	"strconv"
	"strings"

	"emperror.dev/errors"

	"github.com/prabalesh/ticktop/internal/models"
)

// CPU reports usage since the previous call; the first call reports usage
// since boot.
func (s *StatsCollector) CPU() (models.CPUStats, error) {
	f, err := s.openStat()
	if err != nil {
		return models.CPUStats{}, errors.Wrap(err, "read /proc/stat")
	}
	defer f.Close()

	current := make(map[string]CPUTimes)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		// per-core lines are "cpuN ..."; only the aggregate is charted
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}
		name, times, ok := parseCPULine(line)
		if !ok {
			continue
		}
		current[name] = times
	}
	if err := scanner.Err(); err != nil {
		return models.CPUStats{}, errors.Wrap(err, "scan /proc/stat")
	}

	overall, ok := current["cpu"]
	if !ok {
		return models.CPUStats{}, errors.New("/proc/stat: aggregate cpu line missing")
	}

	previous := s.cpuCache.GetPreviousStats()
	s.cpuCache.SetPreviousStats(current)

	return models.CPUStats{Usage: usage(previous["cpu"], overall)}, nil
}

// parseCPULine reads "cpuN user nice system idle iowait irq softirq ...".
func parseCPULine(line string) (string, CPUTimes, bool) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return "", CPUTimes{}, false
	}

	var times []uint64
	for i := 1; i < len(fields) && i < 8; i++ {
		if val, err := strconv.ParseUint(fields[i], 10, 64); err == nil {
			times = append(times, val)
		}
	}
	if len(times) < 4 {
		return "", CPUTimes{}, false
	}

	var t CPUTimes
	for i, v := range times {
		t.Total += v
		if i == 3 || i == 4 { // idle, iowait
			t.Idle += v
		}
	}
	return fields[0], t, true
}

func usage(prev, cur CPUTimes) float64 {
	total := cur.Total
	idle := cur.Idle
	if cur.Total > prev.Total && cur.Idle >= prev.Idle {
		total = cur.Total - prev.Total
		idle = cur.Idle - prev.Idle
	}
	if total == 0 || idle > total {
		return 0
	}
	return float64(total-idle) / float64(total) * 100
}
