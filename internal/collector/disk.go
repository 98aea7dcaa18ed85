package collector

import (
	"syscall"

	"emperror.dev/errors"

	"github.com/prabalesh/ticktop/internal/models"
)

func (s *StatsCollector) Disk(mountpoint string) (models.DiskStats, error) {
	var stat syscall.Statfs_t
	if err := s.statfs(mountpoint, &stat); err != nil {
		return models.DiskStats{}, errors.Wrapf(err, "statfs %s", mountpoint)
	}

	total := uint64(stat.Blocks) * uint64(stat.Bsize)
	free := uint64(stat.Bavail) * uint64(stat.Bsize)
	if free > total {
		free = total
	}
	used := total - free

	return models.DiskStats{
		Mountpoint:   mountpoint,
		Total:        total,
		Used:         used,
		Free:         free,
		UsagePercent: percentOf(used, total),
	}, nil
}
