package widgets

import (
	"emperror.dev/errors"

	"github.com/prabalesh/ticktop/internal/schedule"
	"github.com/prabalesh/ticktop/internal/series"
)

// DiskWidget charts filesystem usage, one series per mountpoint.
type DiskWidget struct {
	graph
	mounts []string
	reader DiskReader
}

func NewDiskWidget(interval schedule.Ratio, history int, mounts []string, reader DiskReader) *DiskWidget {
	if len(mounts) == 0 {
		mounts = []string{"/"}
	}
	mounts = append([]string(nil), mounts...)

	return &DiskWidget{
		graph: graph{
			id:       "disk",
			title:    " Disk Usage ",
			interval: interval,
			store:    series.NewStore(history, mounts...),
			summary:  bytesSummary,
		},
		mounts: mounts,
		reader: reader,
	}
}

// Update queries every mount before touching the store, so one failing
// mount leaves all series unchanged.
func (w *DiskWidget) Update() error {
	readings := make([]series.Reading, 0, len(w.mounts))
	for _, m := range w.mounts {
		d, err := w.reader.Disk(m)
		if err != nil {
			w.store.MarkStale()
			return errors.Wrapf(err, "sample disk %s", m)
		}
		readings = append(readings, series.Reading{Total: d.Total, Used: d.Used, Percent: d.UsagePercent})
	}

	return w.store.Append(readings)
}
