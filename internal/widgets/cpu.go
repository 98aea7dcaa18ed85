package widgets

import (
	"emperror.dev/errors"

	"github.com/prabalesh/ticktop/internal/schedule"
	"github.com/prabalesh/ticktop/internal/series"
)

// CPUWidget charts aggregate processor usage.
type CPUWidget struct {
	graph
	reader CPUReader
}

func NewCPUWidget(interval schedule.Ratio, history int, reader CPUReader) *CPUWidget {
	return &CPUWidget{
		graph: graph{
			id:       "cpu",
			title:    " CPU Usage ",
			interval: interval,
			store:    series.NewStore(history, "CPU"),
			summary:  percentSummary,
		},
		reader: reader,
	}
}

func (w *CPUWidget) Update() error {
	c, err := w.reader.CPU()
	if err != nil {
		w.store.MarkStale()
		return errors.Wrap(err, "sample cpu")
	}

	return w.store.Append([]series.Reading{{Percent: c.Usage}})
}
