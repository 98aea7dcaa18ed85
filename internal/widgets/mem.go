package widgets

import (
	"emperror.dev/errors"

	"github.com/prabalesh/ticktop/internal/schedule"
	"github.com/prabalesh/ticktop/internal/series"
)

const (
	memMain = "Main"
	memSwap = "Swap"
)

// MemWidget charts physical memory (primary) and swap (secondary) usage.
type MemWidget struct {
	graph
	reader MemoryReader
}

// NewMemWidget keeps up to history samples per series; history below
// series.MinCapacity is raised to it.
func NewMemWidget(interval schedule.Ratio, history int, reader MemoryReader) *MemWidget {
	return &MemWidget{
		graph: graph{
			id:       "mem",
			title:    " Memory Usage ",
			interval: interval,
			store:    series.NewStore(history, memMain, memSwap),
			summary:  bytesSummary,
		},
		reader: reader,
	}
}

func (w *MemWidget) Update() error {
	m, err := w.reader.Memory()
	if err != nil {
		w.store.MarkStale()
		return errors.Wrap(err, "sample memory")
	}

	return w.store.Append([]series.Reading{
		{Total: m.Total, Used: m.Used, Percent: m.UsagePercent},
		{Total: m.SwapTotal, Used: m.SwapUsed, Percent: m.SwapPercent},
	})
}
