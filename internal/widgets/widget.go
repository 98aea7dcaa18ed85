// Package widgets implements the dashboard's telemetry widgets. Every widget
// samples on a declared rational cadence and renders a scrolling braille
// chart of its series plus one summary line per series.
package widgets

import (
	"github.com/prabalesh/ticktop/internal/draw"
	"github.com/prabalesh/ticktop/internal/models"
	"github.com/prabalesh/ticktop/internal/schedule"
)

// Updatable samples its resource when the host scheduler says it is due.
type Updatable interface {
	// Update takes one sample. On error the widget's state is unchanged apart
	// from its series being marked stale.
	Update() error
	// UpdateInterval is the fixed cadence, in host base ticks.
	UpdateInterval() schedule.Ratio
}

// Renderable draws the widget's current state. Draw must only read state.
type Renderable interface {
	Title() string
	Draw(area draw.Rect, s *draw.Surface)
}

// Widget is what the host dashboard holds.
type Widget interface {
	ID() string
	Updatable
	Renderable
}

// MemoryReader returns physical memory and swap in one query.
type MemoryReader interface {
	Memory() (models.MemoryStats, error)
}

type CPUReader interface {
	CPU() (models.CPUStats, error)
}

type DiskReader interface {
	Disk(mountpoint string) (models.DiskStats, error)
}
