package engine

import (
	"time"

	"github.com/dm/antmon/internal/model"
)

// NodeView is the read-only per-node slice of a snapshot.
type NodeView struct {
	Dir    string
	Name   string
	URL    string
	Status model.NodeStatus
	// ErrMsg is set when Status is StatusStopped.
	ErrMsg  string
	Metrics *model.NodeMetrics

	SpeedInHistory  []uint64
	SpeedOutHistory []uint64

	// StoreDegraded marks nodes whose record store could not be sized on
	// the last tick.
	StoreDegraded bool
}

// Snapshot is a self-contained view of the whole engine state at one instant.
// The slices it carries are freshly allocated, so holding a snapshot across
// later ticks is safe.
type Snapshot struct {
	Nodes   []NodeView
	Summary model.FleetSummary

	TotalInHistory  []uint64
	TotalOutHistory []uint64

	LastUpdate time.Time
}

// Snapshot captures the current state for the presentation layer. Nodes are
// sorted by directory.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	degraded := make(map[string]bool, len(e.summary.DegradedStores))
	for _, p := range e.summary.DegradedStores {
		degraded[p] = true
	}

	nodes := make([]NodeView, 0, len(e.dirs))
	for _, dir := range e.dirs {
		view := NodeView{
			Dir:           dir,
			Name:          e.names[dir],
			URL:           e.urls[dir],
			Status:        e.statusLocked(dir),
			StoreDegraded: degraded[e.stores[dir]],
		}
		if out, ok := e.latest[dir]; ok {
			view.ErrMsg = out.errMsg
			if out.metrics != nil {
				m := *out.metrics
				view.Metrics = &m
			}
		}
		if h, ok := e.histIn[dir]; ok {
			view.SpeedInHistory = h.Values()
		}
		if h, ok := e.histOut[dir]; ok {
			view.SpeedOutHistory = h.Values()
		}
		nodes = append(nodes, view)
	}

	summary := e.summary
	summary.DegradedStores = append([]string(nil), e.summary.DegradedStores...)

	return Snapshot{
		Nodes:           nodes,
		Summary:         summary,
		TotalInHistory:  e.totalIn.Values(),
		TotalOutHistory: e.totalOut.Values(),
		LastUpdate:      e.lastUpdate,
	}
}

// statusLocked derives a node's lifecycle state from registry and latest
// contents. Caller holds at least the read lock.
func (e *Engine) statusLocked(dir string) model.NodeStatus {
	if e.urls[dir] == "" {
		return model.StatusUnknown
	}
	out, ok := e.latest[dir]
	switch {
	case !ok:
		return model.StatusFetching
	case out.metrics != nil:
		return model.StatusRunning
	default:
		return model.StatusStopped
	}
}
