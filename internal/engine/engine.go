// Package engine owns all mutable monitoring state: the node registry, the
// latest and previous metric snapshots, bounded speed history per node and
// fleet-wide, and the recomputed fleet summary. External code only submits
// discovery and poll results and reads immutable snapshots.
package engine

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dm/antmon/internal/discovery"
	"github.com/dm/antmon/internal/logger"
	"github.com/dm/antmon/internal/model"
	"github.com/dm/antmon/internal/parser"
	"github.com/dm/antmon/internal/storage"
)

// DefaultStoragePerNodeBytes is the fixed allocation assumed per node with a
// record store (35 GB).
const DefaultStoragePerNodeBytes = 35 * 1_000_000_000

// Config carries the deployment-specific filesystem layout and sizing knobs.
type Config struct {
	// RecordStoreSubdir is the data directory relative to a node root,
	// e.g. "record_store".
	RecordStoreSubdir string
	// StoragePerNodeBytes is the allocation counted per node that has a
	// record store. Zero falls back to DefaultStoragePerNodeBytes.
	StoragePerNodeBytes uint64
	// HistoryLength caps every speed history series. Zero falls back to
	// the model default of 60 samples.
	HistoryLength int
}

// Target is one (node, URL) pair the driver should poll this tick.
type Target struct {
	Dir  string
	Name string
	URL  string
}

// PollResult is the raw outcome of polling one node. Err nil means Body
// holds the raw exposition text.
type PollResult struct {
	Dir  string
	Body string
	Err  error
}

// outcome is a node's latest poll result: either parsed metrics or an error
// message.
type outcome struct {
	metrics *model.NodeMetrics
	errMsg  string
}

// Engine is the aggregation state machine. All state sits behind one mutex
// so a reader never observes per-node data and a fleet summary from
// different ticks.
type Engine struct {
	mu  sync.RWMutex
	cfg Config
	log logger.Logger

	// Registry: directories are added by discovery and never removed.
	dirs   []string          // sorted node root directories
	names  map[string]string // dir -> display name
	urls   map[string]string // dir -> metrics URL, "" while undiscovered
	stores map[string]string // dir -> record store path, for nodes that have one

	latest   map[string]outcome
	previous map[string]model.NodeMetrics // last successful parse, delta base

	histIn  map[string]*model.SpeedHistory
	histOut map[string]*model.SpeedHistory

	totalIn  *model.SpeedHistory
	totalOut *model.SpeedHistory

	summary model.FleetSummary

	lastUpdate     time.Time
	previousUpdate time.Time
}

// New constructs an empty engine.
func New(cfg Config, log logger.Logger) *Engine {
	if cfg.StoragePerNodeBytes == 0 {
		cfg.StoragePerNodeBytes = DefaultStoragePerNodeBytes
	}
	now := time.Now()
	return &Engine{
		cfg:            cfg,
		log:            log,
		names:          make(map[string]string),
		urls:           make(map[string]string),
		stores:         make(map[string]string),
		latest:         make(map[string]outcome),
		previous:       make(map[string]model.NodeMetrics),
		histIn:         make(map[string]*model.SpeedHistory),
		histOut:        make(map[string]*model.SpeedHistory),
		totalIn:        model.NewSpeedHistory(cfg.HistoryLength),
		totalOut:       model.NewSpeedHistory(cfg.HistoryLength),
		lastUpdate:     now,
		previousUpdate: now,
	}
}

// ReconcileDiscovery merges a discovery pass into the registry. New
// directories are added, changed or newly found URLs are recorded, and nodes
// with an updated URL drop back to the fetching state so the next tick polls
// them fresh. Directories are never removed: a node that disappears from
// discovery simply keeps its last state.
func (e *Engine) ReconcileDiscovery(dirs []string, endpoints []discovery.Endpoint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, dir := range dirs {
		e.addDirLocked(dir, filepath.Base(dir))
	}

	for _, ep := range endpoints {
		e.addDirLocked(ep.Dir, ep.Name)
		if e.urls[ep.Dir] == ep.URL {
			continue
		}
		e.urls[ep.Dir] = ep.URL
		// Stale results from the old address would render as live data.
		delete(e.latest, ep.Dir)
	}
}

// addDirLocked registers a directory if it is new and probes for its record
// store. Caller holds the write lock.
func (e *Engine) addDirLocked(dir, name string) {
	if _, known := e.names[dir]; !known {
		e.names[dir] = name
		e.dirs = append(e.dirs, dir)
		sort.Strings(e.dirs)
	}
	if _, ok := e.stores[dir]; !ok && e.cfg.RecordStoreSubdir != "" {
		store := filepath.Join(dir, e.cfg.RecordStoreSubdir)
		if info, err := os.Stat(store); err == nil && info.IsDir() {
			e.stores[dir] = store
		}
	}
}

// Targets returns the nodes with a known URL, sorted by directory.
func (e *Engine) Targets() []Target {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var targets []Target
	for _, dir := range e.dirs {
		if url := e.urls[dir]; url != "" {
			targets = append(targets, Target{Dir: dir, Name: e.names[dir], URL: url})
		}
	}
	return targets
}

// ApplyPollResults folds one tick's fetch results into the engine. Speeds are
// derived from the delta against each node's previous successful counters;
// failed polls record their error and contribute zero-speed samples so the
// history series stay continuous. The fleet summary is rebuilt from the nodes
// whose latest result succeeded. The record-store walk runs before the state
// lock is taken so a large store never blocks renders.
func (e *Engine) ApplyPollResults(results []PollResult, now time.Time) {
	usedBytes, degraded := e.sampleStorage()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Non-positive elapsed time (clock anomaly or a repeated call) skips
	// speed computation instead of dividing by zero.
	deltaT := now.Sub(e.previousUpdate).Seconds()

	for _, res := range results {
		hIn := e.historyLocked(e.histIn, res.Dir)
		hOut := e.historyLocked(e.histOut, res.Dir)

		if res.Err != nil {
			e.latest[res.Dir] = outcome{errMsg: res.Err.Error()}
			// Failed polls contribute zero bandwidth, not a gap.
			hIn.Push(0)
			hOut.Push(0)
			// previous is kept: the last good counters remain the
			// delta base for the next successful poll.
			continue
		}

		m := parser.Parse(res.Body)

		if prev, ok := e.previous[res.Dir]; ok && deltaT > 0 {
			m.SpeedInBps = counterSpeed(m.BandwidthInboundBytes, prev.BandwidthInboundBytes, deltaT)
			m.SpeedOutBps = counterSpeed(m.BandwidthOutboundBytes, prev.BandwidthOutboundBytes, deltaT)
		}

		hIn.Push(speedSample(m.SpeedInBps))
		hOut.Push(speedSample(m.SpeedOutBps))
		m.ChartIn = hIn.Points()
		m.ChartOut = hOut.Points()

		e.previous[res.Dir] = m
		e.latest[res.Dir] = outcome{metrics: &m}
	}

	e.recomputeSummaryLocked(usedBytes, degraded)

	e.previousUpdate = e.lastUpdate
	e.lastUpdate = now
}

// counterSpeed derives bytes/sec from two cumulative counter samples. A
// regression (reset or rollover) yields 0, never a negative speed. When
// either sample is absent the speed stays absent.
func counterSpeed(curr, prev *uint64, deltaT float64) *float64 {
	if curr == nil || prev == nil {
		return nil
	}
	if *curr < *prev {
		return model.Float64Ptr(0)
	}
	return model.Float64Ptr(float64(*curr-*prev) / deltaT)
}

// speedSample converts a derived speed into a history sample: absent speeds
// and negatives both floor to 0.
func speedSample(speed *float64) uint64 {
	if speed == nil || *speed <= 0 {
		return 0
	}
	return uint64(*speed)
}

func (e *Engine) historyLocked(m map[string]*model.SpeedHistory, dir string) *model.SpeedHistory {
	h, ok := m[dir]
	if !ok {
		h = model.NewSpeedHistory(e.cfg.HistoryLength)
		m[dir] = h
	}
	return h
}

// sampleStorage walks every known record store and returns the summed usage
// plus the stores whose walk failed outright. A failed store contributes 0 so
// the fleet total stays numeric; the degraded list lets the display flag the
// undercount.
func (e *Engine) sampleStorage() (uint64, []string) {
	e.mu.RLock()
	paths := make([]string, 0, len(e.stores))
	for _, p := range e.stores {
		paths = append(paths, p)
	}
	e.mu.RUnlock()
	sort.Strings(paths)

	var total uint64
	var degraded []string
	for _, p := range paths {
		size, err := storage.DirSize(p, e.log)
		if err != nil {
			e.log.Warn("cannot size record store %s: %v", p, err)
			degraded = append(degraded, p)
			continue
		}
		total += size
	}
	return total, degraded
}

// recomputeSummaryLocked rebuilds the fleet summary from the latest
// successful results and appends the fleet speed sums to the aggregate
// histories. Caller holds the write lock.
func (e *Engine) recomputeSummaryLocked(usedBytes uint64, degraded []string) {
	var s model.FleetSummary

	for _, out := range e.latest {
		m := out.metrics
		if m == nil {
			continue
		}
		if m.CPUUsagePercent != nil {
			s.TotalCPUPercent += *m.CPUUsagePercent
		}
		if m.SpeedInBps != nil {
			s.TotalSpeedInBps += *m.SpeedInBps
		}
		if m.SpeedOutBps != nil {
			s.TotalSpeedOutBps += *m.SpeedOutBps
		}
		if m.BandwidthInboundBytes != nil {
			s.TotalDataInBytes += *m.BandwidthInboundBytes
		}
		if m.BandwidthOutboundBytes != nil {
			s.TotalDataOutBytes += *m.BandwidthOutboundBytes
		}
		if m.RecordsStored != nil {
			s.TotalRecords += *m.RecordsStored
		}
		if m.RewardWalletBalance != nil {
			s.TotalRewards += *m.RewardWalletBalance
		}
		if m.ConnectedPeers != nil {
			s.TotalLivePeers += *m.ConnectedPeers
		}
	}

	s.AllocatedStorageBytes = uint64(len(e.stores)) * e.cfg.StoragePerNodeBytes
	s.UsedStorageBytes = usedBytes
	s.DegradedStores = degraded

	e.totalIn.Push(speedSample(&s.TotalSpeedInBps))
	e.totalOut.Push(speedSample(&s.TotalSpeedOutBps))

	e.summary = s
}
