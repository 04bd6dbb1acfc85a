package tui

import (
	"time"

	"github.com/dm/antmon/internal/discovery"
	"github.com/dm/antmon/internal/engine"
)

// snapshotMsg delivers the engine state rebuilt after a poll cycle.
type snapshotMsg struct{ Snapshot engine.Snapshot }

// discoveryMsg delivers the outcome of a filesystem rescan.
type discoveryMsg struct {
	Dirs      []string
	Endpoints []discovery.Endpoint
	Err       error
}

// pollTickMsg triggers the next scheduled poll.
type pollTickMsg time.Time

// discoverTickMsg triggers the next scheduled filesystem rescan.
type discoverTickMsg time.Time
