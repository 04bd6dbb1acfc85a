// Package tui renders the fleet monitor. It owns no metric state: every view
// is drawn from an engine snapshot, and all polling and discovery work runs
// in commands off the update path.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/antmon/internal/client"
	"github.com/dm/antmon/internal/config"
	"github.com/dm/antmon/internal/discovery"
	"github.com/dm/antmon/internal/engine"
	"github.com/dm/antmon/internal/logger"
)

// App is the root Bubble Tea model for antmon.
type App struct {
	engine  *engine.Engine
	fetcher *client.Fetcher
	cfg     config.Config
	log     logger.Logger

	snapshot engine.Snapshot
	// polling guards against overlapping poll commands when a cycle takes
	// longer than the tick interval.
	polling      bool
	lastDiscoErr error

	// Layout
	width, height int

	// UI state
	showHelp bool
}

// NewApp creates the root model. The engine is expected to be seeded with an
// initial discovery pass before the program starts.
func NewApp(eng *engine.Engine, fetcher *client.Fetcher, cfg config.Config, log logger.Logger) *App {
	return &App{
		engine:   eng,
		fetcher:  fetcher,
		cfg:      cfg,
		log:      log,
		snapshot: eng.Snapshot(),
		polling:  true, // Init issues an immediate poll
	}
}

// Init implements tea.Model. Starts the first poll immediately and schedules
// the discovery cycle.
func (app *App) Init() tea.Cmd {
	return tea.Batch(
		app.pollCmd(),
		discoverTick(app.cfg.DiscoveryInterval),
	)
}

// Update implements tea.Model — the single state-mutation entry point.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height

	case snapshotMsg:
		app.polling = false
		app.snapshot = msg.Snapshot
		return app, pollTick(app.cfg.PollInterval)

	case discoveryMsg:
		app.lastDiscoErr = msg.Err
		if msg.Err == nil {
			app.engine.ReconcileDiscovery(msg.Dirs, msg.Endpoints)
			app.snapshot = app.engine.Snapshot()
		}
		return app, discoverTick(app.cfg.DiscoveryInterval)

	case pollTickMsg:
		if app.polling {
			return app, nil
		}
		app.polling = true
		return app, app.pollCmd()

	case discoverTickMsg:
		return app, app.discoverCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			if !app.polling {
				app.polling = true
				return app, app.pollCmd()
			}
		case key.Matches(msg, keys.Discover):
			return app, app.discoverCmd()
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
		}
	}

	return app, nil
}

// View implements tea.Model.
func (app *App) View() string {
	var b strings.Builder
	b.WriteString(renderHeader(app))
	b.WriteString("\n")
	b.WriteString(renderNodeTable(app))
	b.WriteString("\n")
	b.WriteString(renderFooter(app))
	return b.String()
}

// pollCmd fetches all known endpoints and folds the batch into the engine.
// The whole cycle, including the record-store walk, runs in the command
// goroutine so the event loop stays responsive.
func (app *App) pollCmd() tea.Cmd {
	return func() tea.Msg {
		targets := app.engine.Targets()

		urls := make([]string, len(targets))
		for i, tgt := range targets {
			urls[i] = tgt.URL
		}

		results := app.fetcher.FetchAll(context.Background(), urls)

		polls := make([]engine.PollResult, len(results))
		for i, res := range results {
			polls[i] = engine.PollResult{Dir: targets[i].Dir, Body: res.Body}
			if res.Err != nil {
				polls[i].Err = res.Err
			}
		}

		app.engine.ApplyPollResults(polls, time.Now())
		return snapshotMsg{Snapshot: app.engine.Snapshot()}
	}
}

// discoverCmd rescans the filesystem for nodes and their announced URLs.
func (app *App) discoverCmd() tea.Cmd {
	return func() tea.Msg {
		glob := app.cfg.ExpandedGlob()
		dirs, err := discovery.NodeDirs(glob)
		if err != nil {
			return discoveryMsg{Err: err}
		}
		endpoints, err := discovery.MetricsEndpoints(glob, app.cfg.LogRelPath, app.log)
		if err != nil {
			return discoveryMsg{Err: err}
		}
		return discoveryMsg{Dirs: dirs, Endpoints: endpoints}
	}
}

func pollTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

func discoverTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return discoverTickMsg(t)
	})
}
