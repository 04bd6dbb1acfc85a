package tui

import (
	"fmt"
	"strings"

	"github.com/dm/antmon/internal/format"
	"github.com/dm/antmon/internal/model"
)

// headerSparkWidth is the width of the two aggregate bandwidth sparklines.
const headerSparkWidth = 20

// renderHeader renders the fleet summary bar: node counts, total speeds with
// aggregate sparklines, storage usage, and totals for records, rewards and
// peers.
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 120
	}

	snap := app.snapshot
	sum := snap.Summary

	running := 0
	for _, n := range snap.Nodes {
		if n.Status == model.StatusRunning {
			running++
		}
	}

	storage := fmt.Sprintf("Store %s / %s",
		format.Bytes(sum.UsedStorageBytes), format.Bytes(sum.AllocatedStorageBytes))
	if len(sum.DegradedStores) > 0 {
		storage = StyleWarn.Render(storage + " (partial)")
	}

	parts := []string{
		fmt.Sprintf("Nodes %d/%d", running, len(snap.Nodes)),
		fmt.Sprintf("CPU %s", format.Percent(sum.TotalCPUPercent)),
		fmt.Sprintf("In %s %s", format.Speed(sum.TotalSpeedInBps),
			RenderSparkline(snap.TotalInHistory, headerSparkWidth, colorCyan)),
		fmt.Sprintf("Out %s %s", format.Speed(sum.TotalSpeedOutBps),
			RenderSparkline(snap.TotalOutHistory, headerSparkWidth, colorPurple)),
		storage,
		fmt.Sprintf("Recs %s", format.Number(sum.TotalRecords)),
		fmt.Sprintf("Rewards %s", format.Number(sum.TotalRewards)),
		fmt.Sprintf("Peers %s", format.Number(sum.TotalLivePeers)),
	}

	line := strings.Join(parts, "  │  ")
	if app.lastDiscoErr != nil {
		line += "  " + StyleError.Render("discovery: "+app.lastDiscoErr.Error())
	}

	return StyleHeader.Width(width).Render(line)
}
