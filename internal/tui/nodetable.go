package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/antmon/internal/engine"
	"github.com/dm/antmon/internal/format"
	"github.com/dm/antmon/internal/model"
)

// rowSparkWidth is the width of the per-node speed sparklines.
const rowSparkWidth = 12

// renderNodeTable renders one row per known node, in the snapshot's
// directory order.
func renderNodeTable(app *App) string {
	snap := app.snapshot
	if len(snap.Nodes) == 0 {
		return StyleDim.Render("No nodes discovered yet. Waiting for the next scan...")
	}

	var b strings.Builder
	header := fmt.Sprintf("%-14s %-9s %8s %7s %7s %6s %12s %-*s %12s %-*s %8s %8s",
		"NODE", "STATUS", "UPTIME", "MEM MB", "CPU", "PEERS",
		"IN", rowSparkWidth, "", "OUT", rowSparkWidth, "", "RECS", "REW")
	b.WriteString(StyleTableHeader.Render(header))
	b.WriteString("\n")

	for _, n := range snap.Nodes {
		b.WriteString(renderNodeRow(n))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderNodeRow(n engine.NodeView) string {
	status := statusStyle(n.Status).Render(fmt.Sprintf("%-9s", n.Status))

	// A stopped or still-fetching node has no metrics; render every field
	// as absent rather than special-casing the row shape.
	m := n.Metrics
	if m == nil {
		m = &model.NodeMetrics{}
	}

	row := fmt.Sprintf("%-14s %s %8s %7s %7s %6s %12s %s %12s %s %8s %8s",
		truncate(n.Name, 14),
		status,
		optUptime(m.UptimeSeconds),
		optFloat(m.MemoryUsedMB),
		optPercent(m.CPUUsagePercent),
		optUint(m.ConnectedPeers),
		optSpeed(m.SpeedInBps),
		RenderSparkline(n.SpeedInHistory, rowSparkWidth, colorCyan),
		optSpeed(m.SpeedOutBps),
		RenderSparkline(n.SpeedOutHistory, rowSparkWidth, colorPurple),
		optUint(m.RecordsStored),
		optUint(m.RewardWalletBalance),
	)

	if n.Status == model.StatusStopped && n.ErrMsg != "" {
		row += "  " + StyleError.Render(truncate(n.ErrMsg, 48))
	}
	return StyleTableRow.Render(row)
}

func statusStyle(s model.NodeStatus) lipgloss.Style {
	switch s {
	case model.StatusRunning:
		return StyleStatusRunning
	case model.StatusStopped:
		return StyleStatusStopped
	case model.StatusFetching:
		return StyleStatusFetching
	default:
		return StyleStatusUnknown
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func optUptime(v *uint64) string {
	if v == nil {
		return "-"
	}
	return format.Uptime(*v)
}

func optUint(v *uint64) string {
	if v == nil {
		return "-"
	}
	return format.Number(*v)
}

func optFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func optPercent(v *float64) string {
	if v == nil {
		return "-"
	}
	return format.Percent(*v)
}

func optSpeed(v *float64) string {
	if v == nil {
		return "-"
	}
	return format.Speed(*v)
}
