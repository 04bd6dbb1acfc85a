// Package parser turns a raw Prometheus-text metrics blob from a single node
// into a structured NodeMetrics record.
package parser

import (
	"strconv"
	"strings"

	"github.com/dm/antmon/internal/model"
)

// Metric names exposed by a node. Bandwidth carries a direction label;
// the three error families may appear as multiple same-named lines whose
// values are summed.
const (
	metricUptime            = "ant_node_uptime"
	metricMemoryUsedMB      = "ant_networking_process_memory_used_mb"
	metricCPUPercent        = "ant_networking_process_cpu_usage_percentage"
	metricConnectedPeers    = "ant_networking_connected_peers"
	metricRoutingTablePeers = "ant_networking_peers_in_routing_table"
	metricNetworkSize       = "ant_networking_estimated_network_size"
	metricRecordsStored     = "ant_networking_records_stored"
	metricPutRecordErrors   = "ant_node_put_record_err_total"
	metricRewardBalance     = "ant_node_current_reward_wallet_balance"

	metricBandwidthPrefix     = "libp2p_bandwidth_bytes_total"
	metricIncomingConnPrefix  = "libp2p_swarm_connections_incoming_error_total"
	metricOutgoingConnPrefix  = "libp2p_swarm_outgoing_connection_error_total"
	metricKadClosestErrPrefix = "libp2p_kad_query_result_get_closest_peers_error_total"

	labelInbound  = `direction="Inbound"`
	labelOutbound = `direction="Outbound"`
)

// counterSum accumulates a metric family that is emitted as multiple
// same-named lines. The sum is only meaningful once at least one line of the
// family has been seen, even if every value on it was 0.
type counterSum struct {
	total uint64
	seen  bool
}

func (c *counterSum) add(valueStr string) {
	c.seen = true
	if v, err := strconv.ParseUint(valueStr, 10, 64); err == nil {
		c.total += v
	}
}

func (c *counterSum) value() *uint64 {
	if !c.seen {
		return nil
	}
	return model.Uint64Ptr(c.total)
}

// Parse extracts the recognized metrics from raw exposition text. Lines
// starting with '#' and blank lines are skipped; the last whitespace token on
// a line is its value. A field whose value fails to parse stays absent;
// unrecognized names are ignored. Parse never fails — worst case it returns
// an all-absent NodeMetrics. Speed and chart fields are always absent here;
// the engine fills them in.
func Parse(raw string) model.NodeMetrics {
	var m model.NodeMetrics
	var incoming, outgoing, kadClosest counterSum

	for _, line := range strings.Split(raw, "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		name := parts[0]
		valueStr := parts[len(parts)-1]

		switch {
		case name == metricUptime:
			m.UptimeSeconds = parseUint(valueStr)
		case name == metricMemoryUsedMB:
			m.MemoryUsedMB = parseFloat(valueStr)
		case name == metricCPUPercent:
			m.CPUUsagePercent = parseFloat(valueStr)
		case name == metricConnectedPeers:
			m.ConnectedPeers = parseUint(valueStr)
		case name == metricRoutingTablePeers:
			m.PeersInRoutingTable = parseUint(valueStr)
		case name == metricNetworkSize:
			m.EstimatedNetworkSize = parseUint(valueStr)
		case name == metricRecordsStored:
			m.RecordsStored = parseUint(valueStr)
		case name == metricPutRecordErrors:
			m.PutRecordErrors = parseUint(valueStr)
		case name == metricRewardBalance:
			m.RewardWalletBalance = parseUint(valueStr)
		case strings.HasPrefix(name, metricBandwidthPrefix):
			if strings.Contains(line, labelInbound) {
				m.BandwidthInboundBytes = parseUint(valueStr)
			} else if strings.Contains(line, labelOutbound) {
				m.BandwidthOutboundBytes = parseUint(valueStr)
			}
		case strings.HasPrefix(name, metricIncomingConnPrefix):
			incoming.add(valueStr)
		case strings.HasPrefix(name, metricOutgoingConnPrefix):
			outgoing.add(valueStr)
		case strings.HasPrefix(name, metricKadClosestErrPrefix):
			kadClosest.add(valueStr)
		}
	}

	m.IncomingConnectionErrors = incoming.value()
	m.OutgoingConnectionErrors = outgoing.value()
	m.KadGetClosestPeersErrors = kadClosest.value()

	return m
}

func parseUint(s string) *uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
