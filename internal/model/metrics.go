package model

// NodeMetrics holds the most recent parsed metrics for a single node. Scalar
// fields are pointers so that a metric missing from one scrape is
// distinguishable from a genuine zero.
type NodeMetrics struct {
	UptimeSeconds        *uint64
	MemoryUsedMB         *float64
	CPUUsagePercent      *float64
	ConnectedPeers       *uint64
	PeersInRoutingTable  *uint64
	EstimatedNetworkSize *uint64

	BandwidthInboundBytes  *uint64
	BandwidthOutboundBytes *uint64

	RecordsStored       *uint64
	PutRecordErrors     *uint64
	RewardWalletBalance *uint64

	IncomingConnectionErrors *uint64
	OutgoingConnectionErrors *uint64
	KadGetClosestPeersErrors *uint64

	// Derived by the engine from consecutive bandwidth counter samples;
	// never set by the parser.
	SpeedInBps  *float64
	SpeedOutBps *float64
	ChartIn     []ChartPoint
	ChartOut    []ChartPoint
}

// ChartPoint is a single (index, value) pair in a chart series.
type ChartPoint struct {
	Index float64
	Value float64
}

// NodeStatus describes where a node is in its poll lifecycle. It is derived
// from registry and latest-result state, never stored.
type NodeStatus int

const (
	// StatusUnknown means the directory is known but no metrics URL has
	// been discovered yet.
	StatusUnknown NodeStatus = iota
	// StatusFetching means a URL is assigned but no poll has completed.
	StatusFetching
	// StatusRunning means the latest poll succeeded.
	StatusRunning
	// StatusStopped means the latest poll failed.
	StatusStopped
)

// String returns the display label for the status.
func (s NodeStatus) String() string {
	switch s {
	case StatusFetching:
		return "Fetching"
	case StatusRunning:
		return "Running"
	case StatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// FleetSummary holds fleet-wide aggregates recomputed on every tick from the
// latest successful results only.
type FleetSummary struct {
	TotalCPUPercent  float64
	TotalSpeedInBps  float64
	TotalSpeedOutBps float64

	TotalDataInBytes  uint64
	TotalDataOutBytes uint64
	TotalRecords      uint64
	TotalRewards      uint64
	TotalLivePeers    uint64

	AllocatedStorageBytes uint64
	UsedStorageBytes      uint64
	// DegradedStores lists record-store directories whose size sampling
	// failed this tick; their contribution to UsedStorageBytes is 0, so
	// the total stays numeric but may undercount.
	DegradedStores []string
}

// Uint64Ptr returns a pointer to v. Convenience for optional metric fields.
func Uint64Ptr(v uint64) *uint64 { return &v }

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }
