package metrics

import (
	"runtime"
	"time"

	"showrunner/internal/logging"
)

// StatsProvider interface for collecting stats
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the current statistics
type Stats struct {
	PlaylistSize    int
	PlaylistVersion uint64
	Played          int
	Uptime          time.Duration
}

// Collector periodically collects and updates metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	c.collectMemoryMetrics()

	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	PlaylistSize.Set(float64(stats.PlaylistSize))
	PlaylistVersion.Set(float64(stats.PlaylistVersion))
	PresentationsPlayed.Set(float64(stats.Played))
	SequencerUptimeSeconds.Set(stats.Uptime.Seconds())

	logging.Debug("Metrics collected: playlist=%d, version=%d, played=%d",
		stats.PlaylistSize, stats.PlaylistVersion, stats.Played)
}

func (c *Collector) collectMemoryMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	GoMemAllocBytes.Set(float64(m.Alloc))
	GoMemSysBytes.Set(float64(m.Sys))
	GoGCRuns.Set(float64(m.NumGC))
}
