package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type mockStatsProvider struct {
	mu    sync.Mutex
	stats Stats
	calls int
}

func (m *mockStatsProvider) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.stats
}

func (m *mockStatsProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestNewCollector(t *testing.T) {
	provider := &mockStatsProvider{}
	collector := NewCollector(provider, 5*time.Second)

	if collector == nil {
		t.Fatal("NewCollector returned nil")
	}
	if collector.statsProvider != provider {
		t.Error("statsProvider not set correctly")
	}
	if collector.interval != 5*time.Second {
		t.Errorf("interval = %v, want %v", collector.interval, 5*time.Second)
	}
	if collector.stopChan == nil {
		t.Error("stopChan not initialized")
	}
}

func TestCollectWithNilProvider(t *testing.T) {
	collector := NewCollector(nil, time.Second)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("collect panicked with nil provider: %v", r)
		}
	}()

	collector.collect()

	if testutil.ToFloat64(GoMemSysBytes) == 0 {
		t.Error("memory metrics should be collected without a provider")
	}
}

func TestCollectUpdatesMetrics(t *testing.T) {
	provider := &mockStatsProvider{
		stats: Stats{
			PlaylistSize:    4,
			PlaylistVersion: 9,
			Played:          2,
			Uptime:          90 * time.Second,
		},
	}

	NewCollector(provider, time.Second).collect()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"PlaylistSize", testutil.ToFloat64(PlaylistSize), 4},
		{"PlaylistVersion", testutil.ToFloat64(PlaylistVersion), 9},
		{"PresentationsPlayed", testutil.ToFloat64(PresentationsPlayed), 2},
		{"SequencerUptimeSeconds", testutil.ToFloat64(SequencerUptimeSeconds), 90},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestCollectMemoryMetrics(t *testing.T) {
	collector := NewCollector(nil, time.Second)
	collector.collectMemoryMetrics()

	if testutil.ToFloat64(GoMemAllocBytes) <= 0 {
		t.Error("GoMemAllocBytes should be positive")
	}
	if testutil.ToFloat64(GoMemSysBytes) < testutil.ToFloat64(GoMemAllocBytes) {
		t.Error("GoMemSysBytes should be at least GoMemAllocBytes")
	}
}

func TestCollectorImmediateCollection(t *testing.T) {
	provider := &mockStatsProvider{}
	collector := NewCollector(provider, time.Hour)

	collector.Start()
	defer collector.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for provider.callCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("collector did not collect on start")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCollectorMultipleCollectCycles(t *testing.T) {
	provider := &mockStatsProvider{}
	collector := NewCollector(provider, 10*time.Millisecond)

	collector.Start()
	time.Sleep(100 * time.Millisecond)
	collector.Stop()

	if provider.callCount() < 2 {
		t.Errorf("expected several collections, got %d", provider.callCount())
	}
}

func TestCollectorStopCompletesCleanly(_ *testing.T) {
	collector := NewCollector(&mockStatsProvider{}, time.Millisecond)
	collector.Start()
	time.Sleep(5 * time.Millisecond)
	collector.Stop()
}

func TestStatsProviderInterface(_ *testing.T) {
	var _ StatsProvider = (*mockStatsProvider)(nil)
}
