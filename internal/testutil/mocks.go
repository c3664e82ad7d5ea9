package testutil

import (
	"context"
	"sld/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were recorded at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu         sync.Mutex
	Counters   map[string]int
	Durations  int
	Suppressed map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Counters:   make(map[string]int),
		Suppressed: make(map[string]int),
	}
}

func (m *MockMetrics) inc(key string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counters[key] += n
}

func (m *MockMetrics) Get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counters[key]
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.inc("requests:"+endpoint, 1)
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncMessagesScanned() {
	m.inc("scanned", 1)
}

func (m *MockMetrics) IncCandidates(kind string, count int) {
	m.inc("candidates:"+kind, count)
}

func (m *MockMetrics) IncResolutions(outcome string) {
	m.inc("resolutions:"+outcome, 1)
}

func (m *MockMetrics) ObserveResolveDuration(_ time.Duration) {}

func (m *MockMetrics) IncRepliesSent() {
	m.inc("replies", 1)
}

func (m *MockMetrics) IncStoreOps(collection string, result string) {
	m.inc("store:"+collection+":"+result, 1)
}

func (m *MockMetrics) IncImportItems(result string, count int) {
	m.inc("import:"+result, count)
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Durations++
}
func (m *MockMetrics) IncRepliesSuppressed(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Suppressed[reason]++
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockSteamClient implements steam.SteamClientInterface with a fixed
// vanity table. Calls records every lookup in order.
type MockSteamClient struct {
	mu     sync.Mutex
	Vanity map[string]string
	Err    error
	Calls  []string
}

func NewMockSteamClient() *MockSteamClient {
	return &MockSteamClient{Vanity: make(map[string]string)}
}

func (m *MockSteamClient) ResolveVanity(_ context.Context, vanity string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, vanity)
	if m.Err != nil {
		return "", m.Err
	}
	if id, ok := m.Vanity[vanity]; ok {
		return id, nil
	}
	return "", ErrVanityUnknown
}

func (m *MockSteamClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// ErrVanityUnknown mirrors the uniform resolution failure of the real
// client.
var ErrVanityUnknown = errVanity{}

type errVanity struct{}

func (errVanity) Error() string { return "could not resolve" }
