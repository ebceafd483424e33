package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	EntriesSeen        int64
	DuplicatesFiltered int64
	ArticlesInserted   int64
	FetchErrors        int64
	InsertErrors       int64
	ArticlesRescored   int64
	RescoreErrors      int64

	// Timings
	LastCycleTime    time.Duration
	AverageCycleTime time.Duration
	TotalCycleTime   time.Duration
	CycleCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddEntriesSeen(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesSeen += int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementArticlesInserted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesInserted++
}

func (m *Metrics) IncrementFetchErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchErrors++
}

func (m *Metrics) IncrementInsertErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertErrors++
}

func (m *Metrics) IncrementArticlesRescored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesRescored++
}

func (m *Metrics) IncrementRescoreErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RescoreErrors++
}

func (m *Metrics) RecordCycleTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastCycleTime = duration
	m.TotalCycleTime += duration
	m.CycleCount++

	if m.CycleCount > 0 {
		m.AverageCycleTime = m.TotalCycleTime / time.Duration(m.CycleCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"entries_seen":          m.EntriesSeen,
		"duplicates_filtered":   m.DuplicatesFiltered,
		"articles_inserted":     m.ArticlesInserted,
		"fetch_errors":          m.FetchErrors,
		"insert_errors":         m.InsertErrors,
		"articles_rescored":     m.ArticlesRescored,
		"rescore_errors":        m.RescoreErrors,
		"last_cycle_time_ms":    m.LastCycleTime.Milliseconds(),
		"average_cycle_time_ms": m.AverageCycleTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
