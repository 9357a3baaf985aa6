// Package state keeps the session journal: the progress history, the
// interaction tallies and a ring buffer of notable events. It is safe for
// concurrent use so the metrics server and headless writers can read it
// while the UI loop writes.
package state

import (
	"math"
	"sync"
	"time"
)

// EventType represents the type of session event.
type EventType string

const (
	EventStarted    EventType = "STARTED"
	EventBaseline   EventType = "BASELINE"
	EventReset      EventType = "RESET"
	EventIdle       EventType = "IDLE"
	EventRefocus    EventType = "REFOCUS"
	EventMilestone  EventType = "MILESTONE"
	EventSaveFailed EventType = "SAVE_FAILED"
)

// Event is a notable moment in the session.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Progress  float64   `json:"progress"`
	Detail    string    `json:"detail,omitempty"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Config holds configuration for the journal.
type Config struct {
	MaxHistoryLen     int
	MaxEvents         int
	MinSampleInterval time.Duration // closer samples replace the newest one
	MilestoneStep     float64       // progress step that raises a milestone event
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:     240,
		MaxEvents:         50,
		MinSampleInterval: time.Second,
		MilestoneStep:     0.01,
	}
}

// Manager handles the session journal with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	cfg Config

	startedAt time.Time
	progress  float64
	hasData   bool

	history []TimeSeries

	// Event log (ring buffer)
	events       []Event
	eventWriteAt int

	interactions map[string]int
	writes       int
	failedWrites int
}

// NewManager creates a new journal.
func NewManager(cfg Config) *Manager {
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = 50
	}
	if cfg.MaxHistoryLen <= 0 {
		cfg.MaxHistoryLen = 240
	}
	return &Manager{
		cfg:          cfg,
		events:       make([]Event, 0, cfg.MaxEvents),
		interactions: make(map[string]int),
	}
}

// Begin records the session start and the progress loaded from storage.
func (m *Manager) Begin(now time.Time, progress float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.startedAt = now
	m.progress = progress
	m.hasData = true
	m.appendSample(now, progress)
	m.addEvent(Event{Type: EventStarted, Timestamp: now, Progress: progress})
}

// RecordProgress appends a progress sample and raises milestone events.
func (m *Manager) RecordProgress(now time.Time, value float64, persisted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.progress
	m.progress = value
	m.hasData = true
	if persisted {
		m.writes++
	} else {
		m.failedWrites++
		m.addEvent(Event{Type: EventSaveFailed, Timestamp: now, Progress: value})
	}

	if step := m.cfg.MilestoneStep; step > 0 {
		if math.Floor(value/step) > math.Floor(prev/step) {
			m.addEvent(Event{Type: EventMilestone, Timestamp: now, Progress: value})
		}
	}
	m.appendSample(now, value)
}

func (m *Manager) appendSample(now time.Time, value float64) {
	n := len(m.history)
	if n > 0 && now.Sub(m.history[n-1].Timestamp) < m.cfg.MinSampleInterval {
		m.history[n-1].Value = value
		return
	}
	m.history = append(m.history, TimeSeries{Timestamp: now, Value: value})
	if len(m.history) > m.cfg.MaxHistoryLen {
		m.history = m.history[1:]
	}
}

// RecordEvent adds an event to the log.
func (m *Manager) RecordEvent(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEvent(e)
}

// CountInteraction tallies one input of the given kind.
func (m *Manager) CountInteraction(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactions[kind]++
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.cfg.MaxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.cfg.MaxEvents
	}
}

// Snapshot represents an immutable snapshot of the journal.
type Snapshot struct {
	StartedAt    time.Time
	Progress     float64
	History      []TimeSeries
	Events       []Event
	Interactions map[string]int
	Writes       int
	FailedWrites int
}

// Snapshot returns a consistent snapshot of the journal.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist := make([]TimeSeries, len(m.history))
	copy(hist, m.history)

	counts := make(map[string]int, len(m.interactions))
	for k, v := range m.interactions {
		counts[k] = v
	}

	return Snapshot{
		StartedAt:    m.startedAt,
		Progress:     m.progress,
		History:      hist,
		Events:       m.getEventsOrdered(),
		Interactions: counts,
		Writes:       m.writes,
		FailedWrites: m.failedWrites,
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.cfg.MaxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.cfg.MaxEvents)
	for i := 0; i < m.cfg.MaxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.cfg.MaxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// ProgressValues returns the history values oldest first.
func (m *Manager) ProgressValues() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]float64, len(m.history))
	for i, s := range m.history {
		out[i] = s.Value
	}
	return out
}

// HasData returns true once the session has begun or recorded progress.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasData
}
