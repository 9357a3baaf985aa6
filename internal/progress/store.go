// Package progress implements the persisted progress ratchet: a value in
// [0,1] that only ever grows, plus the deltas that advance it and the idle
// detector that drips it forward while nobody is interacting.
package progress

import (
	"math"

	"github.com/litescript/ls-orbit/internal/logging"
)

// DefaultKey is the persistence key of the progress value.
const DefaultKey = "blink_orbit_progress_v1"

// Policy holds the progress delta awarded per interaction kind.
type Policy struct {
	Drag    float64 `yaml:"drag"`    // per drag movement event
	Zoom    float64 `yaml:"zoom"`    // per wheel event
	Refocus float64 `yaml:"refocus"` // when the view becomes visible again
	Idle    float64 `yaml:"idle"`    // once per idle interval
}

// DefaultPolicy returns the reference deltas.
func DefaultPolicy() Policy {
	return Policy{
		Drag:    0.0007,
		Zoom:    0.0009,
		Refocus: 0.0015,
		Idle:    0.00045,
	}
}

// Store is the in-memory progress value mirrored to a Backend.
// Store is not safe for concurrent use; the owner serializes access.
type Store struct {
	backend Backend
	key     string
	log     *logging.Logger
	value   float64

	// OnChange, if set, is called after the value grows.
	OnChange func(value float64, persisted bool)
}

// Open loads the progress value from backend. A missing, unreadable or
// non-numeric value loads as 0; out-of-range values are clamped.
func Open(backend Backend, key string, log *logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	if key == "" {
		key = DefaultKey
	}
	s := &Store{backend: backend, key: key, log: log}
	s.value = s.load()
	return s
}

func (s *Store) load() float64 {
	if s.backend == nil {
		return 0
	}
	v, ok, err := s.backend.Get(s.key)
	if err != nil {
		s.log.Warn("Progress load failed, starting from zero: %v", err)
		return 0
	}
	if !ok {
		s.log.Debug("No stored progress under %q", s.key)
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		s.log.Warn("Stored progress %v is not finite, starting from zero", v)
		return 0
	}
	return clamp01(v)
}

// Key returns the persistence key.
func (s *Store) Key() string {
	return s.key
}

// Value returns the current progress in [0,1].
func (s *Store) Value() float64 {
	return s.value
}

// Record advances progress by delta, capped at 1, and persists the new
// value. Non-positive or non-finite deltas are ignored. Record reports
// whether the value changed. A failed save is logged and otherwise ignored;
// the in-memory value still advances.
func (s *Store) Record(delta float64) bool {
	if !(delta > 0) || math.IsInf(delta, 0) {
		return false
	}
	next := math.Min(1, s.value+delta)
	if next == s.value {
		return false
	}
	s.value = next

	persisted := true
	if s.backend != nil {
		if err := s.backend.Set(s.key, next); err != nil {
			persisted = false
			s.log.Warn("Progress save failed: %v", err)
		}
	}
	if s.OnChange != nil {
		s.OnChange(next, persisted)
	}
	return true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
