package sim

import (
	"fmt"
	"strings"
)

// EventKind names one structured simulation event.
type EventKind string

const (
	EventSpawn    EventKind = "spawn"
	EventMove     EventKind = "move"
	EventAttack   EventKind = "attack"
	EventAttackHQ EventKind = "attack_hq"
	EventDeath    EventKind = "death"
)

// Event is one structured record emitted by the core. Consumers are
// logging/telemetry collaborators; the core never blocks on them.
type Event struct {
	Tick    int
	Kind    EventKind
	UnitID  int
	Faction Faction
	Role    Role
	Pos     Point
}

// String formats the event as a fixed-width log line.
//
//	[T=042] red  infantry#3   attack     (12,7)
func (e Event) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %s#%d %-10s (%d,%d)",
		e.Tick, e.Faction, e.Role, e.UnitID, e.Kind, e.Pos.X, e.Pos.Y)
}

// EventSink receives simulation events. Implementations must not assume they
// are called from more than one goroutine; the tick loop is single-threaded.
type EventSink interface {
	Record(Event)
}

// emit forwards an event about u to the attached sink, if any.
func (w *World) emit(kind EventKind, u *Unit) {
	if w.sink == nil {
		return
	}
	w.sink.Record(Event{
		Tick:    w.tick,
		Kind:    kind,
		UnitID:  u.ID,
		Faction: u.Faction,
		Role:    u.Role,
		Pos:     u.Pos,
	})
}

// MemorySink collects events in memory. Unbounded and machine-queryable;
// used by tests and the headless driver's post-run analysis.
type MemorySink struct {
	events []Event
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Record appends one event.
func (m *MemorySink) Record(e Event) {
	m.events = append(m.events, e)
}

// Events returns all recorded events.
func (m *MemorySink) Events() []Event {
	return m.events
}

// Filter returns events matching the given kind and/or unit id.
// Pass an empty kind or a negative id to match any value for that field.
func (m *MemorySink) Filter(kind EventKind, unitID int) []Event {
	var out []Event
	for _, e := range m.events {
		if kind != "" && e.Kind != kind {
			continue
		}
		if unitID >= 0 && e.UnitID != unitID {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many events match the given kind.
func (m *MemorySink) Count(kind EventKind) int {
	return len(m.Filter(kind, -1))
}

// FirstTick returns the tick of the earliest event of the given kind, or -1.
func (m *MemorySink) FirstTick(kind EventKind) int {
	for _, e := range m.events {
		if e.Kind == kind {
			return e.Tick
		}
	}
	return -1
}

// Format returns the full event log as a single string for t.Log output.
func (m *MemorySink) Format() string {
	var sb strings.Builder
	for _, e := range m.events {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
