package store

import (
	"github.com/bytedance/sonic"

	"github.com/Arrognz/babycheck/internal/core/event"
	"github.com/Arrognz/babycheck/internal/util"
)

// wireEvent is the persisted record shape. Author survives from older
// logs where entries carried the submitting device; it is kept on disk
// but ignored by derivation.
type wireEvent struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Name      string `json:"name"`
	Author    string `json:"author,omitempty"`
}

func toWire(e event.Event) wireEvent {
	return wireEvent{ID: e.ID, Timestamp: e.Timestamp, Name: string(e.Kind)}
}

func (w wireEvent) event() event.Event {
	return event.Event{ID: w.ID, Kind: event.Kind(w.Name), Timestamp: w.Timestamp}
}

// decodeWire parses one stored record. Records that fail to parse or
// carry an unknown kind are skipped with a debug log rather than
// poisoning the whole read.
func decodeWire(raw []byte) (event.Event, bool) {
	var w wireEvent
	if err := sonic.Unmarshal(raw, &w); err != nil {
		util.LogDebugf("skipping unreadable event record: %v", err)
		return event.Event{}, false
	}
	e := w.event()
	if err := event.Check(e); err != nil {
		util.LogDebugf("skipping stored event: %v", err)
		return event.Event{}, false
	}
	return e, true
}

func encodeWire(e event.Event) ([]byte, error) {
	return sonic.Marshal(toWire(e))
}
