// Package mirror persists named slots of JSON-encoded state on a best-effort
// basis. Loads fall back to the caller's default on any failure and saves
// swallow errors, so callers never branch on storage outcomes.
package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"log"
)

// ErrNotFound is returned by backends for slots that were never written.
var ErrNotFound = errors.New("mirror: slot not found")

// Backend is a durable byte store keyed by slot name.
type Backend interface {
	Get(ctx context.Context, slot string) ([]byte, error)
	Put(ctx context.Context, slot string, data []byte) error
}

// Slot names for the top-level collections.
const (
	SlotCurrentUser   = "current-user"
	SlotProgress      = "progress"
	SlotDietPlan      = "diet-plan"
	SlotRequests      = "requests"
	SlotNotifications = "notifications"
	SlotConversations = "conversations"
)

// WeeklyPlanSlot names the per-request weekly plan slot.
func WeeklyPlanSlot(requestID string) string {
	return "weekly-plan:" + requestID
}

type Mirror struct {
	backend Backend
	logf    func(format string, args ...any)
}

func New(backend Backend) *Mirror {
	return &Mirror{backend: backend, logf: log.Printf}
}

// SetLogf replaces the failure logger. A nil logf silences it.
func (m *Mirror) SetLogf(logf func(format string, args ...any)) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	m.logf = logf
}

// Load decodes the slot into v. On absence, backend failure, or a decode
// error, v is left untouched so the caller's preloaded default stands.
// The return reports whether v was populated from storage.
func (m *Mirror) Load(ctx context.Context, slot string, v any) bool {
	raw, err := m.backend.Get(ctx, slot)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logf("mirror: load slot=%s err=%v", slot, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		m.logf("mirror: decode slot=%s err=%v", slot, err)
		return false
	}
	return true
}

// Save encodes v and overwrites the slot. Failures are logged and dropped;
// the in-memory change that triggered the save is never rolled back.
func (m *Mirror) Save(ctx context.Context, slot string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		m.logf("mirror: encode slot=%s err=%v", slot, err)
		return
	}
	if err := m.backend.Put(ctx, slot, raw); err != nil {
		m.logf("mirror: save slot=%s err=%v", slot, err)
	}
}
