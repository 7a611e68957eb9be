// internal/infrastructure/storage/snapshot.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CartSnapshot is the JSON shape of the last server-synced cart kept
// locally so a failed refresh can still show something (stale but
// available).
type CartSnapshot struct {
	Items      json.RawMessage `json:"items"`
	CapturedAt time.Time       `json:"captured_at"`
}

// SaveCartSnapshot persists the last-synced cart items
func (p *Prefs) SaveCartSnapshot(ctx context.Context, items any) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	snapshot := CartSnapshot{
		Items:      raw,
		CapturedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	return p.kv.Set(ctx, p.cfg.CartSnapshotKey, string(data), p.snapshotTTL())
}

// LoadCartSnapshot reads the cached cart into dest. Returns ErrNotFound
// when no snapshot exists or it has expired.
func (p *Prefs) LoadCartSnapshot(ctx context.Context, dest any) (time.Time, error) {
	data, err := p.kv.Get(ctx, p.cfg.CartSnapshotKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var snapshot CartSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	if err := json.Unmarshal(snapshot.Items, dest); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode cart snapshot items: %w", err)
	}
	return snapshot.CapturedAt, nil
}

// ClearCartSnapshot drops the cached cart
func (p *Prefs) ClearCartSnapshot(ctx context.Context) error {
	return p.kv.Delete(ctx, p.cfg.CartSnapshotKey)
}
