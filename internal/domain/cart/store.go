// internal/domain/cart/store.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/infrastructure/storage"
	"github.com/your-org/storefront-client/internal/notify"
	"github.com/your-org/storefront-client/internal/pkg/apierr"
)

// tempIDPrefix marks client-assigned line IDs awaiting server reconciliation
const tempIDPrefix = "tmp-"

// Store is the single source of truth for cart state. All mutations go
// through its entry points; screens observe it via Subscribe and never
// mutate state directly.
//
// Each mutation follows a two-phase commit: the optimistic change is
// applied synchronously with a reversible per-line snapshot, then the
// server call either confirms it (server state merged in) or rejects it
// (snapshot restored, user notified). Per-product sequence counters
// make sure a response for an earlier intent can never overwrite a
// newer optimistic state or resurrect a removed line.
type Store struct {
	mu           sync.Mutex
	state        State
	seq          map[string]uint64 // latest user intent per product
	pending      map[string]int    // unsettled mutations per product
	inflight     int
	loadInFlight bool

	gateway     Gateway
	prefs       *storage.Prefs
	notifier    notify.Notifier
	logger      *logrus.Logger
	subscribers []func(State)
}

// NewStore creates a cart store backed by the given remote gateway
func NewStore(gateway Gateway, prefs *storage.Prefs, notifier notify.Notifier, logger *logrus.Logger) *Store {
	return &Store{
		state:    State{Items: []LineItem{}},
		seq:      make(map[string]uint64),
		pending:  make(map[string]int),
		gateway:  gateway,
		prefs:    prefs,
		notifier: notifier,
		logger:   logger,
	}
}

// Subscribe registers an observer that receives a state snapshot after
// every change. The callback runs outside the store lock.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// LoadCart fetches the server cart. On success the local state is
// replaced with the server-authoritative list; on failure the prior
// items are kept (stale but available), falling back to the persisted
// snapshot when the store is empty. A load already in flight is not
// duplicated.
func (s *Store) LoadCart(ctx context.Context) error {
	s.mu.Lock()
	if s.loadInFlight {
		s.mu.Unlock()
		return nil
	}
	s.loadInFlight = true
	s.beginRequestLocked()
	dispatched := s.copySeqLocked()
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)

	items, err := s.gateway.FetchCart(ctx)

	s.mu.Lock()
	s.loadInFlight = false
	s.endRequestLocked()
	if err != nil {
		s.state.Error = userMessage(err)
		if s.state.IsEmpty() {
			s.restoreFromSnapshotLocked(ctx)
		}
		st = s.snapshotLocked()
		s.mu.Unlock()
		s.publish(st)
		return fmt.Errorf("failed to load cart: %w", err)
	}

	s.state.Items = s.mergeServerLocked(items, dispatched)
	s.markSyncedLocked()
	st = s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)
	s.persistSnapshot(ctx, items)
	return nil
}

// AddItemLocal appends or merges a line optimistically without
// contacting the server. Merging is by product; a new line gets a
// temporary client-assigned ID. Returns the affected line's ID.
func (s *Store) AddItemLocal(item LineItem) string {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	s.mu.Lock()
	s.seq[item.ProductID]++
	id := s.applyAddLocked(item)
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)
	return id
}

// AddToCart optimistically adds the product, then reconciles with the
// server. On failure the optimistic line is removed (or the prior
// quantity restored) and an error notification is emitted.
func (s *Store) AddToCart(ctx context.Context, productID string, quantity int, display Display) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	s.mu.Lock()
	s.seq[productID]++
	s.pending[productID]++
	dispatched := s.copySeqLocked()
	prior, priorIdx := s.findProductLocked(productID)
	s.applyAddLocked(LineItem{
		ProductID:   productID,
		Name:        display.Name,
		Description: display.Description,
		Image:       display.Image,
		Price:       display.Price,
		Quantity:    quantity,
	})
	s.beginRequestLocked()
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)

	serverItems, err := s.gateway.AddItem(ctx, productID, quantity)

	return s.settleMutation(ctx, settlement{
		productID:  productID,
		dispatched: dispatched,
		prior:      prior,
		priorIdx:   priorIdx,
		server:     serverItems,
		err:        err,
		failTitle:  "Failed to Add",
	})
}

// UpdateQuantity adjusts a line's quantity by delta, recomputed from the
// current optimistic state so rapid taps never lose intermediate input.
// A resulting quantity of zero removes the line instead.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, delta int) error {
	s.mu.Lock()
	idx := s.findLineLocked(lineID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("line %s not found in cart", lineID)
	}
	line := s.state.Items[idx]
	newQty := line.Quantity + delta
	if newQty < 0 {
		newQty = 0
	}
	s.mu.Unlock()

	if newQty == 0 {
		return s.syncLine(ctx, lineID, 0, "Failed to Remove")
	}
	return s.syncLine(ctx, lineID, newQty, "Failed to Update")
}

// RemoveItem removes a line entirely
func (s *Store) RemoveItem(ctx context.Context, lineID string) error {
	return s.syncLine(ctx, lineID, 0, "Failed to Remove")
}

// ClearCart resets the local cart and drops the persisted snapshot.
// Called by the checkout flow only after the order is confirmed; the
// server clears its copy as part of order creation.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	for _, item := range s.state.Items {
		s.seq[item.ProductID]++
	}
	s.state.Items = []LineItem{}
	s.state.Error = ""
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)

	if s.prefs != nil {
		if err := s.prefs.ClearCartSnapshot(ctx); err != nil && s.logger != nil {
			s.logger.WithError(err).Warn("failed to clear cart snapshot")
		}
	}
}

// syncLine applies an optimistic quantity change (0 means removal) and
// reconciles it with the server.
func (s *Store) syncLine(ctx context.Context, lineID string, quantity int, failTitle string) error {
	s.mu.Lock()
	idx := s.findLineLocked(lineID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("line %s not found in cart", lineID)
	}
	line := s.state.Items[idx]
	prior := &line
	s.seq[line.ProductID]++
	s.pending[line.ProductID]++
	dispatched := s.copySeqLocked()

	if quantity == 0 {
		s.state.Items = append(s.state.Items[:idx], s.state.Items[idx+1:]...)
	} else {
		s.state.Items[idx].Quantity = quantity
	}
	s.beginRequestLocked()
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)

	var serverItems []LineItem
	var err error
	if quantity == 0 {
		serverItems, err = s.gateway.RemoveItem(ctx, lineID)
	} else {
		serverItems, err = s.gateway.UpdateItem(ctx, lineID, quantity)
	}

	return s.settleMutation(ctx, settlement{
		productID:  line.ProductID,
		dispatched: dispatched,
		prior:      prior,
		priorIdx:   idx,
		server:     serverItems,
		err:        err,
		failTitle:  failTitle,
	})
}

// settlement carries everything needed to confirm or roll back one
// optimistic mutation once its server call resolves.
type settlement struct {
	productID  string
	dispatched map[string]uint64
	prior      *LineItem
	priorIdx   int
	server     []LineItem
	err        error
	failTitle  string
}

// settleMutation finishes a mutation's two-phase commit. A response
// whose dispatch sequence no longer matches the current intent for the
// affected product is discarded: the newer user intent already owns
// that line's state.
func (s *Store) settleMutation(ctx context.Context, m settlement) error {
	var notification *notify.Notification

	s.mu.Lock()
	s.endRequestLocked()
	s.settlePendingLocked(m.productID)

	if s.seq[m.productID] != m.dispatched[m.productID] {
		// Superseded by a later intent for the same line; discard.
		st := s.snapshotLocked()
		s.mu.Unlock()
		s.publish(st)
		return nil
	}

	if m.err != nil {
		s.rollbackLineLocked(m.productID, m.prior, m.priorIdx)
		msg := userMessage(m.err)
		s.state.Error = msg
		notification = &notify.Notification{
			Kind:    notify.KindError,
			Title:   m.failTitle,
			Message: msg,
		}
		st := s.snapshotLocked()
		s.mu.Unlock()
		s.publish(st)
		if s.notifier != nil {
			s.notifier.Notify(*notification)
		}
		if s.logger != nil {
			s.logger.WithError(m.err).WithField("product_id", m.productID).Warn("cart mutation rolled back")
		}
		return fmt.Errorf("cart mutation failed: %w", m.err)
	}

	s.state.Items = s.mergeServerLocked(m.server, m.dispatched)
	s.markSyncedLocked()
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)
	s.persistSnapshot(ctx, m.server)
	return nil
}

// Locked helpers

func (s *Store) snapshotLocked() State {
	st := s.state
	st.Items = append([]LineItem(nil), s.state.Items...)
	if s.state.LastSynced != nil {
		t := *s.state.LastSynced
		st.LastSynced = &t
	}
	return st
}

func (s *Store) copySeqLocked() map[string]uint64 {
	out := make(map[string]uint64, len(s.seq))
	for k, v := range s.seq {
		out[k] = v
	}
	return out
}

func (s *Store) beginRequestLocked() {
	s.inflight++
	s.state.IsLoading = true
}

func (s *Store) endRequestLocked() {
	s.inflight--
	s.state.IsLoading = s.inflight > 0
}

// settlePendingLocked records that one mutation for the product has
// resolved, whether its response was applied or discarded.
func (s *Store) settlePendingLocked(productID string) {
	if s.pending[productID] <= 1 {
		delete(s.pending, productID)
		return
	}
	s.pending[productID]--
}

func (s *Store) markSyncedLocked() {
	now := time.Now().UTC()
	s.state.LastSynced = &now
	s.state.Error = ""
}

func (s *Store) findLineLocked(lineID string) int {
	for i, item := range s.state.Items {
		if item.ID == lineID {
			return i
		}
	}
	return -1
}

func (s *Store) findProductLocked(productID string) (*LineItem, int) {
	for i, item := range s.state.Items {
		if item.ProductID == productID {
			line := item
			return &line, i
		}
	}
	return nil, -1
}

// applyAddLocked merges the item into an existing line for the same
// product or appends it with a temporary ID. Returns the line's ID.
func (s *Store) applyAddLocked(item LineItem) string {
	for i := range s.state.Items {
		if s.state.Items[i].ProductID == item.ProductID {
			s.state.Items[i].Quantity += item.Quantity
			return s.state.Items[i].ID
		}
	}
	if item.ID == "" {
		item.ID = tempIDPrefix + uuid.NewString()
	}
	s.state.Items = append(s.state.Items, item)
	return item.ID
}

// rollbackLineLocked restores a single line to its pre-mutation state,
// leaving every other line untouched.
func (s *Store) rollbackLineLocked(productID string, prior *LineItem, priorIdx int) {
	idx := -1
	for i, item := range s.state.Items {
		if item.ProductID == productID {
			idx = i
			break
		}
	}

	if prior == nil {
		// Line did not exist before the mutation; drop the optimistic one.
		if idx >= 0 {
			s.state.Items = append(s.state.Items[:idx], s.state.Items[idx+1:]...)
		}
		return
	}

	if idx >= 0 {
		s.state.Items[idx] = *prior
		return
	}

	// Line was optimistically removed; reinsert at its old position.
	if priorIdx < 0 || priorIdx > len(s.state.Items) {
		priorIdx = len(s.state.Items)
	}
	s.state.Items = append(s.state.Items[:priorIdx],
		append([]LineItem{*prior}, s.state.Items[priorIdx:]...)...)
}

// mergeServerLocked folds a server line list into the local state.
// A server line is accepted only when no newer local intent exists for
// its product and no mutation for it is still unsettled; local lines
// the server does not know about survive under the same rule. This
// keeps the last user-visible optimistic state authoritative for
// re-render: a cart refresh carrying pre-mutation server state cannot
// overwrite a quantity whose mutation has not yet resolved.
func (s *Store) mergeServerLocked(server []LineItem, dispatched map[string]uint64) []LineItem {
	merged := make([]LineItem, 0, len(server))
	seen := make(map[string]bool, len(server))

	for _, sl := range server {
		seen[sl.ProductID] = true
		if s.ownedLocallyLocked(sl.ProductID, dispatched) {
			// The local version (or its absence, if the line was
			// removed since) stays authoritative.
			if local, _ := s.findProductLocked(sl.ProductID); local != nil {
				merged = append(merged, *local)
			}
			continue
		}
		merged = append(merged, sl)
	}

	for _, ll := range s.state.Items {
		if seen[ll.ProductID] {
			continue
		}
		if s.ownedLocallyLocked(ll.ProductID, dispatched) {
			merged = append(merged, ll)
		}
	}

	return merged
}

// ownedLocallyLocked reports whether the local line for the product
// must not be replaced by a server response dispatched with the given
// sequence view: either a newer intent exists, or an earlier mutation
// is still awaiting its own response.
func (s *Store) ownedLocallyLocked(productID string, dispatched map[string]uint64) bool {
	return s.seq[productID] != dispatched[productID] || s.pending[productID] > 0
}

// restoreFromSnapshotLocked fills an empty store from the persisted
// last-synced cart, if one exists.
func (s *Store) restoreFromSnapshotLocked(ctx context.Context) {
	if s.prefs == nil {
		return
	}
	var items []LineItem
	capturedAt, err := s.prefs.LoadCartSnapshot(ctx, &items)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) && s.logger != nil {
			s.logger.WithError(err).Warn("failed to restore cart snapshot")
		}
		return
	}
	s.state.Items = items
	s.state.LastSynced = &capturedAt
}

func (s *Store) persistSnapshot(ctx context.Context, items []LineItem) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.SaveCartSnapshot(ctx, items); err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("failed to persist cart snapshot")
	}
}

func (s *Store) publish(st State) {
	s.mu.Lock()
	subs := append([]func(State){}, s.subscribers...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}

// userMessage derives a displayable message from a remote-call error
func userMessage(err error) string {
	return apierr.Message(err)
}
