// internal/domain/wishlist/wishlist_test.go
package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/notify"
	"github.com/your-org/storefront-client/internal/pkg/apierr"
)

type fakeWishlistGateway struct {
	items   []Item
	failAdd error
}

func (g *fakeWishlistGateway) copy() []Item {
	return append([]Item(nil), g.items...)
}

func (g *fakeWishlistGateway) ListWishlist(ctx context.Context) ([]Item, error) {
	return g.copy(), nil
}

func (g *fakeWishlistGateway) AddToWishlist(ctx context.Context, productID string) ([]Item, error) {
	if g.failAdd != nil {
		return nil, g.failAdd
	}
	g.items = append(g.items, Item{ProductID: productID, AddedAt: time.Now().UTC()})
	return g.copy(), nil
}

func (g *fakeWishlistGateway) RemoveFromWishlist(ctx context.Context, productID string) ([]Item, error) {
	for i := range g.items {
		if g.items[i].ProductID == productID {
			g.items = append(g.items[:i], g.items[i+1:]...)
			break
		}
	}
	return g.copy(), nil
}

func TestToggle_AddsThenRemoves(t *testing.T) {
	g := &fakeWishlistGateway{}
	m := NewManager(g, notify.NewRecorder(), nil)

	in, err := m.Toggle(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, in)
	assert.True(t, m.Contains("p1"))

	in, err = m.Toggle(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, in)
	assert.False(t, m.Contains("p1"))
	assert.Empty(t, m.Cached())
}

func TestToggle_AddFailureNotifies(t *testing.T) {
	g := &fakeWishlistGateway{failAdd: &apierr.APIError{Status: 500, Message: "storage unavailable"}}
	rec := notify.NewRecorder()
	m := NewManager(g, rec, nil)

	in, err := m.Toggle(context.Background(), "p1")
	require.Error(t, err)
	assert.False(t, in)
	assert.False(t, m.Contains("p1"), "failed add leaves the cache untouched")

	events := rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.KindError, events[0].Kind)
	assert.Equal(t, "storage unavailable", events[0].Message)
}

func TestList_ReplacesCache(t *testing.T) {
	g := &fakeWishlistGateway{items: []Item{
		{ProductID: "p1"},
		{ProductID: "p2"},
	}}
	m := NewManager(g, notify.NewRecorder(), nil)

	items, err := m.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.True(t, m.Contains("p2"))
	assert.False(t, m.Contains("p3"))
}
