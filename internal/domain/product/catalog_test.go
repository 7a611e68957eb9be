// internal/domain/product/catalog_test.go
package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/pkg/apierr"
)

type fakeCatalogGateway struct {
	products []Product
	listHits int
	getHits  int
}

func (g *fakeCatalogGateway) ListProducts(ctx context.Context, query ListQuery) ([]Product, error) {
	g.listHits++
	return append([]Product(nil), g.products...), nil
}

func (g *fakeCatalogGateway) GetProduct(ctx context.Context, id string) (*Product, error) {
	g.getHits++
	for _, p := range g.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, &apierr.APIError{Status: 404, Message: "product not found"}
}

func TestCatalog_ListCachesProducts(t *testing.T) {
	g := &fakeCatalogGateway{products: []Product{
		{ID: "p1", Name: "Monstera", Price: 2499, InStock: true},
		{ID: "p2", Name: "Snake Plant", Price: 1499, InStock: true},
	}}
	catalog := NewCatalog(g, nil)

	products, err := catalog.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	require.Len(t, products, 2)

	// A listed product is served from cache without another round-trip.
	p, err := catalog.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Monstera", p.Name)
	assert.Equal(t, 0, g.getHits)
}

func TestCatalog_GetFetchesAndCaches(t *testing.T) {
	g := &fakeCatalogGateway{products: []Product{
		{ID: "p1", Name: "Monstera", Price: 2499},
	}}
	catalog := NewCatalog(g, nil)

	_, err := catalog.Get(context.Background(), "p1")
	require.NoError(t, err)
	_, err = catalog.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, g.getHits, "second get hits the cache")

	_, err = catalog.Get(context.Background(), "missing")
	require.Error(t, err)
}

func TestCatalog_DisplayFor(t *testing.T) {
	g := &fakeCatalogGateway{products: []Product{
		{ID: "p1", Name: "Monstera", Description: "Big leaves", Image: "monstera.jpg", Price: 2499},
	}}
	catalog := NewCatalog(g, nil)

	_, ok := catalog.DisplayFor("p1")
	assert.False(t, ok, "nothing cached yet")

	_, err := catalog.List(context.Background(), ListQuery{})
	require.NoError(t, err)

	display, ok := catalog.DisplayFor("p1")
	require.True(t, ok)
	assert.Equal(t, "Monstera", display.Name)
	assert.Equal(t, "Big leaves", display.Description)
	assert.Equal(t, "monstera.jpg", display.Image)
	assert.Equal(t, int64(2499), display.Price)
}
