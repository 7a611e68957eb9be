// internal/api/address.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/your-org/storefront-client/internal/domain/address"
)

// addressListEnvelope is the backend's address-list response shape
type addressListEnvelope struct {
	Addresses []address.Address `json:"addresses"`
}

// addressEnvelope is the backend's single-address response shape
type addressEnvelope struct {
	Address address.Address `json:"address"`
}

// ListAddresses retrieves the user's saved addresses
func (c *Client) ListAddresses(ctx context.Context) ([]address.Address, error) {
	var envelope addressListEnvelope
	if err := c.do(ctx, http.MethodGet, "/addresses", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Addresses, nil
}

// GetAddress retrieves a single address
func (c *Client) GetAddress(ctx context.Context, id string) (*address.Address, error) {
	var envelope addressEnvelope
	path := fmt.Sprintf("/addresses/%s", url.PathEscape(id))
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Address, nil
}

// CreateAddress persists a new address
func (c *Client) CreateAddress(ctx context.Context, form address.Form) (*address.Address, error) {
	var envelope addressEnvelope
	if err := c.do(ctx, http.MethodPost, "/addresses", form, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Address, nil
}

// UpdateAddress updates an existing address
func (c *Client) UpdateAddress(ctx context.Context, id string, form address.Form) (*address.Address, error) {
	var envelope addressEnvelope
	path := fmt.Sprintf("/addresses/%s", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPut, path, form, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Address, nil
}

// DeleteAddress removes an address
func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	path := fmt.Sprintf("/addresses/%s", url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// SetDefaultAddress flags an address as the default and returns the
// full list reflecting the server-enforced single-default invariant.
func (c *Client) SetDefaultAddress(ctx context.Context, id string) ([]address.Address, error) {
	var envelope addressListEnvelope
	path := fmt.Sprintf("/addresses/%s/default", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Addresses, nil
}
