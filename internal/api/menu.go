package api

import (
	"context"
	"fmt"
)

// MenuItem is one storefront menu record.
type MenuItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Available   bool    `json:"available"`
	ImageKey    string  `json:"image_key"`
}

// MenuItems returns every menu item. Unauthenticated.
func (c *Client) MenuItems(ctx context.Context) ([]MenuItem, error) {
	var items []MenuItem
	if err := c.get(ctx, "/menu-items/", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MenuItem returns a single item by id.
func (c *Client) MenuItem(ctx context.Context, id int) (*MenuItem, error) {
	var item MenuItem
	if err := c.get(ctx, fmt.Sprintf("/menu-items/%d", id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// MenuItemInput is the create/update payload for a menu item.
type MenuItemInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Available   bool    `json:"available"`
	ImageKey    string  `json:"image_key,omitempty"`
}

// CreateMenuItem adds a menu item (admin).
func (c *Client) CreateMenuItem(ctx context.Context, in MenuItemInput) (*MenuItem, error) {
	var resp struct {
		Message  string   `json:"message"`
		MenuItem MenuItem `json:"menu_item"`
	}
	if err := c.post(ctx, "/menu-items/create", in, &resp); err != nil {
		return nil, err
	}
	return &resp.MenuItem, nil
}

// UpdateMenuItem updates a menu item (admin).
func (c *Client) UpdateMenuItem(ctx context.Context, id int, in MenuItemInput) (*MenuItem, error) {
	var resp struct {
		Message  string   `json:"message"`
		MenuItem MenuItem `json:"menu_item"`
	}
	if err := c.put(ctx, fmt.Sprintf("/menu-items/%d", id), in, &resp); err != nil {
		return nil, err
	}
	return &resp.MenuItem, nil
}

// DeleteMenuItem removes a menu item (admin).
func (c *Client) DeleteMenuItem(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/menu-items/%d", id))
}
