package api

import (
	"context"
	"fmt"
)

// Order is one order record. TotalAmount comes over the wire as a decimal
// string, matching the backend's serialization.
type Order struct {
	ID             int    `json:"id"`
	CustomerID     int    `json:"customer_id"`
	UserID         int    `json:"user_id"`
	OrderDate      string `json:"order_date"`
	TotalAmount    string `json:"total_amount"`
	PaymentStatus  string `json:"payment_status"`
	DeliveryStatus string `json:"delivery_status"`
	Description    string `json:"description"`
}

// Orders returns every order (admin dashboard data).
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.get(ctx, "/orders/", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderByID returns a single order.
func (c *Client) OrderByID(ctx context.Context, id int) (*Order, error) {
	var o Order
	if err := c.get(ctx, fmt.Sprintf("/orders/%d", id), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderInput is the create payload for POST /orders/create.
type OrderInput struct {
	CustomerID     int    `json:"customer_id"`
	TotalAmount    string `json:"total_amount"`
	PaymentStatus  string `json:"payment_status"`
	DeliveryStatus string `json:"delivery_status"`
	Description    string `json:"description,omitempty"`
}

// CreateOrder places a new order.
func (c *Client) CreateOrder(ctx context.Context, in OrderInput) (*Order, error) {
	var resp struct {
		Message string `json:"message"`
		Order   Order  `json:"order"`
	}
	if err := c.post(ctx, "/orders/create", in, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}
