// Package shop is the simulated Globomantics e-commerce backend that every
// demonstration runs against: a fixed set of orders and products held in
// memory, refund processing, and scriptable fault injection for the
// fallback-logic demonstration. Nothing here survives a run; the backend is
// a stand-in for the real services an agent's tools would call.
package shop

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	ai "github.com/globomantics/agentlab"
)

// Order is a customer order record.
type Order struct {
	ID     string   `json:"order_id"`
	Status string   `json:"status"`
	Items  []string `json:"items"`
	Total  float64  `json:"total"`
}

// Product is an inventory record.
type Product struct {
	ID       string `json:"product_id"`
	Name     string `json:"name"`
	InStock  bool   `json:"in_stock"`
	Quantity int    `json:"quantity"`
}

// Refund is a processed refund receipt.
type Refund struct {
	ID      string  `json:"refund_id"`
	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`
	Reason  string  `json:"reason,omitempty"`
}

// Order statuses.
const (
	StatusDelivered = "delivered"
	StatusInTransit = "in_transit"
)

// Backend holds the simulated shop state for one demonstration run.
// It is safe for concurrent use, although the demonstrations are sequential.
type Backend struct {
	mu        sync.RWMutex
	orders    map[string]Order
	inventory map[string]Product
	refunds   []Refund
	faults    *FaultPlan
}

// NewBackend creates a backend seeded with the standard course data.
func NewBackend() *Backend {
	return &Backend{
		orders: map[string]Order{
			"ORD-001":   {ID: "ORD-001", Status: StatusDelivered, Items: []string{"Laptop Stand"}, Total: 99.99},
			"ORD-12345": {ID: "ORD-12345", Status: StatusDelivered, Items: []string{"Blue Widget"}, Total: 24.99},
			"ORD-67890": {ID: "ORD-67890", Status: StatusInTransit, Items: []string{"Green Tool"}, Total: 34.50},
		},
		inventory: map[string]Product{
			"blue-widget":  {ID: "blue-widget", Name: "Blue Widget", InStock: true, Quantity: 45},
			"green-tool":   {ID: "green-tool", Name: "Green Tool", InStock: false, Quantity: 0},
			"laptop-stand": {ID: "laptop-stand", Name: "Laptop Stand", InStock: true, Quantity: 12},
		},
		faults: NewFaultPlan(),
	}
}

// Faults returns the backend's fault plan for scripting failures.
func (b *Backend) Faults() *FaultPlan {
	return b.faults
}

// Order looks up an order by ID.
// Returns a permanent not_found error for unknown orders.
func (b *Backend) Order(id string) (Order, error) {
	if err := b.faults.check(OpOrder, id); err != nil {
		return Order{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	order, ok := b.orders[id]
	if !ok {
		return Order{}, ai.NewPermanentError(fmt.Sprintf("Order %s not found", id), ai.CodeNotFound, nil)
	}
	return order, nil
}

// Stock looks up a product's inventory record by product ID.
// Returns a permanent not_found error for products outside the catalog.
func (b *Backend) Stock(productID string) (Product, error) {
	if err := b.faults.check(OpStock, productID); err != nil {
		return Product{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	product, ok := b.inventory[productID]
	if !ok {
		return Product{}, ai.NewPermanentError(fmt.Sprintf("Product %s not found", productID), ai.CodeNotFound, nil)
	}
	return product, nil
}

// Refund processes a refund for an order and records the receipt.
//
// Deliberately weak: the order ID is not validated against the order book,
// and the amount is taken at face value. This is the hole the
// cascading-errors demonstration walks through.
func (b *Backend) Refund(orderID string, amount float64, reason string) (Refund, error) {
	if err := b.faults.check(OpRefund, orderID); err != nil {
		return Refund{}, err
	}

	if orderID == "" {
		return Refund{}, ai.NewUserInputError("order ID is required", "", nil)
	}
	if amount < 0 {
		return Refund{}, ai.NewUserInputError("refund amount must not be negative", "", nil)
	}

	refund := Refund{
		ID:      "REF-" + uuid.New().String()[:8],
		OrderID: orderID,
		Amount:  amount,
		Reason:  reason,
	}

	b.mu.Lock()
	b.refunds = append(b.refunds, refund)
	b.mu.Unlock()

	return refund, nil
}

// Refunds returns all refunds processed during this run.
func (b *Backend) Refunds() []Refund {
	b.mu.RLock()
	defer b.mu.RUnlock()

	refunds := make([]Refund, len(b.refunds))
	copy(refunds, b.refunds)
	return refunds
}

// marshal renders a backend record as the JSON a tool handler returns.
func marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal shop record: %w", err)
	}
	return string(data), nil
}
