package shop

import (
	"context"

	"github.com/globomantics/agentlab/schema"
	"github.com/globomantics/agentlab/tool"
)

// OrderArgs are the arguments for get_order_status.
type OrderArgs struct {
	OrderID string `json:"order_id"`
}

// StockArgs are the arguments for check_inventory.
type StockArgs struct {
	ProductID string `json:"product_id"`
}

// RefundArgs are the arguments for process_refund.
type RefundArgs struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// Tools returns the well-described tool registrations for a backend. These
// are the "good config" tools: sharp descriptions with USE WHEN guidance and
// parameter format examples. The failure demonstrations declare their own
// deliberately vague variants inline instead of using these.
//
// Register them with a tool.Registry:
//
//	registry := tool.NewRegistry().Add(shop.Tools(backend)...)
func Tools(b *Backend) []tool.Registration {
	return []tool.Registration{
		tool.Func("get_order_status",
			"Get order status. USE WHEN: 'where is my order', 'order status', 'track my order'. DO NOT USE for product questions.",
			schema.Object().
				Field("order_id", schema.String().
					Desc("Order ID (format: ORD-XXX). Ask if not provided.").
					Required()).
				MustBuild(),
			func(ctx context.Context, args OrderArgs) (string, error) {
				order, err := b.Order(args.OrderID)
				if err != nil {
					return "", err
				}
				return marshal(order)
			}),

		tool.Func("check_inventory",
			"Check product availability. USE WHEN: 'is X in stock', 'do you have X', 'check X'. DO NOT USE for orders.",
			schema.Object().
				Field("product_id", schema.String().
					Desc("Product ID in lowercase-hyphen format. Example: 'Blue Widget' -> 'blue-widget'").
					Required()).
				MustBuild(),
			func(ctx context.Context, args StockArgs) (string, error) {
				product, err := b.Stock(args.ProductID)
				if err != nil {
					return "", err
				}
				return marshal(product)
			}),

		tool.Func("process_refund",
			"Process a refund. USE WHEN: the customer explicitly requests a return or refund. DO NOT USE for order status questions.",
			schema.Object().
				Field("order_id", schema.String().
					Desc("Order ID (format: ORD-XXX). Ask if not provided.").
					Required()).
				Field("reason", schema.String().
					Desc("Reason for the refund").
					Required()).
				MustBuild(),
			func(ctx context.Context, args RefundArgs) (string, error) {
				// The amount comes from the order record, never from the
				// conversation. Unknown orders fail here instead of being
				// refunded on faith.
				order, err := b.Order(args.OrderID)
				if err != nil {
					return "", err
				}
				refund, err := b.Refund(order.ID, order.Total, args.Reason)
				if err != nil {
					return "", err
				}
				return marshal(refund)
			}),
	}
}
