// Package tool provides the tool registry and typed handler binding used by
// the agent loop.
//
// # Basic Usage
//
// Define an argument struct, build a parameter schema, then bind and register:
//
//	type OrderArgs struct {
//	    OrderID string `json:"order_id"`
//	}
//
//	params := schema.Object().
//	    Field("order_id", schema.String().Desc("Order ID (format: ORD-XXX)").Required()).
//	    MustBuild()
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("get_order_status", "Look up the current status of an order", params,
//	        func(ctx context.Context, args OrderArgs) (string, error) {
//	            return backend.OrderJSON(args.OrderID)
//	        }),
//	)
//
// # Error Results
//
// When a handler returns an error, Execute converts it into a
// ToolResult with IsError set rather than failing the run. The error text
// goes back to the model as the result content, which is exactly what the
// cascading-errors demonstration relies on: the model sees "Order 999 not
// found" and decides what to do next.
package tool
