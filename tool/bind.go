package tool

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/globomantics/agentlab"
)

// Bind creates a Tool and Handler from a typed function and a parameter
// schema built with the schema package.
//
// Example:
//
//	type RefundArgs struct {
//	    OrderID string  `json:"order_id"`
//	    Amount  float64 `json:"amount"`
//	}
//
//	params := schema.Object().
//	    Field("order_id", schema.String().Desc("Order ID (format: ORD-XXX)").Required()).
//	    Field("amount", schema.Number().Min(0).Required()).
//	    MustBuild()
//
//	t, h := tool.Bind("process_refund", "Process a refund for an order", params,
//	    func(ctx context.Context, args RefundArgs) (string, error) {
//	        // implementation
//	        return receipt, nil
//	    })
func Bind[T any](name, description string, params []byte, fn TypedHandler[T]) (ai.Tool, Handler) {
	t := ai.Tool{
		Name:        name,
		Description: description,
		Parameters:  params,
	}

	handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args T
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", &ErrToolExecution{Name: call.Name, Err: fmt.Errorf("decode arguments: %w", err)}
		}
		return fn(ctx, args)
	}

	return t, handler
}

// BindTo creates a tool from a typed function and registers it directly to a Registry.
// This is a convenience function combining Bind and Registry.Register.
func BindTo[T any](r *Registry, name, description string, params []byte, fn TypedHandler[T]) error {
	t, h := Bind(name, description, params, fn)
	return r.Register(t, h)
}

// MustBindTo is like BindTo but panics on error.
func MustBindTo[T any](r *Registry, name, description string, params []byte, fn TypedHandler[T]) {
	if err := BindTo(r, name, description, params, fn); err != nil {
		panic(err)
	}
}

// Func creates a Registration from a typed function and a parameter schema.
// Use with Registry.Add for fluent registration.
func Func[T any](name, description string, params []byte, fn TypedHandler[T]) Registration {
	t, h := Bind(name, description, params, fn)
	return Registration{Tool: t, Handler: h}
}
