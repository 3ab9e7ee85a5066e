// Package schema provides a fluent API for building JSON Schema objects
// for tool parameter declarations.
//
// Tool parameter schemas are teaching material in this repository: the
// simulated model reads field descriptions to decide how to fill arguments,
// so a vague description produces exactly the invocation failures the
// course demonstrates, and a precise one prevents them.
//
// # Basic Usage
//
// Create schemas using the type constructors and chain constraint methods:
//
//	params := schema.Object().
//		Field("order_id", schema.String().Desc("Order ID (format: ORD-XXX)").Required()).
//		Field("reason", schema.String().Desc("Why the customer wants a refund")).
//		MustBuild()
//
// # With Tool Definitions
//
//	tool := agentlab.Tool{
//		Name:        "process_refund",
//		Description: "Process a refund for a delivered order",
//		Parameters: schema.Object().
//			Field("order_id", schema.String().Desc("Order ID (format: ORD-XXX)").Required()).
//			Field("amount", schema.Number().Min(0).Desc("Refund amount in dollars").Required()).
//			MustBuild(),
//	}
//
// # Validation
//
// Use Build() instead of MustBuild() to handle errors:
//
//	params, err := schema.Object().
//		Field("quantity", schema.Int().Min(10).Max(5)). // Error: min > max
//		Build()
//	if err != nil {
//		log.Fatal(err) // schema: minimum exceeds maximum
//	}
package schema
