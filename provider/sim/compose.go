package sim

import (
	"encoding/json"
	"fmt"
	"strings"

	ai "github.com/globomantics/agentlab"
)

// fabricate invents a value for a parameter the query never supplied. This
// is the grounding failure: a model that is not allowed to ask fills the
// hole with something plausible-looking.
func fabricate(name string) any {
	switch {
	case strings.Contains(name, "order"):
		return "12345"
	case strings.Contains(name, "product"):
		return "item"
	case name == "amount":
		return 0
	case name == "reason":
		return "customer request"
	default:
		return "unknown"
	}
}

// clarifyingQuestion asks the user for the one parameter that is missing.
func clarifyingQuestion(t ai.Tool, name string) string {
	spec := parseParams(t)
	desc := spec.Properties[name].Description

	switch {
	case strings.Contains(name, "order"):
		if i := strings.Index(desc, "(format:"); i >= 0 {
			if j := strings.Index(desc[i:], ")"); j >= 0 {
				return fmt.Sprintf("Could you share your order ID %s so I can look that up?", desc[i:i+j+1])
			}
		}
		return "Could you share your order ID so I can look that up?"
	case strings.Contains(name, "product"):
		return "Which product would you like me to check?"
	case name == "reason":
		return "Could you tell me the reason for the refund?"
	default:
		return fmt.Sprintf("Could you provide the %s so I can help with that?", strings.ReplaceAll(name, "_", " "))
	}
}

// refundArgsFromRecord builds refund arguments grounded in a successful
// order lookup, filling only the parameters the refund tool declares.
func refundArgsFromRecord(query string, t ai.Tool, lookup exchange) map[string]any {
	var record map[string]any
	_ = json.Unmarshal([]byte(lookup.result.Content), &record)

	spec := parseParams(t)
	args := make(map[string]any)

	if _, ok := spec.Properties["order_id"]; ok {
		if id, _ := record["order_id"].(string); id != "" {
			args["order_id"] = id
		} else if id, _ := record["id"].(string); id != "" {
			args["order_id"] = id
		} else if id := callArg(lookup.call, "order_id", "id"); id != "" {
			args["order_id"] = id
		}
	}
	if _, ok := spec.Properties["amount"]; ok {
		if total, isNum := record["total"].(float64); isNum {
			args["amount"] = total
		}
	}
	if _, ok := spec.Properties["reason"]; ok {
		if reason := extractReason(query); reason != "" {
			args["reason"] = reason
		}
	}
	return args
}

// composeFromResult renders a customer-facing answer from a successful tool
// result. Results are JSON records from the shop backend; anything
// unrecognized is relayed as-is.
func composeFromResult(ex exchange) string {
	var record map[string]any
	if err := json.Unmarshal([]byte(ex.result.Content), &record); err != nil {
		return "Here's what I found: " + ex.result.Content
	}

	if refundID, _ := record["refund_id"].(string); refundID != "" {
		orderID, _ := record["order_id"].(string)
		amount, _ := record["amount"].(float64)
		return fmt.Sprintf("I've processed your refund of $%.2f for order %s. Your refund ID is %s.", amount, orderID, refundID)
	}

	if status, _ := record["status"].(string); status != "" {
		orderID, _ := record["order_id"].(string)
		if orderID == "" {
			orderID, _ = record["id"].(string)
		}
		line := orderStatusLine(orderID, status)
		if items := itemList(record); items != "" {
			line += " It includes: " + items + "."
		}
		return line
	}

	if inStock, ok := record["in_stock"].(bool); ok {
		name, _ := record["name"].(string)
		if name == "" {
			name, _ = record["product_id"].(string)
		}
		if inStock {
			quantity, _ := record["quantity"].(float64)
			return fmt.Sprintf("Yes, %s is in stock (%d available).", name, int(quantity))
		}
		return fmt.Sprintf("I'm sorry, %s is currently out of stock.", name)
	}

	return "Here's what I found: " + ex.result.Content
}

func orderStatusLine(orderID, status string) string {
	switch status {
	case "delivered":
		return fmt.Sprintf("Your order %s has been delivered.", orderID)
	case "in_transit":
		return fmt.Sprintf("Your order %s is in transit and on its way to you.", orderID)
	default:
		return fmt.Sprintf("Your order %s is currently %s.", orderID, strings.ReplaceAll(status, "_", " "))
	}
}

func itemList(record map[string]any) string {
	raw, ok := record["items"].([]any)
	if !ok || len(raw) == 0 {
		return ""
	}
	items := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, isString := item.(string); isString {
			items = append(items, s)
		}
	}
	return strings.Join(items, ", ")
}
