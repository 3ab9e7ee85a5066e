package sim

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	ai "github.com/globomantics/agentlab"
)

// param is one parameter from a tool's JSON Schema.
type param struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// paramSpec is the parsed parameter schema of a tool.
type paramSpec struct {
	Properties map[string]param `json:"properties"`
	Required   []string         `json:"required"`
}

func parseParams(t ai.Tool) paramSpec {
	var spec paramSpec
	_ = json.Unmarshal(t.Parameters, &spec)
	return spec
}

func (s paramSpec) isRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// paramAsksIfMissing reports whether the parameter's own description tells
// the model to ask when the value is absent.
func paramAsksIfMissing(t ai.Tool, name string) bool {
	spec := parseParams(t)
	return strings.Contains(strings.ToLower(spec.Properties[name].Description), "ask if not provided")
}

// extractArgs pulls the tool's arguments out of the user query. It returns
// the extracted arguments and the name of the first required parameter that
// could not be grounded in the query ("" when everything was found).
func extractArgs(query string, t ai.Tool, system string) (map[string]any, string) {
	spec := parseParams(t)
	args := make(map[string]any)
	missing := ""

	for _, name := range orderedParams(spec) {
		p := spec.Properties[name]
		value, found := extractParam(query, name, p, system)
		if found {
			args[name] = value
			continue
		}
		if spec.isRequired(name) && missing == "" {
			missing = name
		}
	}
	return args, missing
}

// orderedParams returns required parameters first, in schema order, then the
// rest. JSON object key order is lost in parsing, so required order is the
// only stable order available.
func orderedParams(spec paramSpec) []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range spec.Required {
		if _, ok := spec.Properties[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range spec.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	// Deterministic order for the non-required tail.
	for i := 0; i < len(rest); i++ {
		for j := i + 1; j < len(rest); j++ {
			if rest[j] < rest[i] {
				rest[i], rest[j] = rest[j], rest[i]
			}
		}
	}
	return append(names, rest...)
}

func extractParam(query, name string, p param, system string) (any, bool) {
	switch {
	case strings.Contains(name, "order"):
		id, found := extractOrderID(query, p.Description)
		return id, found
	case strings.Contains(name, "product"):
		id, found := extractProductID(query, p.Description, system)
		return id, found
	case p.Type == "number" || p.Type == "integer" || name == "amount":
		amount, found := extractAmount(query)
		return amount, found
	case name == "reason":
		reason := extractReason(query)
		return reason, reason != ""
	case name == "id":
		// A bare "id" parameter gives the model nothing to go on; it grabs
		// whatever identifier-shaped text the query offers.
		if id, found := extractOrderID(query, p.Description); found {
			return id, true
		}
		if phrase, found := extractProductID(query, p.Description, system); found {
			return phrase, true
		}
		return "", false
	default:
		return "", false
	}
}

var (
	orderIDPattern = regexp.MustCompile(`(?i)\bORD-\d+\b`)
	bareIDPattern  = regexp.MustCompile(`\b\d{3,}\b`)
	amountPattern  = regexp.MustCompile(`\$\s*(\d+(?:\.\d{1,2})?)|\b(\d+(?:\.\d{1,2})?)\s*(?:dollars|bucks)\b`)
)

// extractOrderID finds an order ID in the query. A bare digit run is
// normalized to the ORD- form only when the parameter description shows
// that format; without the hint the digits go through as-is, which is the
// invocation failure.
func extractOrderID(query, paramDesc string) (string, bool) {
	if m := orderIDPattern.FindString(query); m != "" {
		return strings.ToUpper(m), true
	}
	if m := bareIDPattern.FindString(query); m != "" {
		if strings.Contains(strings.ToUpper(paramDesc), "ORD-") {
			return "ORD-" + m, true
		}
		return m, true
	}
	return "", false
}

// stockVerbs are words that frame an inventory question without being part
// of the product name.
var stockVerbs = map[string]bool{
	"have": true, "check": true, "stock": true, "stocked": true,
	"available": true, "availability": true, "purchase": true, "buy": true,
	"carry": true, "sell": true, "get": true, "want": true, "know": true,
	"any": true, "some": true, "still": true, "currently": true,
	"there": true, "left": true,
}

// extractProductID finds the product the query is about. The raw phrase is
// converted to lowercase-hyphen form only when the parameter description or
// system prompt shows a conversion example; otherwise it passes through
// verbatim, casing and all.
func extractProductID(query, paramDesc, system string) (string, bool) {
	var words []string
	for _, w := range strings.Fields(query) {
		clean := strings.Trim(w, ".,!?\"'():;")
		if clean == "" || strings.ContainsAny(clean, "'’") {
			// Contractions ("it's", "what's") are never product names.
			continue
		}
		lower := strings.ToLower(clean)
		if stopwords[lower] || stockVerbs[lower] {
			continue
		}
		words = append(words, clean)
	}
	if len(words) == 0 {
		return "", false
	}

	if hasConversionHint(paramDesc) || hasConversionHint(system) {
		return slugify(words), true
	}
	return strings.Join(words, " "), true
}

// hasConversionHint reports whether the text shows a name-to-ID conversion
// example, e.g. "'Blue Widget' -> 'blue-widget'" or "lowercase-hyphen".
func hasConversionHint(text string) bool {
	return strings.Contains(text, "->") || strings.Contains(strings.ToLower(text), "lowercase-hyphen")
}

func slugify(words []string) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = strings.ToLower(w)
	}
	// Crude singularization of the final word: "gadgets" -> "gadget".
	last := parts[len(parts)-1]
	if len(last) > 3 && strings.HasSuffix(last, "s") && !strings.HasSuffix(last, "ss") {
		parts[len(parts)-1] = strings.TrimSuffix(last, "s")
	}
	return strings.Join(parts, "-")
}

// extractAmount finds a dollar amount in the query.
func extractAmount(query string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(query)
	if m == nil {
		return 0, false
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// refundReasons are complaint words lifted verbatim into the reason field.
var refundReasons = []string{"damaged", "broken", "defective", "wrong item", "never arrived", "late"}

// extractReason finds a refund reason in the query.
func extractReason(query string) string {
	lower := strings.ToLower(query)
	for _, reason := range refundReasons {
		if strings.Contains(lower, reason) {
			return reason
		}
	}
	return ""
}
