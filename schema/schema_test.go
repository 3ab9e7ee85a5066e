package schema

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestStringBuilder(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
		want    map[string]any
		wantErr error
	}{
		{
			name:    "basic string",
			builder: String(),
			want:    map[string]any{"type": "string"},
		},
		{
			name:    "string with description",
			builder: String().Desc("Order ID (format: ORD-XXX)"),
			want:    map[string]any{"type": "string", "description": "Order ID (format: ORD-XXX)"},
		},
		{
			name:    "string with enum",
			builder: String().Enum("delivered", "in_transit", "processing"),
			want:    map[string]any{"type": "string", "enum": []any{"delivered", "in_transit", "processing"}},
		},
		{
			name:    "string with length constraints",
			builder: String().MinLength(1).MaxLength(100),
			want:    map[string]any{"type": "string", "minLength": float64(1), "maxLength": float64(100)},
		},
		{
			name:    "string with pattern",
			builder: String().Pattern(`^ORD-\d+$`),
			want:    map[string]any{"type": "string", "pattern": `^ORD-\d+$`},
		},
		{
			name:    "string with default",
			builder: String().Default("unspecified"),
			want:    map[string]any{"type": "string", "default": "unspecified"},
		},
		{
			name:    "invalid minLength > maxLength",
			builder: String().MinLength(100).MaxLength(10),
			wantErr: ErrInvalidRange,
		},
		{
			name:    "invalid pattern",
			builder: String().Pattern(`[invalid`),
			wantErr: ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.builder.Build()
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertJSONEqual(t, got, tt.want)
		})
	}
}

func TestIntBuilder(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
		want    map[string]any
		wantErr error
	}{
		{
			name:    "basic int",
			builder: Int(),
			want:    map[string]any{"type": "integer"},
		},
		{
			name:    "int with description",
			builder: Int().Desc("Units in stock"),
			want:    map[string]any{"type": "integer", "description": "Units in stock"},
		},
		{
			name:    "int with min/max",
			builder: Int().Min(1).Max(100),
			want:    map[string]any{"type": "integer", "minimum": float64(1), "maximum": float64(100)},
		},
		{
			name:    "int with default",
			builder: Int().Default(1),
			want:    map[string]any{"type": "integer", "default": float64(1)},
		},
		{
			name:    "invalid min > max",
			builder: Int().Min(100).Max(10),
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.builder.Build()
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertJSONEqual(t, got, tt.want)
		})
	}
}

func TestNumberBuilder(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
		want    map[string]any
		wantErr error
	}{
		{
			name:    "basic number",
			builder: Number(),
			want:    map[string]any{"type": "number"},
		},
		{
			name:    "number with min",
			builder: Number().Min(0).Desc("Refund amount in dollars"),
			want:    map[string]any{"type": "number", "minimum": float64(0), "description": "Refund amount in dollars"},
		},
		{
			name:    "invalid min > max",
			builder: Number().Min(99.99).Max(0.01),
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.builder.Build()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertJSONEqual(t, got, tt.want)
		})
	}
}

func TestBoolBuilder(t *testing.T) {
	got, err := Bool().Desc("Whether to expedite").Default(false).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertJSONEqual(t, got, map[string]any{
		"type":        "boolean",
		"description": "Whether to expedite",
		"default":     false,
	})
}

func TestArrayBuilder(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
		want    map[string]any
		wantErr error
	}{
		{
			name:    "basic array",
			builder: Array(String()),
			want: map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		{
			name: "array with description and item constraints",
			builder: Array(String().Pattern(`^ORD-\d+$`)).
				Desc("Order IDs to look up").
				MinItems(1).
				MaxItems(10),
			want: map[string]any{
				"type":        "array",
				"description": "Order IDs to look up",
				"items":       map[string]any{"type": "string", "pattern": `^ORD-\d+$`},
				"minItems":    float64(1),
				"maxItems":    float64(10),
			},
		},
		{
			name:    "array with unique items",
			builder: Array(Int().Min(1)).UniqueItems(),
			want: map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "integer", "minimum": float64(1)},
				"uniqueItems": true,
			},
		},
		{
			name:    "invalid minItems > maxItems",
			builder: Array(String()).MinItems(5).MaxItems(2),
			wantErr: ErrInvalidRange,
		},
		{
			name:    "invalid item schema",
			builder: Array(Int().Min(10).Max(1)),
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.builder.Build()
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertJSONEqual(t, got, tt.want)
		})
	}
}

func TestObjectBuilder(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
		want    map[string]any
		wantErr error
	}{
		{
			name:    "empty object",
			builder: Object(),
			want:    map[string]any{"type": "object"},
		},
		{
			name:    "object with string field",
			builder: Object().Field("order_id", String()),
			want:    map[string]any{"type": "object", "properties": map[string]any{"order_id": map[string]any{"type": "string"}}},
		},
		{
			name:    "object with required field",
			builder: Object().Field("order_id", String().Required()),
			want: map[string]any{
				"type":       "object",
				"properties": map[string]any{"order_id": map[string]any{"type": "string"}},
				"required":   []any{"order_id"},
			},
		},
		{
			name: "object with multiple fields",
			builder: Object().
				Field("order_id", String().Required()).
				Field("amount", Number().Min(0)).
				Field("expedite", Bool()),
			want: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"order_id": map[string]any{"type": "string"},
					"amount":   map[string]any{"type": "number", "minimum": float64(0)},
					"expedite": map[string]any{"type": "boolean"},
				},
				"required": []any{"order_id"},
			},
		},
		{
			name: "nested object",
			builder: Object().
				Field("customer", Object().
					Field("name", String().Required()).
					Required()),
			want: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"customer": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name": map[string]any{"type": "string"},
						},
						"required": []any{"name"},
					},
				},
				"required": []any{"customer"},
			},
		},
		{
			name: "validation propagates from nested field",
			builder: Object().
				Field("quantity", Int().Min(100).Max(10)),
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.builder.Build()
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertJSONEqual(t, got, tt.want)
		})
	}
}

func TestMustBuild(t *testing.T) {
	t.Run("valid schema", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("unexpected panic: %v", r)
			}
		}()
		_ = String().MustBuild()
	})

	t.Run("invalid schema panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic, got none")
			}
		}()
		_ = String().MinLength(100).MaxLength(10).MustBuild()
	})
}

func TestRequiredFieldDuplicates(t *testing.T) {
	obj := Object().
		Field("order_id", String().Required()).
		Field("order_id", String().Required())

	got, err := obj.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(got, &result); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	required, ok := result["required"].([]any)
	if !ok {
		t.Fatal("required should be an array")
	}

	count := 0
	for _, r := range required {
		if r == "order_id" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected 1 occurrence of 'order_id' in required, got %d", count)
	}
}

// assertJSONEqual unmarshals got and compares it to want.
func assertJSONEqual(t *testing.T, got json.RawMessage, want map[string]any) {
	t.Helper()

	var gotMap map[string]any
	if err := json.Unmarshal(got, &gotMap); err != nil {
		t.Fatalf("failed to unmarshal schema: %v", err)
	}
	if !reflect.DeepEqual(gotMap, want) {
		t.Errorf("schema mismatch:\n got: %#v\nwant: %#v", gotMap, want)
	}
}
