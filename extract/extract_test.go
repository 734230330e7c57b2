package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davrell/jsonsift/encoding/json"
	"github.com/davrell/jsonsift/iterator"
	"github.com/davrell/jsonsift/token"
)

// extractValues runs the transformer over the input document and
// materializes every emitted element.
func extractValues(t *testing.T, path, input string) []any {
	t.Helper()
	parsed, err := ParsePath(path)
	require.NoError(t, err)
	stream := token.StartStream(json.NewDecoder(strings.NewReader(input)), func(err error) {
		t.Errorf("decode error: %s", err)
	})
	elements := token.TransformStream(stream, NewTransformer(parsed))
	it := iterator.New(token.ChannelReadStream(elements))
	var values []any
	for it.Advance() {
		values = append(values, iterator.ToGo(it.CurrentValue()))
	}
	return values
}

func TestTransformerTopLevelArray(t *testing.T) {
	values := extractValues(t, "[*]", `[{"id": 1}, {"id": 2}, 3]`)
	assert.Equal(t, []any{
		map[string]any{"id": float64(1)},
		map[string]any{"id": float64(2)},
		float64(3),
	}, values)
}

func TestTransformerNestedPath(t *testing.T) {
	input := `{"meta": {"total": 2}, "d": {"results": [{"id": "a"}, {"id": "b"}]}}`
	values := extractValues(t, "d.results[*]", input)
	assert.Equal(t, []any{
		map[string]any{"id": "a"},
		map[string]any{"id": "b"},
	}, values)
}

func TestTransformerElementOrder(t *testing.T) {
	values := extractValues(t, "items[*]", `{"items": [1, 2, 3, 4, 5]}`)
	require.Len(t, values, 5)
	for i, v := range values {
		assert.Equal(t, float64(i+1), v)
	}
}

func TestTransformerSoftMisses(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		input string
	}{
		{"absent property", "items[*]", `{"total": 0}`},
		{"path into scalar", "a.b[*]", `{"a": 5}`},
		{"value not an array", "items[*]", `{"items": {"id": 1}}`},
		{"document not an object", "items[*]", `[1, 2, 3]`},
		{"top level not an array", "[*]", `{"id": 1}`},
		{"empty array", "items[*]", `{"items": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, extractValues(t, tt.path, tt.input))
		})
	}
}

// Sibling properties of the path must be skipped, including large ones
// appearing before the target array.
func TestTransformerSkipsSiblings(t *testing.T) {
	input := `{"noise": [[1, 2], {"x": {"y": []}}], "items": [1], "more": "noise"}`
	values := extractValues(t, "items[*]", input)
	assert.Equal(t, []any{float64(1)}, values)
}

func TestTransformerConcatenatedDocuments(t *testing.T) {
	values := extractValues(t, "items[*]", `{"items": [1]} {"items": [2]}`)
	assert.Equal(t, []any{float64(1), float64(2)}, values)
}
