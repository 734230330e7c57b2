package project

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode parses plain JSON into Go values, the shape the projector works
// on.
func decode(t *testing.T, src string) any {
	t.Helper()
	var v any
	require.NoError(t, json.NewDecoder(strings.NewReader(src)).Decode(&v))
	return v
}

func projectJSON(t *testing.T, src string, specs []string, opts ...Option) any {
	t.Helper()
	parsed, err := ParseSpecs(specs)
	require.NoError(t, err)
	return New(parsed, opts...).Project(decode(t, src))
}

const person = `{
	"personid": "U1",
	"personBasic": {"names": [{"firstName": "Bugs", "lastName": "Bunny"}]},
	"extra": "x"
}`

func TestProjectTopLevelFields(t *testing.T) {
	got := projectJSON(t, person, []string{"personid", "personBasic"})
	assert.Equal(t, decode(t, `{
		"personid": "U1",
		"personBasic": {"names": [{"firstName": "Bugs", "lastName": "Bunny"}]}
	}`), got)
}

func TestProjectNoSpecs(t *testing.T) {
	got := projectJSON(t, person, nil)
	assert.Equal(t, map[string]any{}, got)
}

func TestProjectWildcard(t *testing.T) {
	got := projectJSON(t, person, []string{"personBasic.names[*].firstName"})
	assert.Equal(t, decode(t, `{
		"personBasic": {"names": [{"firstName": "Bugs"}]}
	}`), got)
}

func TestProjectIndexOutOfBounds(t *testing.T) {
	got := projectJSON(t, person, []string{"personBasic.names[10].firstName", "personid"})
	assert.Equal(t, map[string]any{"personid": "U1"}, got)
}

func TestProjectIndex(t *testing.T) {
	src := `{"rows": [{"id": 1}, {"id": 2}, {"id": 3}]}`
	got := projectJSON(t, src, []string{"rows[1].id"})
	assert.Equal(t, decode(t, `{"rows": [null, {"id": 2}]}`), got)
}

func TestProjectWildcardLength(t *testing.T) {
	src := `{"tags": [{"v": 1}, {"v": 2}, {"v": 3}]}`
	got := projectJSON(t, src, []string{"tags[*].v"})
	assert.Equal(t, decode(t, `{"tags": [{"v": 1}, {"v": 2}, {"v": 3}]}`), got)
}

func TestProjectScalarPassThrough(t *testing.T) {
	specs := []Spec{MustParseSpec("anything")}
	p := New(specs)
	assert.Equal(t, "s", p.Project("s"))
	assert.Equal(t, 1.5, p.Project(1.5))
	assert.Equal(t, nil, p.Project(nil))
	assert.Equal(t, true, p.Project(true))
}

func TestProjectSharedPrefix(t *testing.T) {
	// Two specs with a common prefix must merge into one sub-structure.
	src := `{"a": {"b": 1, "c": 2, "d": 3}}`
	got := projectJSON(t, src, []string{"a.b", "a.c"})
	assert.Equal(t, decode(t, `{"a": {"b": 1, "c": 2}}`), got)
}

func TestProjectWildcardMerge(t *testing.T) {
	// Wildcard specs over the same array must merge per element.
	src := `{"names": [{"first": "A", "last": "B", "title": "C"}]}`
	got := projectJSON(t, src, []string{"names[*].first", "names[*].last"})
	assert.Equal(t, decode(t, `{"names": [{"first": "A", "last": "B"}]}`), got)
}

func TestProjectSoftMisses(t *testing.T) {
	tests := []struct {
		name  string
		specs []string
	}{
		{"absent property", []string{"nope"}},
		{"absent nested property", []string{"personBasic.nope.deeper"}},
		{"wildcard on object", []string{"personBasic[*]"}},
		{"wildcard on scalar", []string{"personid[*]"}},
		{"index on object", []string{"personBasic[0]"}},
		{"literal into array", []string{"personBasic.names.firstName"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := projectJSON(t, person, tt.specs)
			assert.Equal(t, map[string]any{}, got, "no empty containers may remain")
		})
	}
}

func TestProjectNullLeafKept(t *testing.T) {
	src := `{"a": null, "b": 1}`
	got := projectJSON(t, src, []string{"a"})
	assert.Equal(t, map[string]any{"a": nil}, got)
}

func TestProjectAllNullArrayPruned(t *testing.T) {
	src := `{"a": [null, null]}`
	got := projectJSON(t, src, []string{"a[*]"})
	assert.Equal(t, map[string]any{}, got)
}

func TestProjectArrayRoot(t *testing.T) {
	src := `[{"id": 1, "x": 2}, {"id": 3}]`
	got := projectJSON(t, src, []string{"[*].id"})
	assert.Equal(t, decode(t, `[{"id": 1}, {"id": 3}]`), got)
}

func TestProjectDoesNotMutateSource(t *testing.T) {
	src := decode(t, person)
	before := decode(t, person)
	specs, err := ParseSpecs([]string{"personBasic.names[*].firstName", "personid"})
	require.NoError(t, err)
	New(specs).Project(src)
	assert.Equal(t, before, src, "source must be unchanged after projection")
}

func TestProjectIdempotent(t *testing.T) {
	specs, err := ParseSpecs([]string{"personBasic.names[*].firstName", "personid"})
	require.NoError(t, err)
	p := New(specs)
	src := decode(t, person)
	assert.Equal(t, p.Project(src), p.Project(src))
}

func TestProjectHook(t *testing.T) {
	hook := func(source, target any) any {
		m := target.(map[string]any)
		src := source.(map[string]any)
		// The hook sees the untouched source, including unprojected
		// fields.
		m["copied"] = src["extra"]
		delete(m, "personid")
		return m
	}
	got := projectJSON(t, person, []string{"personid"}, WithHook(hook))
	assert.Equal(t, map[string]any{"copied": "x"}, got)
}

func TestProjectHookRunsBeforePruning(t *testing.T) {
	hook := func(source, target any) any {
		m := target.(map[string]any)
		m["empty"] = map[string]any{}
		return m
	}
	got := projectJSON(t, person, []string{"personid"}, WithHook(hook))
	// Containers the hook leaves empty are pruned like any others.
	assert.Equal(t, map[string]any{"personid": "U1"}, got)
}

func TestProjectHookWithoutSpecs(t *testing.T) {
	hook := func(source, target any) any {
		src := source.(map[string]any)
		return map[string]any{"id": src["personid"]}
	}
	got := projectJSON(t, person, nil, WithHook(hook))
	assert.Equal(t, map[string]any{"id": "U1"}, got)
}
