package omap

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventory struct {
	Owner string           `json:"owner" yaml:"owner" cbor:"owner"`
	Items Map[string, int] `json:"items" yaml:"items" cbor:"items"`
}

func sample(t *testing.T) *Map[string, int] {
	t.Helper()
	m := New[string, int]()
	m.Set("sword", 1)
	m.Set("potion", 5)
	m.Set("arrow", 64)
	m.Set("potion", 4)
	m.Remove("sword")
	m.Set("shield", 1)
	return m
}

func TestSerialize_JSONShape(t *testing.T) {
	m := New[string, int]()
	m.Set("b", 2)
	m.Set("a", 1)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"b","value":2},{"key":"a","value":1}]`, string(data))

	empty, err := json.Marshal(New[string, int]())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestSerialize_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		marshal   func(any) ([]byte, error)
		unmarshal func([]byte, any) error
	}{
		{
			name:      "json",
			marshal:   func(v any) ([]byte, error) { return json.Marshal(v) },
			unmarshal: func(data []byte, v any) error { return json.Unmarshal(data, v) },
		},
		{
			name:      "yaml",
			marshal:   func(v any) ([]byte, error) { return yaml.Marshal(v) },
			unmarshal: func(data []byte, v any) error { return yaml.Unmarshal(data, v) },
		},
		{
			name:      "cbor",
			marshal:   func(v any) ([]byte, error) { return cbor.Marshal(v) },
			unmarshal: func(data []byte, v any) error { return cbor.Unmarshal(data, v) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := inventory{Owner: "hero", Items: *sample(t)}

			data, err := tt.marshal(&src)
			require.NoError(t, err)

			var dst inventory
			require.NoError(t, tt.unmarshal(data, &dst))
			dst.Items.OnAfterLoad()

			assert.Equal(t, "hero", dst.Owner)
			assert.Equal(t, collect(&src.Items), collect(&dst.Items))
			assert.Equal(t, uint64(0), dst.Items.Rebuilds())

			v, err := dst.Items.Get("arrow")
			require.NoError(t, err)
			assert.Equal(t, 64, v)
			assert.Equal(t, uint64(1), dst.Items.Rebuilds())
			require.NoError(t, dst.Items.Validate())
		})
	}
}

func TestSerialize_RejectDuplicateKeys(t *testing.T) {
	m := New[string, int]()
	m.Set("keep", 1)

	err := json.Unmarshal([]byte(`[{"key":"a","value":1},{"key":"a","value":2}]`), m)
	require.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, []Entry[string, int]{{"keep", 1}}, m.Entries())

	err = yaml.Unmarshal([]byte("- key: a\n  value: 1\n- key: a\n  value: 2\n"), m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "键已存在")
	assert.Equal(t, []Entry[string, int]{{"keep", 1}}, m.Entries())
}

func TestSerialize_MalformedInput(t *testing.T) {
	m := New[string, int]()
	m.Set("keep", 1)

	require.Error(t, m.UnmarshalJSON([]byte(`{"a":1}`)))
	require.Error(t, m.UnmarshalCBOR([]byte{0xff}))
	assert.Equal(t, 1, m.Len())
}

func TestSerialize_SQL(t *testing.T) {
	src := sample(t)
	value, err := src.Value()
	require.NoError(t, err)

	var dst Map[string, int]
	require.NoError(t, dst.Scan(value))
	assert.Equal(t, src.Entries(), dst.Entries())

	require.NoError(t, dst.Scan([]byte(`[{"key":"x","value":7}]`)))
	assert.Equal(t, []string{"x"}, dst.KeySlice())

	require.NoError(t, dst.Scan(nil))
	assert.Equal(t, 0, dst.Len())

	require.Error(t, dst.Scan(42))
	assert.Equal(t, "json", dst.GormDataType())
}

func TestSerialize_BeforeSaveIsNoop(t *testing.T) {
	m := sample(t)
	before := m.Entries()
	builds := m.Rebuilds()

	m.OnBeforeSave()
	assert.Equal(t, before, m.Entries())
	assert.Equal(t, builds, m.Rebuilds())
}

func TestSerialize_CBORNestedAny(t *testing.T) {
	src := New[string, any]()
	src.Set("hero", map[string]any{"name": "勇者", "stats": map[string]any{"hp": 100}})
	src.Set("tags", []any{"a", "b"})

	data, err := src.MarshalCBOR()
	require.NoError(t, err)

	var dst Map[string, any]
	require.NoError(t, dst.UnmarshalCBOR(data))

	hero, err := dst.Get("hero")
	require.NoError(t, err)
	require.IsType(t, map[string]any{}, hero)
	assert.IsType(t, map[string]any{}, hero.(map[string]any)["stats"])

	out, err := dst.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"hero","value":{"name":"勇者","stats":{"hp":100}}},{"key":"tags","value":["a","b"]}]`, string(out))
}

func TestSerialize_JSONNullKeepsEntries(t *testing.T) {
	m := sample(t)
	want := m.Entries()

	require.NoError(t, m.UnmarshalJSON([]byte("null")))
	assert.Equal(t, want, m.Entries())

	src := inventory{Owner: "hero", Items: *sample(t)}
	require.NoError(t, json.Unmarshal([]byte(`{"items":null}`), &src))
	assert.Equal(t, want, src.Items.Entries())
}
