package codec

import (
	"testing"

	"github.com/donutnomad/sdict/omap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	Title string                    `json:"title" yaml:"title" cbor:"title"`
	Flags omap.Map[string, bool]    `json:"flags" yaml:"flags" cbor:"flags"`
	Limit omap.Map[string, float64] `json:"limit" yaml:"limit" cbor:"limit"`
}

func newSettings(t *testing.T) *settings {
	t.Helper()
	s := &settings{Title: "demo"}
	s.Flags.Set("zeta", true)
	s.Flags.Set("alpha", false)
	require.NoError(t, s.Limit.Add("cpu", 1.5))
	require.NoError(t, s.Limit.Add("mem", 512))
	return s
}

func TestCodecs_RoundTrip(t *testing.T) {
	for _, c := range []Codec{JSON{}, JSON{Indent: "  "}, YAML{}, CBOR{}} {
		t.Run(c.Name(), func(t *testing.T) {
			src := newSettings(t)
			data, err := c.Marshal(src)
			require.NoError(t, err)

			var dst settings
			require.NoError(t, c.Unmarshal(data, &dst))

			assert.Equal(t, src.Title, dst.Title)
			assert.Equal(t, []string{"zeta", "alpha"}, dst.Flags.KeySlice())
			assert.Equal(t, src.Flags.Entries(), dst.Flags.Entries())
			assert.Equal(t, src.Limit.Entries(), dst.Limit.Entries())
		})
	}
}

func TestCBOR_Deterministic(t *testing.T) {
	a, err := CBOR{}.Marshal(newSettings(t))
	require.NoError(t, err)
	b, err := CBOR{}.Marshal(newSettings(t))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(JSON{}))

	err := r.Register(JSON{Indent: "\t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "已注册")

	require.NoError(t, r.Register(YAML{}))
	assert.Equal(t, []string{"json", "yaml"}, r.Names())

	assert.Panics(t, func() { r.MustRegister(YAML{}) })
}

type fakeCodec struct{ YAML }

func (fakeCodec) Name() string { return "fake" }

func TestRegistry_ExtensionConflict(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(YAML{})

	err := r.Register(fakeCodec{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".yaml")
	assert.Equal(t, []string{"yaml"}, r.Names())
}

func TestRegistry_Lookup(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "save.json", want: "json"},
		{path: "dir/Save.YML", want: "yaml"},
		{path: "save.yaml", want: "yaml"},
		{path: "save.cbor", want: "cbor"},
		{path: "save.toml", wantErr: true},
		{path: "save", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c, err := ForPath(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownCodec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name())
		})
	}

	c, err := Get("YAML")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Name())

	_, err = Get("xml")
	require.ErrorIs(t, err, ErrUnknownCodec)
}
