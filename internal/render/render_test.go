package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_WideRunes(t *testing.T) {
	var buf bytes.Buffer
	rows := []Row{
		{Index: 0, Key: "hp", Value: 100},
		{Index: 1, Key: "名字", Value: "勇者"},
		{Index: 2, Key: "level", Value: 3},
	}
	require.NoError(t, Table(&buf, rows))

	expect := strings.Join([]string{
		"hp     100",
		"名字   勇者",
		"level  3",
	}, "\n") + "\n"
	assert.Equal(t, expect, buf.String())
}

func TestTemplate_Sprig(t *testing.T) {
	tmpl, err := Template(`{{.Index}}:{{upper .Key}}={{.Value | toString | quote}}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Execute(&buf, tmpl, []Row{{Index: 0, Key: "a", Value: 1}, {Index: 1, Key: "b", Value: true}}))
	assert.Equal(t, "0:A=\"1\"\n1:B=\"true\"\n", buf.String())
}

func TestTemplate_Errors(t *testing.T) {
	_, err := Template(`{{.Key`)
	require.Error(t, err)

	tmpl, err := Template(`{{.Missing.Field}}`)
	require.NoError(t, err)
	require.Error(t, Execute(&bytes.Buffer{}, tmpl, []Row{{Key: "a"}}))
}
