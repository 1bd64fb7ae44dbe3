package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/linkstore/internal/errors"
	"github.com/vango-dev/linkstore/pkg/record"
	"github.com/vango-dev/linkstore/pkg/store"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes storectl with a config file in a fresh directory.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cfg := writeFile(t, t.TempDir(), "linkstore.toml", "color = false\n")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestInspectTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "state.toml", `count = 1

[user]
name = "Ada"

[user.address]
city = "London"
`)

	out, _, err := run(t, "inspect", path)
	require.NoError(t, err)

	assert.Contains(t, out, "(2 members)")
	assert.Contains(t, out, "state    count = 1")
	assert.Contains(t, out, "user.name = \"Ada\"")
	assert.Contains(t, out, "user.address.city = \"London\"")
	assert.Less(t, strings.Index(out, "count"), strings.Index(out, "user"), "members keep document order")
}

func TestInspectJSONSnapshot(t *testing.T) {
	path := writeFile(t, t.TempDir(), "state.json", `{"b": 2, "a": {"x": true}}`)

	out, _, err := run(t, "inspect", path, "--json")
	require.NoError(t, err)

	snap, err := record.ParseJSON([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, snap.Keys())
}

func TestInspectLinked(t *testing.T) {
	path := writeFile(t, t.TempDir(), "state.json", `{"selected": "a", "opts": {"size": 2}}`)

	out, _, err := run(t, "inspect", path, "--linked")
	require.NoError(t, err)
	assert.Contains(t, out, "selected = \"a\"")
	assert.Contains(t, out, "opts.size = 2")
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown extension", []string{"inspect", writeFile(t, dir, "state.yaml", "a: 1")}, "L012"},
		{"bad format flag", []string{"inspect", writeFile(t, dir, "s.json", "{}"), "--format", "xml"}, "L012"},
		{"invalid json", []string{"inspect", writeFile(t, dir, "bad.json", "{\"a\": }")}, "L011"},
		{"not an object", []string{"inspect", writeFile(t, dir, "list.json", "[1, 2]")}, "L011"},
		{"missing file", []string{"inspect", filepath.Join(dir, "nope.json")}, "L011"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			var se *errors.StoreError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.code, se.Code)
		})
	}
}

func TestInspectFormatOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "settings.conf", "mode = \"dark\"\n")

	out, _, err := run(t, "inspect", path, "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "mode = \"dark\"")
}

func TestDemo(t *testing.T) {
	out, _, err := run(t, "demo")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "count=0 doubled=0")
	assert.Contains(t, lines[1], "count=5 doubled=10")
	assert.Contains(t, lines[2], "count=5 doubled=100")
	assert.Contains(t, lines[3], "count=5 doubled=100")
	assert.Contains(t, lines[4], "count=6 doubled=12")
	assert.Contains(t, lines[5], "count=7 doubled=14")
}

func TestDemoMetrics(t *testing.T) {
	out, _, err := run(t, "demo", "--metrics")
	require.NoError(t, err)

	assert.Contains(t, out, `linkstore_builds_total{result="success"} 1`)
	assert.Contains(t, out, `linkstore_node_events_total{event="override",kind="linked"} 1`)
	assert.Contains(t, out, `linkstore_node_events_total{event="discard",kind="linked"} 1`)
}

func TestDemoTrace(t *testing.T) {
	_, errOut, err := run(t, "demo", "--trace")
	require.NoError(t, err)
	assert.Contains(t, errOut, "linkstore.Build")
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, "config", "init", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	_, _, err = run(t, "config", "init", "--dir", dir)
	var se *errors.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "L010", se.Code)

	_, _, err = run(t, "config", "init", "--dir", dir, "--force")
	require.NoError(t, err)

	var buf bytes.Buffer
	cmd := newRootCmd(&buf, &bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(dir, "linkstore.toml"), "config", "show"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `log_level = "info"`)
	assert.Contains(t, buf.String(), `watch_debounce = "100ms"`)
}

func TestLogLevelFlagValidated(t *testing.T) {
	_, _, err := run(t, "--log-level", "chatty", "version")
	var se *errors.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "L010", se.Code)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestApplyUpdate(t *testing.T) {
	s, err := store.Build(
		store.WithState(record.Of("a", int64(1), "b", record.Of("x", "y"))),
	)
	require.NoError(t, err)

	result, err := applyUpdate(s, record.Of(
		"a", int64(2),
		"b", record.Of("x", "y"),
		"c", true,
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, result.changed)
	assert.Equal(t, []string{"c"}, result.ignored)
	assert.Equal(t, int64(2), s.Get("a"))
	assert.False(t, s.View().Has("c"))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path, format, want string
		wantErr            bool
	}{
		{"a.json", "auto", formatJSON, false},
		{"a.TOML", "", formatTOML, false},
		{"a.txt", "json", formatJSON, false},
		{"a.txt", "auto", "", true},
		{"a.json", "yaml", "", true},
	}
	for _, tt := range tests {
		got, err := detectFormat(tt.path, tt.format)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}
