package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phoenicia/internal/app"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func writeScript(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func quietConfig() *app.Config {
	cfg := app.NewConfig()
	cfg.LogLevel = "error"
	return cfg
}

func TestReplay(t *testing.T) {
	path := writeScript(t, `
coins: 50
steps:
  - market
  - inventory
  - back
  - back
  - goals
  - back
  - level-up
  - back
  - tour welcome
  - escape
  - end-tour
  - game nope
  - back
`)
	root := NewRootCmd(quietConfig(), nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"replay", path})
	require.NoError(t, root.Execute())

	want := []string{
		"start active=default suspended=[]",
		"market active=market suspended=[default]",
		"inventory active=inventory suspended=[default market]",
		"back active=market suspended=[default]",
		"back active=default suspended=[]",
		"goals active=next-level-requirements suspended=[]",
		"back active=default suspended=[]",
		"level-up active=new-level suspended=[default level-intro]",
		"back active=level-intro suspended=[default]",
		"tour welcome active=level-intro suspended=[default] modal=tour:welcome",
		"escape active=level-intro suspended=[default] modal=tour:welcome",
		"end-tour active=level-intro suspended=[default]",
		`game nope failed: unknown panel kind "game:nope"`,
		"back active=default suspended=[]",
	}
	assert.Equal(t, want, strings.Split(strings.TrimSpace(out.String()), "\n"))
}

func TestLoadScriptRejectsUnknownSteps(t *testing.T) {
	_, err := LoadScript(writeScript(t, "steps: [market, fly]\n"))
	require.ErrorIs(t, err, ErrUnknownStep)
	assert.ErrorContains(t, err, "step 2")

	_, err = LoadScript(writeScript(t, "steps: [tap 1]\n"))
	require.ErrorContains(t, err, "tap takes 2 argument(s), got 1")

	_, err = LoadScript(writeScript(t, "steps: [tap x 1]\n"))
	require.ErrorContains(t, err, "tap:")

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read script")
}

func TestReplayTapPlacesSelection(t *testing.T) {
	s, err := app.NewSession(quietConfig(), nil)
	require.NoError(t, err)
	ctx := s.Director.Context()
	ctx.Inventory.Add("t", 1)
	ctx.Select(1, "t")

	var out bytes.Buffer
	require.NoError(t, Replay(&out, s, &Script{Steps: []string{"tap 40 40"}}))
	_, name := ctx.World.At(1, 1)
	assert.Equal(t, "t", name)
	assert.Contains(t, out.String(), "tap 40 40 active=default")
}

func TestRootWithoutWindow(t *testing.T) {
	root := NewRootCmd(quietConfig(), nil)
	root.SetArgs([]string{})
	require.ErrorIs(t, root.Execute(), ErrNoWindow)
}

func TestRootRunsSessionWithFlags(t *testing.T) {
	var got *app.Session
	root := NewRootCmd(quietConfig(), func(s *app.Session) error {
		got = s
		return nil
	})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--coins", "99", "--debug"})
	require.NoError(t, root.Execute())
	require.NotNil(t, got)
	assert.Equal(t, 99, got.Director.Context().Bank.Balance())
	assert.True(t, got.Director.Context().Debug)
}

func TestRootHelp(t *testing.T) {
	root := NewRootCmd(quietConfig(), nil)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "replay")
	assert.Contains(t, buf.String(), "--log-level")
}
