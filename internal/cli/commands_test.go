// internal/cli/commands_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real filesystem (temp install), testutil.RecordingRunner, fake changelog source
// PURPOSE: Test the a3update commands from flags to output

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/process"
	"github.com/arthur-debert/a3update/pkg/testutil"
	"github.com/arthur-debert/a3update/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var (
	aceCompat = testutil.Mod{Name: "Ace Compat", ID: "450814997"}
	cbaA3     = testutil.Mod{Name: "CBA_A3", ID: "450814934"}
)

// pages serves changelog pages with a single announcement each
type pages map[string]time.Time

func (p pages) Changelog(_ context.Context, id string) (string, error) {
	posted, ok := p[id]
	if !ok {
		return "", errors.Newf(errors.ErrChangelogFetch, "no page for %s", id)
	}
	ts := strconv.FormatInt(posted.Unix(), 10)
	return fmt.Sprintf(`<html><body>
<div class="detailBox workshopAnnouncement noFooter changeLogCtn">
	<div class="changelog headline">Update: %s</div>
	<p id="%s">Fixed <b>reload</b> animation</p>
</div>
</body></html>`, ts, ts), nil
}

type cliHarness struct {
	inst  *testutil.Install
	proc  *testutil.RecordingRunner
	pages pages
	out   *bytes.Buffer
	err   *bytes.Buffer
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	testutil.SkipOnWindows(t)

	inst := testutil.NewInstall(t).MakeLayout()
	proc := testutil.NewRecordingRunner()
	proc.OnRun = func(cmd process.Command) {
		for i, arg := range cmd.Args {
			if arg == "+workshop_download_item" && i+2 < len(cmd.Args) {
				inst.AddDownload(cmd.Args[i+2], "Addons/Main.PBO")
			}
		}
	}
	return &cliHarness{
		inst:  inst,
		proc:  proc,
		pages: pages{},
		out:   &bytes.Buffer{},
		err:   &bytes.Buffer{},
	}
}

func (h *cliHarness) execute(args ...string) error {
	root := NewRootCmdWithEnv(Env{
		Out:        h.out,
		Err:        h.err,
		Process:    h.proc,
		Changelogs: h.pages,
	})
	root.SetArgs(append([]string{"--install-root", h.inst.Root}, args...))
	return root.ExecuteContext(context.Background())
}

func (h *cliHarness) report(t *testing.T) display.Report {
	t.Helper()
	var r display.Report
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &r), h.out.String())
	return r
}

func TestRootWithoutStepShowsHelp(t *testing.T) {
	h := newCLIHarness(t)

	err := h.execute()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, h.out.String(), "--update-mods")
	assert.Zero(t, h.proc.Count())
}

func TestUpdateModsEndToEnd(t *testing.T) {
	h := newCLIHarness(t)
	t.Setenv(config.EnvSteamUsername, "operator")
	t.Setenv(config.EnvSteamPassword, "hunter2")
	h.inst.AddPreset("event.html", aceCompat, cbaA3)
	h.inst.WriteServerConfig("hostname = \"Event\";\nmods=\"\";\n")

	require.NoError(t, h.execute("-m", "-o", "text"))

	require.Equal(t, 1, h.proc.Count())
	assert.Contains(t, h.proc.Last().Args, "operator")
	testutil.AssertFileContent(t, h.inst.Paths.ServerConfig(),
		"hostname = \"Event\";\nmods=\"mods/@ace_compat;mods/@cba_a3;\";\n")
	testutil.AssertSymlink(t, h.inst.Paths.LinkPath("@cba_a3"), h.inst.Paths.CacheDir(cbaA3.ID))
	assert.FileExists(t, filepath.Join(h.inst.Paths.CacheDir(aceCompat.ID), "addons", "main.pbo"))
	assert.Contains(t, h.out.String(), "2 missing")
}

func TestUpdateAllDryRunChangesNothing(t *testing.T) {
	h := newCLIHarness(t)
	h.inst.AddPreset("event.html", aceCompat)

	require.NoError(t, h.execute("-u", "--dry-run", "-o", "text"))

	assert.Zero(t, h.proc.Count(), "dry run must not start SteamCMD")
	assert.NoFileExists(t, h.inst.Paths.ServerConfig())
	assert.Contains(t, h.out.String(), "Dry run: skipping SteamCMD app update")
	assert.NotContains(t, h.out.String(), "Dry run: would start")
}

func TestUpdateAllNeverStartsServer(t *testing.T) {
	h := newCLIHarness(t)
	t.Setenv(config.EnvSteamUsername, "operator")
	t.Setenv(config.EnvSteamPassword, "hunter2")
	h.inst.AddPreset("event.html", aceCompat)

	require.NoError(t, h.execute("-u", "-o", "text"))

	require.Equal(t, 2, h.proc.Count(), "game update and mod download only")
	for _, cmd := range h.proc.Commands {
		assert.NotEqual(t, h.inst.Paths.ServerBinary(), cmd.Path)
	}
	assert.NotContains(t, h.out.String(), "Start A3 server")
}

func TestUpdateAllWithStartServer(t *testing.T) {
	h := newCLIHarness(t)
	h.inst.AddPreset("event.html", aceCompat)

	require.NoError(t, h.execute("-u", "-s", "--dry-run", "-o", "text"))
	assert.Contains(t, h.out.String(), "Dry run: would start")
}

func TestUpdateModsNeedsCredentialsWithoutTerminal(t *testing.T) {
	h := newCLIHarness(t)
	h.inst.AddPreset("event.html", aceCompat)

	err := h.execute("-m", "-o", "text")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCredentials))
	assert.Zero(t, h.proc.Count())
}

func TestPlanReportsEachMod(t *testing.T) {
	h := newCLIHarness(t)
	h.inst.AddPreset("event.html", aceCompat, cbaA3)
	staleDir := h.inst.AddDownload(cbaA3.ID, "mod.cpp")
	h.pages[cbaA3.ID] = time.Now().Add(time.Hour)

	require.NoError(t, h.execute("plan", "-o", "json"))

	r := h.report(t)
	assert.Equal(t, "plan", r.Command)
	assert.True(t, r.DryRun)
	require.Len(t, r.Mods, 2)
	assert.Equal(t, display.Mod{Key: "@ace_compat", ID: aceCompat.ID, Status: "missing"}, r.Mods[0])
	assert.Equal(t, display.Mod{Key: "@cba_a3", ID: cbaA3.ID, Status: "stale"}, r.Mods[1])
	assert.DirExists(t, staleDir, "plan must not evict")
}

func TestPlanFreshMod(t *testing.T) {
	h := newCLIHarness(t)
	h.inst.AddPreset("event.html", cbaA3)
	h.inst.AddDownload(cbaA3.ID, "mod.cpp")
	h.pages[cbaA3.ID] = time.Unix(1_500_000_000, 0)

	require.NoError(t, h.execute("plan", "-o", "json"))
	assert.Equal(t, "fresh", h.report(t).Mods[0].Status)
}

func TestPlanYAML(t *testing.T) {
	h := newCLIHarness(t)
	h.inst.AddPreset("event.html", aceCompat)

	require.NoError(t, h.execute("plan", "--output", "yaml"))
	assert.Contains(t, h.out.String(), "command: plan")
	assert.Contains(t, h.out.String(), "@ace_compat")
	assert.Contains(t, h.out.String(), "status: missing")
}

func TestUpdateModsYAMLStream(t *testing.T) {
	h := newCLIHarness(t)
	t.Setenv(config.EnvSteamUsername, "operator")
	t.Setenv(config.EnvSteamPassword, "hunter2")
	preset := h.inst.AddPreset("event.html", aceCompat)

	require.NoError(t, h.execute("-m", "-o", "yaml"))

	dec := yaml.NewDecoder(bytes.NewReader(h.out.Bytes()))
	var docs []map[string]interface{}
	for {
		var doc map[string]interface{}
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		require.NoError(t, err, h.out.String())
		docs = append(docs, doc)
	}

	require.Len(t, docs, 4, h.out.String())
	assert.Equal(t, "Using "+preset, docs[0]["message"])
	assert.Equal(t, "plan", docs[1]["command"])
	assert.Equal(t, "link", docs[2]["command"])
	assert.Contains(t, docs[3]["message"], `mods="mods/@ace_compat;";`)
	assert.NotContains(t, h.out.String(), "[path]")
	assert.NotContains(t, h.out.String(), "[code]")
}

func TestModlistCommand(t *testing.T) {
	h := newCLIHarness(t)
	preset := h.inst.AddPreset("event.html", aceCompat, cbaA3)

	require.NoError(t, h.execute("modlist", "-o", "json"))

	r := h.report(t)
	assert.Equal(t, preset, r.Modlist)
	assert.Equal(t, []display.Mod{
		{Key: "@ace_compat", ID: aceCompat.ID},
		{Key: "@cba_a3", ID: cbaA3.ID},
	}, r.Mods)
}

func TestModlistSeveralPresetsWithoutTerminal(t *testing.T) {
	h := newCLIHarness(t)
	h.inst.AddPreset("a.html", aceCompat)
	h.inst.AddPreset("b.html", cbaA3)

	err := h.execute("modlist")
	assert.True(t, errors.IsErrorCode(err, errors.ErrModlistSelection))
}

func TestChangelogCommand(t *testing.T) {
	h := newCLIHarness(t)
	h.inst.AddPreset("event.html", cbaA3)
	h.pages[cbaA3.ID] = time.Unix(1_600_000_000, 0)

	t.Run("by_id", func(t *testing.T) {
		h.out.Reset()
		require.NoError(t, h.execute("changelog", cbaA3.ID))
		assert.Contains(t, h.out.String(), "# "+cbaA3.ID)
		assert.Contains(t, h.out.String(), "**reload**")
	})

	t.Run("by_key", func(t *testing.T) {
		h.out.Reset()
		require.NoError(t, h.execute("changelog", "@cba_a3"))
		assert.Contains(t, h.out.String(), "# @cba_a3")
	})

	t.Run("unknown_key", func(t *testing.T) {
		err := h.execute("changelog", "@nope")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("fetch_failure", func(t *testing.T) {
		err := h.execute("changelog", "1")
		assert.True(t, errors.IsErrorCode(err, errors.ErrChangelogFetch))
	})
}

func TestConfigCommandMasksPassword(t *testing.T) {
	h := newCLIHarness(t)
	t.Setenv(config.EnvSteamPassword, "hunter2")

	require.NoError(t, h.execute("config"))
	assert.Contains(t, h.out.String(), "port = 2302")
	assert.NotContains(t, h.out.String(), "hunter2")
}

func TestConfigCommandMissingExplicitFile(t *testing.T) {
	h := newCLIHarness(t)

	err := h.execute("config", "--config", filepath.Join(h.inst.Root, "nope.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestHelpTopics(t *testing.T) {
	h := newCLIHarness(t)

	require.NoError(t, h.execute("help", "topics"))
	for _, topic := range []string{"layout", "modlists", "credentials", "staleness"} {
		assert.Contains(t, h.out.String(), topic)
	}
	assert.Contains(t, h.out.String(), "--dry-run")

	h.out.Reset()
	require.NoError(t, h.execute("help", "staleness"))
	assert.Contains(t, h.out.String(), "unchecked")
}

func TestVersionCommand(t *testing.T) {
	h := newCLIHarness(t)

	require.NoError(t, h.execute("version"))
	assert.True(t, strings.HasPrefix(h.out.String(), "a3update version "))
}

func TestCompletionCommand(t *testing.T) {
	h := newCLIHarness(t)

	require.NoError(t, h.execute("completion", "bash"))
	assert.Contains(t, h.out.String(), "a3update")
	assert.Error(t, h.execute("completion", "tcsh"))
}

func TestRenderError(t *testing.T) {
	var stderr bytes.Buffer
	root := NewRootCmdWithEnv(Env{Out: os.Stdout, Err: &stderr})
	require.NoError(t, root.PersistentFlags().Set("output", "json"))

	RenderError(root, errors.New(errors.ErrModlistDirEmpty, "no modlist html files found"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &decoded), stderr.String())
	assert.Equal(t, "MODLIST_DIR_EMPTY", decoded["code"])
}
