// pkg/steamcmd/steamcmd_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: testutil.RecordingRunner
// PURPOSE: Test SteamCMD argument construction and failure reporting

package steamcmd

import (
	"context"
	"os/exec"
	"testing"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/modlist"
	"github.com/arthur-debert/a3update/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpts = Options{
	SteamCmd:       "/srv/Steam/steamcmd.sh",
	ServerDir:      "/srv/arma3/install/public",
	GameInstallDir: "/srv/arma3/install",
}

var creds = Credentials{Username: "admin", Password: "hunter2"}

func TestUpdateModsSingleSession(t *testing.T) {
	runner := testutil.NewRecordingRunner()
	list := modlist.NewList(
		modlist.Entry{Key: "@ace_compat", ID: "450814997"},
		modlist.Entry{Key: "@cba_a3", ID: "450814934"},
	)

	require.NoError(t, New(runner, testOpts).UpdateMods(context.Background(), creds, list))
	require.Equal(t, 1, runner.Count())

	cmd := runner.Last()
	assert.Equal(t, "/srv/Steam/steamcmd.sh", cmd.Path)
	assert.Equal(t, []string{
		"+force_install_dir", "/srv/arma3/install/public",
		"+login", "admin", "hunter2",
		"+workshop_download_item", "107410", "450814997", "validate",
		"+workshop_download_item", "107410", "450814934", "validate",
		"+quit",
	}, cmd.Args)
	assert.NotContains(t, cmd.String(), "hunter2")
}

func TestUpdateModsEmptyListRunsNothing(t *testing.T) {
	runner := testutil.NewRecordingRunner()
	require.NoError(t, New(runner, testOpts).UpdateMods(context.Background(), creds, &modlist.List{}))
	assert.Equal(t, 0, runner.Count())
}

func TestUpdateServer(t *testing.T) {
	runner := testutil.NewRecordingRunner()

	require.NoError(t, New(runner, testOpts).UpdateServer(context.Background(), creds))
	assert.Equal(t, []string{
		"+force_install_dir", "/srv/arma3/install",
		"+login", "admin", "hunter2",
		"+app_update", "233780", "validate",
		"+quit",
	}, runner.Last().Args)
}

func TestCustomAppIDs(t *testing.T) {
	opts := testOpts
	opts.ServerAppID = "1"
	opts.WorkshopAppID = "2"
	c := New(testutil.NewRecordingRunner(), opts)

	assert.Contains(t, c.ServerArgs(creds), "1")
	assert.Equal(t, "2", c.ModArgs(creds, modlist.NewList(modlist.Entry{Key: "@a", ID: "9"}))[6])
}

func TestFailureIsSteamCmdError(t *testing.T) {
	runner := testutil.NewRecordingRunner(exec.ErrNotFound)

	err := New(runner, testOpts).UpdateServer(context.Background(), creds)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSteamCmd))
	assert.Equal(t, -1, errors.GetErrorDetails(err)["exit_code"])
	assert.NotContains(t, err.Error(), "hunter2")
}

func TestCancelledRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := testutil.NewRecordingRunner(context.Canceled)

	err := New(runner, testOpts).UpdateServer(ctx, creds)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
}
