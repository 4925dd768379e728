// pkg/modfs/lowercase_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: testutil.MemoryFS, real filesystem for one case
// PURPOSE: Test the bottom-up lowercase pass

package modfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/a3update/pkg/filesystem"
	"github.com/arthur-debert/a3update/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memTree(t *testing.T, files ...string) *testutil.MemoryFS {
	t.Helper()
	m := testutil.NewMemoryFS()
	for _, f := range files {
		require.NoError(t, m.MkdirAll(filepath.Dir(f), 0755))
		require.NoError(t, m.WriteFile(f, []byte(f), 0644))
	}
	return m
}

func TestLowercaseTree(t *testing.T) {
	m := memTree(t,
		"/w/450814997/Addons/ACE_Compat.PBO",
		"/w/450814997/Keys/ACE.bikey",
		"/w/450814997/mod.cpp",
	)

	stats, err := LowercaseTree(m, "/w")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/w/450814997",
		"/w/450814997/addons",
		"/w/450814997/addons/ace_compat.pbo",
		"/w/450814997/keys",
		"/w/450814997/keys/ace.bikey",
		"/w/450814997/mod.cpp",
	}, m.Paths("/w"))
	assert.Equal(t, LowercaseStats{Renamed: 4}, stats)
}

func TestLowercaseTreeKeepsRootName(t *testing.T) {
	m := memTree(t, "/Srv/Workshop/Mod/File.TXT")

	_, err := LowercaseTree(m, "/Srv/Workshop")
	require.NoError(t, err)
	assert.Equal(t, []string{"/Srv/Workshop/mod", "/Srv/Workshop/mod/file.txt"}, m.Paths("/Srv/Workshop"))
}

func TestLowercaseTreeSwallowsFailures(t *testing.T) {
	m := memTree(t, "/w/1/Addons/A.pbo", "/w/1/Keys/K.bikey")
	m.FailOn("rename", "/w/1/Addons", errors.New("read-only"))

	stats, err := LowercaseTree(m, "/w")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Failed)
	assert.Contains(t, m.Paths("/w"), "/w/1/Addons/a.pbo")
	assert.Contains(t, m.Paths("/w"), "/w/1/keys/k.bikey")
}

func TestLowercaseTreeConflict(t *testing.T) {
	m := memTree(t, "/w/1/Readme.txt", "/w/1/readme.txt")

	stats, err := LowercaseTree(m, "/w")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Conflicts)
	assert.Equal(t, []string{"/w/1", "/w/1/Readme.txt", "/w/1/readme.txt"}, m.Paths("/w"))
}

func TestLowercaseTreeMissingRoot(t *testing.T) {
	stats, err := LowercaseTree(testutil.NewMemoryFS(), "/nowhere")
	require.NoError(t, err)
	assert.Equal(t, LowercaseStats{}, stats)
}

func TestLowercaseTreeRealFilesystem(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "1/Addons/CBA_Main.pbo", "x")

	_, err := LowercaseTree(filesystem.NewOS(), root)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "1", "addons", "cba_main.pbo"))
	assert.NoError(t, err)
}
