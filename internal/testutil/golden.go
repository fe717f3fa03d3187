package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// updateGolden rewrites golden files instead of comparing against them.
var updateGolden = flag.Bool("update-golden", false, "Update golden files")

// AssertGolden compares content against testdata/<name>.golden. A missing
// golden file (or -update-golden) is written from the current content, so
// the first run of a new test seeds its own reference snapshot.
func AssertGolden(t *testing.T, name, content string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if *updateGolden {
		writeGolden(t, path, content)
		return
	}

	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		writeGolden(t, path, content)
		t.Logf("golden file %s created; re-run to compare", path)
		return
	}
	require.NoError(t, err, "failed to read golden file %s", path)

	assert.Equal(t, string(want), content, "content differs from golden file %s", path)
}

func writeGolden(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
