package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md")
	writeFile(t, root, "Controllers/ClaimsController.cs")
	writeFile(t, root, "Services/ClaimsService.cs")
	writeFile(t, root, "Services/Billing/BillingService.cs")

	files, err := NewScanner().Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Controllers/ClaimsController.cs",
		"README.md",
		"Services/Billing/BillingService.cs",
		"Services/ClaimsService.cs",
	}, files)
}

func TestScanSkipsGeneratedTrees(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Services/ClaimsService.cs")
	writeFile(t, root, "node_modules/lodash/index.js")
	writeFile(t, root, "Services/obj/Debug/ClaimsService.dll")
	writeFile(t, root, ".git/HEAD")

	files, err := NewScanner().Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"Services/ClaimsService.cs"}, files)
}

// Top-level files sit alongside directories whose walks run on
// goroutines; every entry must survive the concurrent collection.
func TestScanInterleavedRootEntries(t *testing.T) {
	root := t.TempDir()
	want := []string{}
	for i := 0; i < 40; i++ {
		top := fmt.Sprintf("Top%02d.cs", i)
		nested := fmt.Sprintf("Dir%02d/Nested%02d.cs", i, i)
		writeFile(t, root, top)
		writeFile(t, root, nested)
		want = append(want, top, nested)
	}
	sort.Strings(want)

	files, err := NewScanner().Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, want, files)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := NewScanner().Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestScanEmptyRoot(t *testing.T) {
	files, err := NewScanner().Scan(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}
