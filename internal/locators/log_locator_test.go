package locators

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"log-analyzer/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
}

func TestLocate_SingleValidFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		file       string
		compressed bool
	}{
		{name: "plain", file: "nginx-access-ui.log-20240101", compressed: false},
		{name: "gzip", file: "nginx-access-ui.log-20240101.gz", compressed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			touch(t, dir, tt.file)

			descriptor, found, err := NewLogLocator("").Locate(context.Background(), dir)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, tt.file, descriptor.FileName)
			assert.Equal(t, filepath.Join(dir, tt.file), descriptor.FullPath)
			assert.Equal(t, "2024.01.01", descriptor.Date.Dotted())
			assert.Equal(t, tt.compressed, descriptor.IsCompressed)
		})
	}
}

func TestLocate_PicksLatestDate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir,
		"nginx-access-ui.log-20170629.gz",
		"nginx-access-ui.log-20170630.gz",
		"nginx-access-ui.log-20170101",
	)

	descriptor, found, err := NewLogLocator("").Locate(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "nginx-access-ui.log-20170630.gz", descriptor.FileName)

	// adding an older file never changes the result
	touch(t, dir, "nginx-access-ui.log-20160101")
	again, found, err := NewLogLocator("").Locate(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, descriptor, again)
}

func TestLocate_SameDatePrefersLexicallySmallestName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "nginx-access-ui.log-20170630.gz", "nginx-access-ui.log-20170630")

	descriptor, found, err := NewLogLocator("").Locate(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "nginx-access-ui.log-20170630", descriptor.FileName)
	assert.False(t, descriptor.IsCompressed)
}

func TestLocate_ExcludedCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
	}{
		{name: "invalid date", file: "nginx-access-ui.log-20240631"},
		{name: "extra trailing digits", file: "nginx-access-ui.log-20240101123"},
		{name: "wrong compression suffix", file: "nginx-access-ui.log-20240101.bz2"},
		{name: "trailing characters after suffix", file: "nginx-access-ui.log-20240101.gz.bak"},
		{name: "other prefix", file: "nginx-access-api.log-20240101"},
		{name: "short date", file: "nginx-access-ui.log-2024011"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			touch(t, dir, tt.file)

			_, found, err := NewLogLocator("").Locate(context.Background(), dir)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestLocate_InvalidDateDoesNotHideValidFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "nginx-access-ui.log-20240631", "nginx-access-ui.log-20240601")

	descriptor, found, err := NewLogLocator("").Locate(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "nginx-access-ui.log-20240601", descriptor.FileName)
}

func TestLocate_DirectoryMatchingPatternIsSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nginx-access-ui.log-20240101"), 0o755))

	_, found, err := NewLogLocator("").Locate(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, found)

	touch(t, dir, "nginx-access-ui.log-20231231.gz")
	descriptor, found, err := NewLogLocator("").Locate(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "nginx-access-ui.log-20231231.gz", descriptor.FileName)
}

func TestLocate_SymlinkedDirectoryIsSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "nginx-access-ui.log-20240102")))
	touch(t, dir, "nginx-access-ui.log-20240101.gz")

	descriptor, found, err := NewLogLocator("").Locate(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "nginx-access-ui.log-20240101.gz", descriptor.FileName)
}

func TestLocate_SymlinkedFileIsCandidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "access.log")
	require.NoError(t, os.WriteFile(target, []byte("x\n"), 0o644))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "nginx-access-ui.log-20240102")))
	touch(t, dir, "nginx-access-ui.log-20240101.gz")

	descriptor, found, err := NewLogLocator("").Locate(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "nginx-access-ui.log-20240102", descriptor.FileName)
	assert.False(t, descriptor.IsCompressed)
}

func TestLocate_DanglingSymlinkIsSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(dir, "absent"), filepath.Join(dir, "nginx-access-ui.log-20240102")))

	var buf bytes.Buffer
	logger, err := loggers.New("debug", &buf)
	require.NoError(t, err)
	ctx := logger.WithContext(context.Background())

	_, found, err := NewLogLocator("").Locate(ctx, dir)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Contains(t, buf.String(), `"reason":"not_regular_file"`)
}

func TestLocate_EmptyDirectory(t *testing.T) {
	t.Parallel()

	_, found, err := NewLogLocator("").Locate(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocate_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, found, err := NewLogLocator("").Locate(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLogDirUnreadable)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, found)
}

func TestLocate_CustomPrefix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "nginx-access-ui.log-20240102", "api.access.log-20240101.gz")

	descriptor, found, err := NewLogLocator("api.access.log").Locate(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "api.access.log-20240101.gz", descriptor.FileName)
}

func TestLocate_EmitsOneDiagnosticPerSkippedEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "README", "nginx-access-ui.log-20240631", "nginx-access-ui.log-20240101")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nginx-access-ui.log-20240102"), 0o755))

	var buf bytes.Buffer
	logger, err := loggers.New("debug", &buf)
	require.NoError(t, err)
	ctx := logger.WithContext(context.Background())

	_, found, err := NewLogLocator("").Locate(ctx, dir)
	require.NoError(t, err)
	require.True(t, found)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "directory entry skipped"))
	assert.Contains(t, out, `"reason":"pattern_mismatch"`)
	assert.Contains(t, out, `"reason":"invalid_date"`)
	assert.Contains(t, out, `"reason":"is_directory"`)
}
