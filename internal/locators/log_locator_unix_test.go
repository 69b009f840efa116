//go:build unix

package locators

import (
	"context"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate_NonRegularEntryIsSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, syscall.Mkfifo(filepath.Join(dir, "nginx-access-ui.log-20240102"), 0o644))
	touch(t, dir, "nginx-access-ui.log-20240101")

	descriptor, found, err := NewLogLocator("").Locate(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "nginx-access-ui.log-20240101", descriptor.FileName)
}
