package filex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSubDir_CreatesAndReturnsPath(t *testing.T) {
	tmp := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	dir, err := EnsureSubDir("data")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "data", filepath.Base(dir))

	// second call is a no-op
	again, err := EnsureSubDir("data")
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}

func TestDetectMimeType_ByExtension(t *testing.T) {
	mt := DetectMimeType("photo.png", nil)
	assert.Equal(t, "image/png", mt)
}

func TestDetectMimeType_SniffFallback(t *testing.T) {
	// no extension: content sniffing kicks in
	mt := DetectMimeType("README", []byte("plain text here"))
	assert.True(t, strings.HasPrefix(mt, "text/plain"), mt)
}
