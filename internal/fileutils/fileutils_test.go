package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"spendly/sms-extract/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "inbox.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "inbox.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "new", "nested", "dir")
	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	assert.NoError(t, fileutils.EnsureDirectoryExists(tmpDir))
}

func TestCreateFile(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out", "report.json")

	f, err := fileutils.CreateFile(target)
	require.NoError(t, err)
	_, err = f.WriteString("[]")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = fileutils.CreateFile(target)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Empty(t, data, "existing files are truncated")
}

func TestListFilesWithExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"b.txt", "a.XML", "notes.md", "c.htm"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "nested.txt"), 0750))

	files, err := fileutils.ListFilesWithExtensions(tmpDir, ".txt", ".xml", ".htm")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a.XML"),
		filepath.Join(tmpDir, "b.txt"),
		filepath.Join(tmpDir, "c.htm"),
	}, files)

	_, err = fileutils.ListFilesWithExtensions(filepath.Join(tmpDir, "missing"), ".txt")
	assert.Error(t, err)
}

func TestStem(t *testing.T) {
	assert.Equal(t, "inbox", fileutils.Stem("/data/inbox.xml"))
	assert.Equal(t, "archive.2025", fileutils.Stem("archive.2025.txt"))
	assert.Equal(t, "noext", fileutils.Stem("noext"))
}
