package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFileStoresUnderFolder(t *testing.T) {
	root := t.TempDir()
	store := NewFolderStore(root)

	stored, written, err := SaveFile(store, "trips", "Beach Day.JPG", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), written)

	assert.True(t, strings.HasPrefix(stored, "trips/"))
	assert.True(t, strings.HasSuffix(stored, ".jpg"), "extension should be preserved lowercased, got %s", stored)
	assert.NotContains(t, stored, "Beach Day")

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(stored)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))
}

func TestSaveFileRejectsUnrecognizedType(t *testing.T) {
	root := t.TempDir()
	store := NewFolderStore(root)

	_, _, err := SaveFile(store, "", "malware.exe", strings.NewReader("mz"))
	assert.ErrorIs(t, err, ErrInvalidFileType)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected file must leave nothing on disk")
}

func TestSaveFileRejectsTraversalDestination(t *testing.T) {
	store := NewFolderStore(t.TempDir())
	_, _, err := SaveFile(store, "../elsewhere", "a.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrTraversal)
}

func TestSaveFileConcurrentSameNameNoCollision(t *testing.T) {
	root := t.TempDir()
	store := NewFolderStore(root)

	const n = 8
	var wg sync.WaitGroup
	stored := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, _, err := SaveFile(store, "", "same.jpg", strings.NewReader("body"))
			assert.NoError(t, err)
			stored[i] = p
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, p := range stored {
		assert.False(t, seen[p], "stored path %s reused", p)
		seen[p] = true
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, n)
}

// errReader fails partway through to exercise partial-file cleanup.
type errReader struct{ after int }

func (e *errReader) Read(p []byte) (int, error) {
	if e.after <= 0 {
		return 0, os.ErrDeadlineExceeded
	}
	n := e.after
	if n > len(p) {
		n = len(p)
	}
	e.after -= n
	return n, nil
}

func TestSaveFileRemovesPartialOnError(t *testing.T) {
	root := t.TempDir()
	store := NewFolderStore(root)

	_, _, err := SaveFile(store, "", "broken.png", &errReader{after: 1024})
	require.Error(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClassifyMedia(t *testing.T) {
	assert.Equal(t, "image", ClassifyMedia("x.heic"))
	assert.Equal(t, "image", ClassifyMedia("X.PNG"))
	assert.Equal(t, "video", ClassifyMedia("v.mkv"))
	assert.Equal(t, "video", ClassifyMedia("v.3gp"))
	assert.Equal(t, "", ClassifyMedia("doc.pdf"))
	assert.Equal(t, "", ClassifyMedia("noext"))
}
