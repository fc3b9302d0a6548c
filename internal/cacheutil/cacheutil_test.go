// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_FromEnv(t *testing.T) {
	custom := t.TempDir()
	t.Setenv(EnvDir, custom)

	dir, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, custom, dir)
}

func TestDir_Fallback(t *testing.T) {
	t.Setenv(EnvDir, "")

	dir, ok := Dir()
	if ok {
		assert.Equal(t, "clstrctl", filepath.Base(dir))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"1", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv(EnvEnabled, tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestWriteRead(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())
	t.Setenv(EnvEnabled, "")

	sub := []string{"s3", "bucket"}
	data := []byte(">Cluster 0\n0\t>a... *\n")

	_, ok := Read(sub, "s3://bucket/a.clstr")
	assert.False(t, ok)

	require.NoError(t, Write(sub, "s3://bucket/a.clstr", data))

	entry, ok := Read(sub, "s3://bucket/a.clstr")
	require.True(t, ok)
	assert.Equal(t, data, entry.Data)
	assert.Equal(t, "s3://bucket/a.clstr", entry.Key)
	assert.FileExists(t, entry.Path)

	_, ok = Read(sub, "s3://bucket/b.clstr")
	assert.False(t, ok)
}

func TestWriteRead_Disabled(t *testing.T) {
	base := t.TempDir()
	t.Setenv(EnvDir, base)
	t.Setenv(EnvEnabled, "0")

	require.NoError(t, Write(nil, "key", []byte("x")))
	_, ok := Read(nil, "key")
	assert.False(t, ok)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPurge(t *testing.T) {
	base := t.TempDir()
	t.Setenv(EnvDir, base)
	t.Setenv(EnvEnabled, "")

	require.NoError(t, Write([]string{"s3"}, "old", []byte("old")))
	require.NoError(t, Write([]string{"s3"}, "new", []byte("new")))

	oldEntry, ok := Read([]string{"s3"}, "old")
	require.True(t, ok)
	stale := time.Now().Add(-72 * time.Hour)
	require.NoError(t, os.Chtimes(oldEntry.Path, stale, stale))

	require.NoError(t, Purge(24))

	_, ok = Read([]string{"s3"}, "old")
	assert.False(t, ok)
	_, ok = Read([]string{"s3"}, "new")
	assert.True(t, ok)
}

func TestPurge_Disabled(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())
	require.NoError(t, Write(nil, "k", []byte("v")))

	require.NoError(t, Purge(0))
	_, ok := Read(nil, "k")
	assert.True(t, ok)
}

func TestEncodeKey(t *testing.T) {
	a := encodeKey("s3://bucket/a.clstr")
	assert.Len(t, a, 64)
	assert.Equal(t, a, encodeKey("s3://bucket/a.clstr"))
	assert.NotEqual(t, a, encodeKey("s3://bucket/b.clstr"))
}
