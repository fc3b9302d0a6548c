// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/clstrctl/internal/log"
)

const (
	// EnvDir overrides the cache base directory.
	EnvDir = "CLSTRCTL_CACHE_DIR"
	// EnvEnabled disables caching when set to "0" or "false".
	EnvEnabled = "CLSTRCTL_CACHE"
)

// Entry is a cached object on disk. Key is the clear-text key; the file name
// is its SHA-256.
type Entry struct {
	Key  string
	Path string
	Data []byte
}

// Dir resolves the base cache directory from EnvDir, falling back to
// os.UserCacheDir()/clstrctl. It returns false when neither is usable.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv(EnvDir); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "clstrctl"), true
	}
	return "", false
}

// Enabled is true unless EnvEnabled is "0" or "false".
func Enabled() bool {
	v := os.Getenv(EnvEnabled)
	return v != "0" && v != "false"
}

// entryPath returns where key lives beneath subdirs.
func entryPath(subdirs []string, key string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	parts := append([]string{base}, subdirs...)
	return filepath.Join(append(parts, encodeKey(key))...), true
}

// Read returns the cached entry for key, if caching is enabled and it exists.
// Cached bytes are returned verbatim.
func Read(subdirs []string, key string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := entryPath(subdirs, key)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", key)
	return &Entry{Key: key, Path: p, Data: b}, true
}

// Write stores data for key beneath subdirs, creating directories as needed.
// It is a no-op when caching is disabled.
func Write(subdirs []string, key string, data []byte) error {
	if !Enabled() {
		return nil
	}
	p, ok := entryPath(subdirs, key)
	if !ok {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s bytes=%d", key, len(data))
	return nil
}

// Purge removes cached files older than hours. hours <= 0 disables it.
func Purge(hours int) error {
	if hours <= 0 {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil || info.IsDir() || time.Since(info.ModTime()) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
			return nil
		}
		log.Debugf("removed cache file %s", path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func encodeKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
