// Package cache provides localized filesystem-based caching for transient search results.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/where"
)

const TTL = 24 * time.Hour

func getDir() string {
	return filepath.Join(where.Cache(), "search")
}

// GenerateKey generates a deterministic SHA-256 hash from a query and catalog pair for use as a cache identifier.
func GenerateKey(query, catalog string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(query, " ", "")) + catalog
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read attempts to retrieve and deserialize a cached object if it exists and has not exceeded its TTL.
func Read(key string, target interface{}) bool {
	path := filepath.Join(getDir(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(data, target) == nil
}

// Write persists a serializable object to the cache using an atomic file swap to ensure data integrity.
func Write(key string, data interface{}) error {
	dir := getDir()
	if err := filesystem.API().MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, key)
	tmpPath := path + ".tmp"

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := filesystem.API().WriteFile(tmpPath, encoded, 0644); err != nil {
		return err
	}

	return filesystem.API().Rename(tmpPath, path)
}

// CollectGarbage prunes expired cache entries from the filesystem.
func CollectGarbage() {
	dir := getDir()

	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if time.Since(entry.ModTime()) > TTL {
			_ = filesystem.API().Remove(filepath.Join(dir, entry.Name()))
		}
	}
}
