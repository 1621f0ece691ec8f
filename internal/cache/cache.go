package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is a file-backed key/value store: one JSON file per key holding the
// value and the time it was written. Staleness decisions belong to callers;
// the cache itself never expires anything.
type Cache struct {
	dir string
}

type record struct {
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Save replaces whatever was stored under key with value, stamped now.
// Writes go through a temp file so a crash mid-write never leaves a torn
// record behind.
func (c *Cache) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache value %q: %w", key, err)
	}

	rec, err := json.Marshal(record{
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encoding cache record %q: %w", key, err)
	}

	path := c.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, rec, 0o600); err != nil {
		return fmt.Errorf("writing cache record %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing cache record %q: %w", key, err)
	}
	return nil
}

// Load decodes the value stored under key into out. A key that was never
// written is not an error: Load reports (false, nil) and leaves out alone.
func (c *Cache) Load(key string, out any) (bool, error) {
	raw, err := os.ReadFile(c.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cache record %q: %w", key, err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return false, fmt.Errorf("decoding cache record %q: %w", key, err)
	}
	if err := json.Unmarshal(rec.Data, out); err != nil {
		return false, fmt.Errorf("decoding cache value %q: %w", key, err)
	}
	return true, nil
}

// Timestamp returns when key was last written, or ok=false if the key is
// absent or its stamp does not parse.
func (c *Cache) Timestamp(key string) (time.Time, bool) {
	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		return time.Time{}, false
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339, rec.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}
