package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// Cache supplies the holiday set for a year, backed by one JSON file
// per year under dir with the remote provider as cold-cache fallback.
// Holidays are a soft enhancement: any failure degrades to an empty
// set instead of blocking the session.
type Cache struct {
	dir      string
	provider Provider
	logger   *zap.Logger
	years    map[int]Set
}

// NewCache creates a holiday cache over the given directory and
// provider
func NewCache(dir string, provider Provider, logger *zap.Logger) *Cache {
	return &Cache{
		dir:      dir,
		provider: provider,
		logger:   logger,
		years:    make(map[int]Set),
	}
}

// Get returns the holiday set for the year. Resolution order: in-memory,
// cache file, remote fetch (persisted for next time). Fetch failures
// are logged and yield an empty set.
func (c *Cache) Get(ctx context.Context, year int) Set {
	if set, ok := c.years[year]; ok {
		return set
	}

	if set, err := c.loadFile(year); err == nil {
		c.years[year] = set
		return set
	}

	set, err := c.provider.Fetch(ctx, year)
	if err != nil {
		c.logger.Warn("Holiday fetch failed, continuing without holidays",
			zap.Int("year", year),
			zap.Error(err))
		set = Set{}
		c.years[year] = set
		return set
	}

	if err := c.saveFile(year, set); err != nil {
		c.logger.Warn("Failed to write holiday cache file",
			zap.Int("year", year),
			zap.Error(err))
	}

	c.years[year] = set
	return set
}

func (c *Cache) cachePath(year int) string {
	return filepath.Join(c.dir, fmt.Sprintf("holidays-%d.json", year))
}

func (c *Cache) loadFile(year int) (Set, error) {
	data, err := os.ReadFile(c.cachePath(year))
	if err != nil {
		return nil, err
	}

	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, fmt.Errorf("failed to parse holiday cache: %w", err)
	}

	c.logger.Debug("Holiday cache hit",
		zap.Int("year", year),
		zap.Int("count", len(dates)))

	return NewSet(dates), nil
}

func (c *Cache) saveFile(year int, set Set) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	dates := set.Dates()
	sort.Strings(dates)

	data, err := json.MarshalIndent(dates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal holiday cache: %w", err)
	}

	return os.WriteFile(c.cachePath(year), data, 0644)
}
