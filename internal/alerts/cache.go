package alerts

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// seenTTL bounds how long an alerted job id is remembered. Postings are
// single dates, so anything older than this cannot resurface as new.
const seenTTL = 30 * 24 * time.Hour

// Cache remembers which job ids have already been pushed so the watcher
// never alerts the same posting twice, across restarts included.
type Cache struct {
	mu       sync.Mutex
	filePath string
	// job id -> unix millis of the first alert
	seen map[string]int64
}

// NewCache opens the cache under cacheDir, pruning entries past their TTL.
func NewCache(cacheDir string) *Cache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Could not create cache directory: %v", err)
	}
	c := &Cache{
		filePath: filepath.Join(cacheDir, "alerted_jobs.json"),
		seen:     make(map[string]int64),
	}
	c.load()
	return c
}

// IsSeen reports whether a job id was already alerted.
// Mutex is required because Go maps are NOT thread-safe.
func (c *Cache) IsSeen(jobID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.seen[jobID]
	return exists
}

// Add records freshly alerted job ids and persists the cache when anything
// actually changed.
func (c *Cache) Add(jobIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, id := range jobIDs {
		if _, exists := c.seen[id]; !exists {
			c.seen[id] = now
			changed = true
		}
	}

	if changed {
		c.save()
	}
}

func (c *Cache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Could not read alert cache: %v", err)
		}
		return
	}

	var stored map[string]int64
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("⚠️ Alert cache is corrupt, starting over: %v", err)
		return
	}

	cutoff := time.Now().Add(-seenTTL).UnixMilli()
	expired := 0
	for id, ts := range stored {
		if ts <= cutoff {
			expired++
			continue
		}
		c.seen[id] = ts
	}
	log.Printf("📋 Alert cache: %d job(s) remembered, %d expired", len(c.seen), expired)
}

func (c *Cache) save() {
	data, err := json.MarshalIndent(c.seen, "", "  ")
	if err != nil {
		log.Printf("⚠️ Could not encode alert cache: %v", err)
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Could not write alert cache: %v", err)
	}
}
