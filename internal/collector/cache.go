package collector

import "sync"

// CPUTimes is one line of /proc/stat reduced to what usage needs.
type CPUTimes struct {
	Total uint64
	Idle  uint64
}

// CPUCache remembers the previous /proc/stat reading so usage can be
// computed over the interval between two queries instead of since boot.
type CPUCache struct {
	previousStats map[string]CPUTimes

	mutex sync.RWMutex
}

func NewCPUCache() *CPUCache {
	return &CPUCache{
		previousStats: make(map[string]CPUTimes),
	}
}

func (c *CPUCache) GetPreviousStats() map[string]CPUTimes {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	statsCopy := make(map[string]CPUTimes, len(c.previousStats))
	for k, v := range c.previousStats {
		statsCopy[k] = v
	}

	return statsCopy
}

func (c *CPUCache) SetPreviousStats(stats map[string]CPUTimes) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.previousStats = stats
}

func (c *CPUCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.previousStats = make(map[string]CPUTimes)
}
