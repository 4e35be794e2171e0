package resolver

import (
	"sync"

	"github.com/couchcryptid/dealer-locator-service/internal/domain"
)

// fifoCache is a thread-safe, capacity-bounded map of postal code to result.
// When full, inserting a new key evicts the key that was inserted earliest.
// Lookups do not affect eviction order.
type fifoCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // newest
	tail       *entry // oldest, next to evict
}

type entry struct {
	key   string
	value domain.GeocodeResult
	prev  *entry
	next  *entry
}

func newFIFOCache(maxEntries int) *fifoCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &fifoCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry, maxEntries),
	}
}

func (c *fifoCache) get(key string) (domain.GeocodeResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.GeocodeResult{}, false
	}
	return e.value, true
}

// put stores value under key and reports whether another entry was evicted.
// Replacing an existing key keeps its original insertion position.
func (c *fifoCache) put(key string, value domain.GeocodeResult) (evicted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		return false
	}

	if len(c.entries) >= c.maxEntries {
		c.evictTail()
		evicted = true
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)
	return evicted
}

func (c *fifoCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *fifoCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *fifoCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (c *fifoCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
