package static

// DefaultCacheMaxBytes is the size bound for cacheable files. Files of exactly
// this size or larger are served but never cached.
const DefaultCacheMaxBytes = 1024 * 1024

// Cache holds file contents keyed by resource path.
//
// It is not safe for concurrent use; the serving loop is its only user.
type Cache struct {
	maxBytes int
	entries  map[string][]byte
	size     int64
}

// NewCache creates a cache admitting files strictly smaller than maxBytes.
// A non-positive maxBytes selects DefaultCacheMaxBytes.
func NewCache(maxBytes int) *Cache {
	if maxBytes <= 0 {
		maxBytes = DefaultCacheMaxBytes
	}
	return &Cache{
		maxBytes: maxBytes,
		entries:  make(map[string][]byte),
	}
}

// Get returns the cached bytes for resourcePath.
func (c *Cache) Get(resourcePath string) ([]byte, bool) {
	b, ok := c.entries[resourcePath]
	return b, ok
}

// Put stores data if it is under the size bound and reports whether it did.
func (c *Cache) Put(resourcePath string, data []byte) bool {
	if len(data) >= c.maxBytes {
		return false
	}
	if old, ok := c.entries[resourcePath]; ok {
		c.size -= int64(len(old))
	}
	c.entries[resourcePath] = data
	c.size += int64(len(data))
	return true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Size returns the total number of cached bytes.
func (c *Cache) Size() int64 {
	return c.size
}

// MaxBytes returns the exclusive size bound.
func (c *Cache) MaxBytes() int {
	return c.maxBytes
}
