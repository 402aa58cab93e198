package glyphs

import (
	"encoding/binary"
	"hash/fnv"
	"image"
	"sync"
)

// DefaultCacheSize is the strip count a Cache keeps when created with a
// non-positive size.
const DefaultCacheSize = 16

// Cache memoizes baked strips, so fonts rebuilt at the same size (after a
// device loss or for several canvases) are rasterized once. Entries are
// evicted least recently used first. Returned strips are shared and must
// not be modified.
type Cache struct {
	mu      sync.Mutex
	entries map[stripKey]*stripEntry
	size    int
	tick    int64 // monotonic access counter

	hits, misses int
}

type stripKey struct {
	font  uint64
	runes uint64
	size  float64
	cell  image.Point
}

type stripEntry struct {
	strip *Strip
	atime int64
}

// NewCache creates a cache holding up to size strips.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{entries: make(map[stripKey]*stripEntry), size: size}
}

// Bake returns the cached strip for ttf and opts, baking it on a miss.
// Failed bakes are not cached.
func (c *Cache) Bake(ttf []byte, opts Options) (*Strip, error) {
	key := keyOf(ttf, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[key]; ok {
		e.atime = c.tick
		c.hits++
		return e.strip, nil
	}
	c.misses++

	s, err := Bake(ttf, opts)
	if err != nil {
		return nil, err
	}
	c.entries[key] = &stripEntry{strip: s, atime: c.tick}
	if len(c.entries) > c.size {
		c.evictOldest()
	}
	return s, nil
}

func (c *Cache) evictOldest() {
	var (
		oldest stripKey
		atime  int64 = -1
	)
	for k, e := range c.entries {
		if atime < 0 || e.atime < atime {
			oldest, atime = k, e.atime
		}
	}
	delete(c.entries, oldest)
}

// Len returns the number of cached strips.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func keyOf(ttf []byte, opts Options) stripKey {
	h := fnv.New64a()
	_, _ = h.Write(ttf)
	font := h.Sum64()

	// Nil runes stay distinct from an explicit empty list.
	var runes uint64
	if opts.Runes != nil {
		h.Reset()
		var buf [4]byte
		for _, r := range opts.Runes {
			binary.LittleEndian.PutUint32(buf[:], uint32(r)) //nolint:gosec // runes are non-negative
			_, _ = h.Write(buf[:])
		}
		runes = h.Sum64() | 1
	}
	return stripKey{font: font, runes: runes, size: opts.Size, cell: opts.Cell}
}
