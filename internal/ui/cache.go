package ui

// Cache maps resource ids to loaded resources. A resource is loaded on the
// first Get for its id and lives as long as the cache; callers borrow the
// value and never release it.
type Cache[V any] struct {
	items map[string]V
	order []string
	load  func(id string, n int) V
}

// NewCache returns a cache that loads missing ids with load. n is the
// number of resources already loaded, handy for picking variants.
func NewCache[V any](load func(id string, n int) V) *Cache[V] {
	return &Cache[V]{items: make(map[string]V), load: load}
}

func (c *Cache[V]) Get(id string) V {
	if v, ok := c.items[id]; ok {
		return v
	}
	v := c.load(id, len(c.order))
	c.items[id] = v
	c.order = append(c.order, id)
	return v
}

func (c *Cache[V]) Len() int { return len(c.order) }

// Each visits loaded resources in load order.
func (c *Cache[V]) Each(fn func(id string, v V)) {
	for _, id := range c.order {
		fn(id, c.items[id])
	}
}

// Clear forgets every resource. Release them through Each first if they
// own anything.
func (c *Cache[V]) Clear() {
	clear(c.items)
	c.order = c.order[:0]
}
