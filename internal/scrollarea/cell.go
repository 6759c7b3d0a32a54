package scrollarea

// Cell is an observable value that only commits and notifies when a write
// changes it.
type Cell[T comparable] struct {
	value  T
	subs   map[int]func(T)
	nextID int
	writes int
}

// NewCell creates a cell holding v.
func NewCell[T comparable](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set commits v if it differs from the current value and notifies
// subscribers. Reports whether a change was committed.
func (c *Cell[T]) Set(v T) bool {
	if c.value == v {
		return false
	}
	c.value = v
	c.writes++
	for _, id := range c.order() {
		if fn, ok := c.subs[id]; ok {
			fn(v)
		}
	}
	return true
}

// Update applies fn to the current value and commits the result via Set.
func (c *Cell[T]) Update(fn func(T) T) bool {
	return c.Set(fn(c.value))
}

// Subscribe registers fn to run after every committed change.
// The returned func removes the subscription and is idempotent.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if c.subs == nil {
		c.subs = make(map[int]func(T))
	}
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

// Writes returns how many changes have been committed.
func (c *Cell[T]) Writes() int {
	return c.writes
}

// order returns subscriber ids in registration order.
func (c *Cell[T]) order() []int {
	ids := make([]int, 0, len(c.subs))
	for id := 0; id < c.nextID; id++ {
		if _, ok := c.subs[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
