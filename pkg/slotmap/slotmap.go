// Package slotmap keeps values at stable integer slots.
//
// Slots are handed out in insertion order and never reused, so a slot
// number stays a valid reference for the whole lifetime of the map even
// after the value stored there has been removed.
package slotmap

type entry[T any] struct {
	value T
	live  bool
}

// Map index stable collection with tombstoned removal
type Map[T any] struct {
	entries []entry[T]
	live    int
}

// New returns an empty map
func New[T any]() *Map[T] {
	return &Map[T]{}
}

// Insert stores v at the next slot and returns that slot
func (m *Map[T]) Insert(v T) int {
	m.entries = append(m.entries, entry[T]{value: v, live: true})
	m.live++
	return len(m.entries) - 1
}

// Get returns the live value at slot
func (m *Map[T]) Get(slot int) (T, bool) {
	if !m.Contains(slot) {
		var zero T
		return zero, false
	}

	return m.entries[slot].value, true
}

// Contains reports whether slot holds a live value
func (m *Map[T]) Contains(slot int) bool {
	return slot >= 0 && slot < len(m.entries) && m.entries[slot].live
}

// Remove tombstones slot and returns the value it held
func (m *Map[T]) Remove(slot int) (T, bool) {
	v, ok := m.Get(slot)
	if !ok {
		return v, false
	}

	var zero T
	m.entries[slot] = entry[T]{value: zero}
	m.live--
	return v, true
}

// Len number of live values
func (m *Map[T]) Len() int {
	return m.live
}

// Slots number of slots ever handed out, the next Insert returns this value
func (m *Map[T]) Slots() int {
	return len(m.entries)
}

// Range calls fn for every live value in slot order until fn returns false
func (m *Map[T]) Range(fn func(slot int, v T) bool) {
	for slot, e := range m.entries {
		if !e.live {
			continue
		}

		if !fn(slot, e.value) {
			return
		}
	}
}

// Values live values in slot order
func (m *Map[T]) Values() []T {
	values := make([]T, 0, m.live)
	m.Range(func(_ int, v T) bool {
		values = append(values, v)
		return true
	})

	return values
}

// Clone copies the map, cloning every live value with fn when it is not nil
func (m *Map[T]) Clone(fn func(T) T) *Map[T] {
	c := &Map[T]{
		entries: make([]entry[T], len(m.entries)),
		live:    m.live,
	}

	copy(c.entries, m.entries)
	if fn != nil {
		for i := range c.entries {
			if c.entries[i].live {
				c.entries[i].value = fn(c.entries[i].value)
			}
		}
	}

	return c
}
