package slotmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertRemove(t *testing.T) {
	m := New[string]()
	assert.Equal(t, 0, m.Insert("a"))
	assert.Equal(t, 1, m.Insert("b"))
	assert.Equal(t, 2, m.Insert("c"))
	assert.Equal(t, 3, m.Len())

	v, ok := m.Remove(1)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	// removing again is a no-op
	_, ok = m.Remove(1)
	assert.False(t, ok)

	// later slots keep their position
	v, ok = m.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	// slots are never reused
	assert.Equal(t, 3, m.Insert("d"))
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 4, m.Slots())
	assert.Equal(t, []string{"a", "c", "d"}, m.Values())
}

func TestBatchRemoveStable(t *testing.T) {
	m := New[int]()
	for i := 0; i < 5; i++ {
		m.Insert(i * 10)
	}

	for _, slot := range []int{0, 3, 4} {
		v, ok := m.Remove(slot)
		assert.True(t, ok)
		assert.Equal(t, slot*10, v)
	}

	assert.Equal(t, []int{10, 20}, m.Values())
	assert.False(t, m.Contains(-1))
	assert.False(t, m.Contains(5))
}

func TestClone(t *testing.T) {
	type box struct{ n int }

	m := New[*box]()
	m.Insert(&box{n: 1})
	m.Insert(&box{n: 2})
	m.Remove(0)

	c := m.Clone(func(b *box) *box {
		cp := *b
		return &cp
	})

	b, _ := c.Get(1)
	b.n = 20

	orig, _ := m.Get(1)
	assert.Equal(t, 2, orig.n)
	assert.False(t, c.Contains(0))

	c.Insert(&box{n: 3})
	assert.Equal(t, 2, c.Slots()-1)
	assert.Equal(t, 2, m.Slots())
}
