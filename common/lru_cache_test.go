// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import "testing"

func TestLruCache_GetSet(t *testing.T) {
	c := NewLruCache[int, int](3)
	if _, exists := c.Get(1); exists {
		t.Errorf("empty cache should not contain items")
	}
	c.Set(1, 11)
	if val, exists := c.Get(1); !exists || val != 11 {
		t.Errorf("unexpected value, wanted 11, got %d (exists %t)", val, exists)
	}
	c.Set(1, 111)
	if val, _ := c.Get(1); val != 111 {
		t.Errorf("value was not updated, got %d", val)
	}
	if c.Len() != 1 {
		t.Errorf("unexpected size %d", c.Len())
	}
}

func TestLruCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLruCache[int, int](3)
	c.Set(1, 11)
	c.Set(2, 22)
	c.Set(3, 33)
	c.Get(1) // 2 is now the oldest

	evictedKey, evictedValue, evicted := c.Set(4, 44)
	if !evicted || evictedKey != 2 || evictedValue != 22 {
		t.Errorf("incorrectly evicted item: %d/%d (%t)", evictedKey, evictedValue, evicted)
	}
	if _, exists := c.Get(2); exists {
		t.Errorf("item should be evicted")
	}
	for _, key := range []int{1, 3, 4} {
		if _, exists := c.Get(key); !exists {
			t.Errorf("item %d should be present", key)
		}
	}
}

func TestLruCache_Order(t *testing.T) {
	c := NewLruCache[int, int](3)
	c.Set(1, 11)
	c.Set(2, 22)
	c.Set(3, 33)

	c.Get(1)
	if c.head.key != 1 || c.tail.key != 2 {
		t.Errorf("wrong order, head %d, tail %d", c.head.key, c.tail.key)
	}
	c.Set(2, 222)
	if c.head.key != 2 || c.tail.key != 3 {
		t.Errorf("wrong order, head %d, tail %d", c.head.key, c.tail.key)
	}
	c.Set(4, 44)
	if c.head.key != 4 || c.head.next.key != 2 || c.head.next.next.key != 1 {
		t.Errorf("wrong order")
	}
	if c.tail.key != 1 || c.tail.prev.key != 2 || c.tail.prev.prev.key != 4 {
		t.Errorf("wrong order")
	}
}

func TestLruCache_Remove(t *testing.T) {
	c := NewLruCache[int, int](2)
	c.Set(1, 11)
	c.Set(2, 22)
	if val, exists := c.Remove(1); !exists || val != 11 {
		t.Errorf("unexpected removal result %d/%t", val, exists)
	}
	if _, exists := c.Remove(1); exists {
		t.Errorf("item removed twice")
	}
	if c.head.key != 2 || c.tail.key != 2 {
		t.Errorf("list not updated after removal")
	}
	c.Set(3, 33)
	if _, _, evicted := c.Set(4, 44); !evicted {
		t.Errorf("expected eviction once capacity is reached")
	}
	c.Clear()
	if c.Len() != 0 || c.head != nil || c.tail != nil {
		t.Errorf("cache not empty after clear")
	}
}

func TestLruCache_IterateVisitsMostRecentFirst(t *testing.T) {
	c := NewLruCache[int, int](3)
	c.Set(1, 11)
	c.Set(2, 22)
	c.Set(3, 33)
	c.Get(1)

	var keys []int
	c.Iterate(func(key, _ int) bool {
		keys = append(keys, key)
		return true
	})
	if len(keys) != 3 || keys[0] != 1 || keys[1] != 3 || keys[2] != 2 {
		t.Errorf("unexpected iteration order %v", keys)
	}

	visited := 0
	c.Iterate(func(int, int) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("iteration did not stop, visited %d entries", visited)
	}
}

func TestMemoryFootprint_TotalCountsSharedChildrenOnce(t *testing.T) {
	shared := NewMemoryFootprint(10)
	a := NewMemoryFootprint(5)
	a.AddChild("shared", shared)
	root := NewMemoryFootprint(1)
	root.AddChild("a", a)
	root.AddChild("shared", shared)
	if got := root.Total(); got != 16 {
		t.Errorf("unexpected total, wanted 16, got %d", got)
	}
	if got := root.Value(); got != 1 {
		t.Errorf("unexpected value, wanted 1, got %d", got)
	}
	if root.String() == "" {
		t.Errorf("empty description")
	}
}
