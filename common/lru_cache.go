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

import "unsafe"

// LruCache is a capacity bounded map evicting the least recently used entry.
// It is not safe for concurrent use.
type LruCache[K comparable, V any] struct {
	cache    map[K]*entry[K, V]
	capacity int
	head     *entry[K, V]
	tail     *entry[K, V]
}

type entry[K comparable, V any] struct {
	key  K
	val  V
	prev *entry[K, V]
	next *entry[K, V]
}

// NewLruCache returns a new instance holding at most capacity entries.
func NewLruCache[K comparable, V any](capacity int) *LruCache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LruCache[K, V]{
		cache:    make(map[K]*entry[K, V], capacity),
		capacity: capacity,
	}
}

// Get returns a value from the cache or false. A hit marks the entry as used.
func (c *LruCache[K, V]) Get(key K) (V, bool) {
	item, exists := c.cache[key]
	if !exists {
		var zero V
		return zero, false
	}
	c.touch(item)
	return item.val, true
}

// Set associates a value to the key and marks the key as used. If the cache
// is full, the least recently used entry is evicted and returned.
func (c *LruCache[K, V]) Set(key K, val V) (evictedKey K, evictedValue V, evicted bool) {
	if item, exists := c.cache[key]; exists {
		item.val = val
		c.touch(item)
		return
	}

	var item *entry[K, V]
	if len(c.cache) >= c.capacity {
		item = c.dropLast() // reuse evicted object for the new entry
		evictedKey, evictedValue, evicted = item.key, item.val, true
	} else {
		item = new(entry[K, V])
	}
	item.key = key
	item.val = val
	c.cache[key] = item
	c.pushFront(item)
	return
}

// Remove deletes the key and returns the value it held.
func (c *LruCache[K, V]) Remove(key K) (original V, exists bool) {
	item, exists := c.cache[key]
	if !exists {
		return original, false
	}
	delete(c.cache, key)
	c.unlink(item)
	return item.val, true
}

// Len returns the number of cached entries.
func (c *LruCache[K, V]) Len() int {
	return len(c.cache)
}

// Iterate calls the callback for each entry from the most to the least
// recently used one, until the callback returns false.
func (c *LruCache[K, V]) Iterate(callback func(K, V) bool) {
	for item := c.head; item != nil; item = item.next {
		if !callback(item.key, item.val) {
			return
		}
	}
}

// Clear removes all entries.
func (c *LruCache[K, V]) Clear() {
	c.cache = make(map[K]*entry[K, V], c.capacity)
	c.head = nil
	c.tail = nil
}

func (c *LruCache[K, V]) GetMemoryFootprint(referencedResourcesSize uintptr) *MemoryFootprint {
	entrySize := unsafe.Sizeof(entry[K, V]{}) + unsafe.Sizeof((*entry[K, V])(nil))
	return NewMemoryFootprint(unsafe.Sizeof(*c) + uintptr(c.capacity)*entrySize + referencedResourcesSize)
}

func (c *LruCache[K, V]) touch(item *entry[K, V]) {
	if item == c.head {
		return
	}
	c.unlink(item)
	c.pushFront(item)
}

func (c *LruCache[K, V]) pushFront(item *entry[K, V]) {
	item.prev = nil
	item.next = c.head
	if c.head != nil {
		c.head.prev = item
	}
	c.head = item
	if c.tail == nil {
		c.tail = item
	}
}

func (c *LruCache[K, V]) unlink(item *entry[K, V]) {
	if item.prev != nil {
		item.prev.next = item.next
	} else {
		c.head = item.next
	}
	if item.next != nil {
		item.next.prev = item.prev
	} else {
		c.tail = item.prev
	}
	item.prev = nil
	item.next = nil
}

func (c *LruCache[K, V]) dropLast() *entry[K, V] {
	last := c.tail
	delete(c.cache, last.key)
	c.unlink(last)
	return last
}
