// Package searchcache provides a bounded cache remembering which tree
// node was last found to cover a given range of the document, so that
// repeated nearby lookups (the common case while typing) skip the
// O(log n) tree descent.
//
// Entries are keyed by the node's own start offset, not by the query
// offset that produced them, and Lookup matches by range containment
// rather than exact equality — an offset hits whenever it falls inside
// some cached node's [nodeStart, nodeStart+length) span. This mirrors
// the original's PieceTreeSearchCache.get_position: a reverse scan over
// a small bounded list, newest entry first.
//
// Unlike the fuzzy-match LRU cache it's grounded on, this cache is not
// safe for concurrent use on its own: it is only ever reached through
// the piecetree façade, which already holds a lock around every
// mutation and lookup, so a second layer of locking here would just be
// redundant overhead.
package searchcache

import "container/list"

// Node is the minimal surface a cached tree node needs to expose.
type Node interface{}

type entry struct {
	nodeStart uint32
	length    uint32
	node      Node
}

// Cache is a bounded, newest-first list of (nodeStart, length, node)
// entries.
type Cache struct {
	maxSize int
	items   *list.List
}

// New creates a cache holding at most maxSize entries. maxSize <= 0
// defaults to 64.
func New(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 64
	}
	return &Cache{maxSize: maxSize, items: list.New()}
}

// Lookup scans cached entries newest-first and returns the first one
// whose [nodeStart, nodeStart+length) range contains offset.
func (c *Cache) Lookup(offset uint32) (Node, uint32, bool) {
	for e := c.items.Back(); e != nil; e = e.Prev() {
		en := e.Value.(*entry)
		if offset >= en.nodeStart && offset < en.nodeStart+en.length {
			return en.node, en.nodeStart, true
		}
	}
	return nil, 0, false
}

// Store records that node, spanning [nodeStart, nodeStart+length), was
// just resolved by a tree descent.
func (c *Cache) Store(nodeStart uint32, node Node, length uint32) {
	if c.items.Len() >= c.maxSize {
		c.items.Remove(c.items.Front())
	}
	c.items.PushBack(&entry{nodeStart: nodeStart, length: length, node: node})
}

// InvalidateFrom drops every cached entry whose span reaches offset,
// i.e. whose nodeStart+length is at or after offset: any mutation at
// offset can shift or replace nodes at and beyond it, and can split,
// shrink or remove the node containing offset or ending exactly at it.
// Only entries whose span ends strictly before offset stay cached.
func (c *Cache) InvalidateFrom(offset uint32) {
	for e := c.items.Front(); e != nil; {
		next := e.Next()
		if en := e.Value.(*entry); en.nodeStart+en.length >= offset {
			c.items.Remove(e)
		}
		e = next
	}
}

// Clear removes every cached entry.
func (c *Cache) Clear() {
	c.items.Init()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.items.Len()
}
