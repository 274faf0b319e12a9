package searchcache

import "testing"

func TestStoreAndLookup(t *testing.T) {
	c := New(4)
	c.Store(5, "nodeA", 10) // node spans [5, 15)

	node, nodeStart, ok := c.Lookup(12)
	if !ok {
		t.Fatal("expected hit")
	}
	if node != "nodeA" || nodeStart != 5 {
		t.Fatalf("got (%v, %d), want (nodeA, 5)", node, nodeStart)
	}
}

func TestLookupRangeContainment(t *testing.T) {
	// The defining scenario spec.md §4.7 names: insert at an offset
	// inside a node, then query some other offset inside that same
	// node's span — it should hit without an exact-offset match.
	c := New(4)
	c.Store(100, "nodeA", 20) // [100, 120)

	for _, offset := range []uint32{100, 105, 119} {
		if _, nodeStart, ok := c.Lookup(offset); !ok || nodeStart != 100 {
			t.Fatalf("Lookup(%d) = (_, %v), want hit at nodeStart 100", offset, ok)
		}
	}
	if _, _, ok := c.Lookup(120); ok {
		t.Fatal("offset 120 is one past the node's end and should miss")
	}
	if _, _, ok := c.Lookup(99); ok {
		t.Fatal("offset 99 is before the node's start and should miss")
	}
}

func TestLookupMiss(t *testing.T) {
	c := New(4)
	if _, _, ok := c.Lookup(99); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestLookupPrefersNewestOverlappingEntry(t *testing.T) {
	c := New(4)
	c.Store(0, "stale", 50)
	c.Store(0, "fresh", 50) // same span, re-resolved more recently

	node, _, ok := c.Lookup(10)
	if !ok {
		t.Fatal("expected hit")
	}
	if node != "fresh" {
		t.Fatalf("got %v, want the newest entry", node)
	}
}

func TestEvictsOldestEntry(t *testing.T) {
	c := New(2)
	c.Store(0, "a", 1)
	c.Store(1, "b", 1)
	c.Store(2, "c", 1) // evicts nodeStart 0, the oldest entry

	if _, _, ok := c.Lookup(0); ok {
		t.Fatal("nodeStart 0 should have been evicted")
	}
	if _, _, ok := c.Lookup(1); !ok {
		t.Fatal("nodeStart 1 should still be cached")
	}
	if _, _, ok := c.Lookup(2); !ok {
		t.Fatal("nodeStart 2 should still be cached")
	}
}

func TestInvalidateFromDropsAtAndAfter(t *testing.T) {
	c := New(8)
	c.Store(0, "a", 1)
	c.Store(3, "b", 2)
	c.Store(8, "c", 2)

	c.InvalidateFrom(5)

	if _, _, ok := c.Lookup(0); !ok {
		t.Fatal("nodeStart 0 (before invalidation point) should survive")
	}
	if _, _, ok := c.Lookup(3); ok {
		t.Fatal("nodeStart 3 should have been invalidated")
	}
	if _, _, ok := c.Lookup(8); ok {
		t.Fatal("nodeStart 8 should have been invalidated")
	}
}

func TestClearRemovesEverything(t *testing.T) {
	c := New(8)
	c.Store(0, "a", 1)
	c.Store(1, "b", 1)
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", c.Len())
	}
}
