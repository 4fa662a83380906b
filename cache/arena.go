package cache

// entryRef is a stable reference to an entry in the arena. References remain
// valid across insertions and removals of other entries; a removed entry's
// reference is invalidated by bumping the slot generation, so stale use is
// detected rather than silently resolving to a recycled entry.
type entryRef struct {
	slot int32
	gen  uint32
}

// noRef is the zero reference; it never resolves.
var noRef = entryRef{slot: -1}

// arenaEntry holds one cached key/value plus the intrusive list links.
// prev/next are slot indices into the arena, -1 for list ends.
type arenaEntry[K, V any] struct {
	key        K
	value      V
	accessedAt int64 // unix nanoseconds of the last use
	prev       int32
	next       int32
	gen        uint32
	used       bool
}

// entryArena is the recency store: a doubly-linked list of entries laid out
// in a slice-backed arena. Front = most recently used, back = least recently
// used. All of push-front, move-to-front, and remove-by-reference are O(1).
type entryArena[K, V any] struct {
	slots []arenaEntry[K, V]
	free  []int32 // recycled slot indices
	head  int32
	tail  int32
	size  int
}

func newEntryArena[K, V any](capacityHint int) *entryArena[K, V] {
	return &entryArena[K, V]{
		slots: make([]arenaEntry[K, V], 0, capacityHint),
		head:  -1,
		tail:  -1,
	}
}

func (a *entryArena[K, V]) len() int {
	return a.size
}

// resolve returns the entry a reference points at, or nil if the reference
// is stale (slot recycled or never allocated).
func (a *entryArena[K, V]) resolve(ref entryRef) *arenaEntry[K, V] {
	if ref.slot < 0 || int(ref.slot) >= len(a.slots) {
		return nil
	}
	e := &a.slots[ref.slot]
	if !e.used || e.gen != ref.gen {
		return nil
	}
	return e
}

// pushFront allocates an entry at the front of the recency order and returns
// its stable reference.
func (a *entryArena[K, V]) pushFront(key K, value V, now int64) entryRef {
	var slot int32
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, arenaEntry[K, V]{})
		slot = int32(len(a.slots) - 1)
	}

	e := &a.slots[slot]
	e.key = key
	e.value = value
	e.accessedAt = now
	e.used = true
	e.prev = -1
	e.next = a.head

	if a.head >= 0 {
		a.slots[a.head].prev = slot
	}
	a.head = slot
	if a.tail < 0 {
		a.tail = slot
	}
	a.size++

	return entryRef{slot: slot, gen: e.gen}
}

// moveToFront relocates the referenced entry to the front of the recency
// order. Returns false for a stale reference.
func (a *entryArena[K, V]) moveToFront(ref entryRef) bool {
	e := a.resolve(ref)
	if e == nil {
		return false
	}
	if a.head == ref.slot {
		return true
	}

	a.unlink(ref.slot)

	e.prev = -1
	e.next = a.head
	if a.head >= 0 {
		a.slots[a.head].prev = ref.slot
	}
	a.head = ref.slot
	if a.tail < 0 {
		a.tail = ref.slot
	}

	return true
}

// remove destroys the referenced entry, returning its key and value.
// The slot generation is bumped so the reference can never resolve again.
func (a *entryArena[K, V]) remove(ref entryRef) (K, V, bool) {
	e := a.resolve(ref)
	if e == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}

	a.unlink(ref.slot)

	key := e.key
	value := e.value

	var zeroK K
	var zeroV V
	e.key = zeroK // release references held by the slot
	e.value = zeroV
	e.used = false
	e.gen++

	a.free = append(a.free, ref.slot)
	a.size--

	return key, value, true
}

// back returns a reference to the least recently used entry.
func (a *entryArena[K, V]) back() (entryRef, bool) {
	if a.tail < 0 {
		return noRef, false
	}
	return entryRef{slot: a.tail, gen: a.slots[a.tail].gen}, true
}

// clear destroys every entry. Generations are bumped slot by slot so any
// reference issued before the clear is invalidated.
func (a *entryArena[K, V]) clear() {
	var zeroK K
	var zeroV V
	for i := range a.slots {
		e := &a.slots[i]
		if !e.used {
			continue
		}
		e.key = zeroK
		e.value = zeroV
		e.used = false
		e.gen++
		a.free = append(a.free, int32(i))
	}
	a.head = -1
	a.tail = -1
	a.size = 0
}

// walk visits entries front to back (most to least recently used), stopping
// early if fn returns false.
func (a *entryArena[K, V]) walk(fn func(e *arenaEntry[K, V]) bool) {
	for slot := a.head; slot >= 0; slot = a.slots[slot].next {
		if !fn(&a.slots[slot]) {
			return
		}
	}
}

// walkBack visits entries back to front (least to most recently used).
func (a *entryArena[K, V]) walkBack(fn func(e *arenaEntry[K, V]) bool) {
	for slot := a.tail; slot >= 0; slot = a.slots[slot].prev {
		if !fn(&a.slots[slot]) {
			return
		}
	}
}

// unlink detaches a slot from the list without freeing it.
func (a *entryArena[K, V]) unlink(slot int32) {
	e := &a.slots[slot]

	if e.prev >= 0 {
		a.slots[e.prev].next = e.next
	} else {
		a.head = e.next
	}
	if e.next >= 0 {
		a.slots[e.next].prev = e.prev
	} else {
		a.tail = e.prev
	}

	e.prev = -1
	e.next = -1
}
