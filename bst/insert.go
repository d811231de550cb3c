package bst

// Insert adds val to the tree. It is safe to call from any number of goroutines at once, including on an
// empty tree, and never fails.
func (t *Tree) Insert(val uint32) {
	t.insert(val, nil)
}

// insertStats is owned by a single writer, so it needs no synchronization of its own.
type insertStats struct {
	inserted  int64
	locks     int64
	lostRaces int64
}

func (t *Tree) insert(val uint32, st *insertStats) {
	slot, guard := &t.root, &t.mu
	for {
		// optimistic read: an occupied slot is final, follow it without locking
		if n := slot.Load(); n != nil {
			slot, guard = n.slotFor(val), &n.mu
			continue
		}

		guard.Lock()
		if slot.Load() == nil {
			slot.Store(newNode(val))
			guard.Unlock()
			if st != nil {
				st.locks++
				st.inserted++
			}
			return
		}
		// another writer filled the slot between our read and the lock
		guard.Unlock()
		if st != nil {
			st.locks++
			st.lostRaces++
		}
	}
}
