package problemgen

// Key is the tuple that identifies a question's semantic content. Family
// separates question types within a skill (an operator, a comparison
// relation, a coin question type); A, B and C are skill-specific components.
type Key struct {
	Family int
	A      int
	B      int
	C      int
}

// Tracker records which keys have been asked in one session so that no
// question repeats. It is not safe for concurrent use; a session owns its
// tracker and discards it when the session ends.
type Tracker struct {
	used      map[Key]struct{}
	forbidden map[Key]struct{}
	perFamily map[int]int
	order     []Key
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		used:      make(map[Key]struct{}),
		forbidden: make(map[Key]struct{}),
		perFamily: make(map[int]int),
	}
}

// IsUsed reports whether k was already issued or is forbidden.
func (t *Tracker) IsUsed(k Key) bool {
	if _, ok := t.used[k]; ok {
		return true
	}
	_, ok := t.forbidden[k]
	return ok
}

// MarkUsed records k as issued. Marking a key twice has no further effect.
func (t *Tracker) MarkUsed(k Key) {
	if _, ok := t.used[k]; ok {
		return
	}
	t.used[k] = struct{}{}
	t.perFamily[k.Family]++
	t.order = append(t.order, k)
}

// Forbid pre-seeds k as unusable without counting it as issued.
func (t *Tracker) Forbid(k Key) {
	t.forbidden[k] = struct{}{}
}

// Count returns the number of issued keys in family.
func (t *Tracker) Count(family int) int {
	return t.perFamily[family]
}

// Len returns the total number of issued keys.
func (t *Tracker) Len() int {
	return len(t.order)
}

// Keys returns the issued keys in issue order.
func (t *Tracker) Keys() []Key {
	out := make([]Key, len(t.order))
	copy(out, t.order)
	return out
}

// maxDrawAttempts bounds rejection sampling. Every keyspace that is not
// checked for exhaustion up front holds at least 60 keys, far more than any
// session asks, so hitting the bound means the pool is effectively empty.
const maxDrawAttempts = 20000

// drawUnused repeatedly calls draw until it yields a valid key that t has not
// seen, marks that key used and returns it.
func drawUnused(t *Tracker, draw func() (Key, bool)) (Key, error) {
	for range maxDrawAttempts {
		k, ok := draw()
		if !ok || t.IsUsed(k) {
			continue
		}
		t.MarkUsed(k)
		return k, nil
	}
	return Key{}, ErrKeyspaceExhausted
}

// exhausted reports whether a family with a finite capacity is used up.
func exhausted(t *Tracker, family, capacity int) bool {
	return t.Count(family) >= capacity
}
