package hashvec

// entryStore holds the pairs in positional order, 0..len-1 with no gaps.
// It knows nothing about key lookup; bounds are validated by the container
// before any call that takes a position.
type entryStore[K comparable, V any] struct {
	entries []Pair[K, V]
}

func (s *entryStore[K, V]) push(p Pair[K, V]) {
	s.entries = append(s.entries, p)
}

func (s *entryStore[K, V]) at(i int) Pair[K, V] {
	return s.entries[i]
}

func (s *entryStore[K, V]) valueRef(i int) *V {
	return &s.entries[i].Value
}

func (s *entryStore[K, V]) setValue(i int, v V) {
	s.entries[i].Value = v
}

func (s *entryStore[K, V]) setKey(i int, k K) {
	s.entries[i].Key = k
}

func (s *entryStore[K, V]) insertAt(i int, p Pair[K, V]) {
	s.entries = append(s.entries, Pair[K, V]{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = p
}

func (s *entryStore[K, V]) removeAt(i int) Pair[K, V] {
	removed := s.entries[i]
	copy(s.entries[i:], s.entries[i+1:])
	s.entries[len(s.entries)-1] = Pair[K, V]{}
	s.entries = s.entries[:len(s.entries)-1]
	return removed
}

func (s *entryStore[K, V]) swap(i, j int) {
	s.entries[i], s.entries[j] = s.entries[j], s.entries[i]
}

func (s *entryStore[K, V]) len() int {
	return len(s.entries)
}

func (s *entryStore[K, V]) clear() {
	s.entries = nil
}

func (s *entryStore[K, V]) snapshot() []Pair[K, V] {
	cp := make([]Pair[K, V], len(s.entries))
	copy(cp, s.entries)
	return cp
}
