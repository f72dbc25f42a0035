package hashvec

import (
	"fmt"

	"github.com/pkg/errors"
)

// HashVec is an insertion-ordered map whose entries are addressable both by
// key and by position, each in O(1) amortized time. The positional order is
// caller controlled: insertion order by default, mutable through Push,
// InsertAt, SwapKeys, SwapIndices and the sort helpers.
//
// A HashVec is not safe for concurrent use; a caller sharing one across
// goroutines must synchronize externally. Any mutating operation invalidates
// pointers previously obtained via GetRef.
type HashVec[K comparable, V any] struct {
	store entryStore[K, V]
	index positionIndex[K]
}

func New[K comparable, V any]() *HashVec[K, V] {
	return &HashVec[K, V]{
		index: newPositionIndex[K](),
	}
}

// NewWithCapacity preallocates room for n entries.
func NewWithCapacity[K comparable, V any](n int) *HashVec[K, V] {
	return &HashVec[K, V]{
		store: entryStore[K, V]{entries: make([]Pair[K, V], 0, n)},
		index: positionIndex[K]{positions: make(map[K]int, n)},
	}
}

// FromPairs builds a HashVec by applying Push semantics to each pair in
// order: a duplicated key keeps the last occurrence's value at the position
// of its last occurrence.
func FromPairs[K comparable, V any](pairs ...Pair[K, V]) *HashVec[K, V] {
	hv := New[K, V]()
	for i := range pairs {
		hv.Push(pairs[i].Key, pairs[i].Value)
	}
	return hv
}

// Insert upserts in place: an existing key keeps its position and only the
// value changes, an absent key is appended. Returns true when a new entry
// was added.
func (hv *HashVec[K, V]) Insert(key K, value V) (added bool) {
	if pos, found := hv.index.lookup(key); found {
		hv.store.setValue(pos, value)
		return false
	}

	hv.index.set(key, hv.store.len())
	hv.store.push(Pair[K, V]{Key: key, Value: value})
	return true
}

// Push upserts to the end: an existing key is unlinked from its current
// position first, so the entry always lands at position Len()-1.
func (hv *HashVec[K, V]) Push(key K, value V) {
	if pos, found := hv.index.lookup(key); found {
		hv.store.removeAt(pos)
		hv.index.remove(key)
		hv.index.shiftFrom(pos+1, -1)
	}

	hv.index.set(key, hv.store.len())
	hv.store.push(Pair[K, V]{Key: key, Value: value})
}

// InsertAt places a new entry at position i, shifting entries at i and
// above one slot later. i == Len() appends. The key must not be present:
// positional insertion is not an upsert.
func (hv *HashVec[K, V]) InsertAt(i int, key K, value V) error {
	if i < 0 || i > hv.store.len() {
		return errors.Wrapf(ErrIndexOutOfRange, "cannot insert at position %d with length %d", i, hv.store.len())
	}

	if pos, found := hv.index.lookup(key); found {
		return errors.Wrapf(ErrKeyExists, "at position %d", pos)
	}

	hv.index.shiftFrom(i, 1)
	hv.index.set(key, i)
	hv.store.insertAt(i, Pair[K, V]{Key: key, Value: value})
	return nil
}

func (hv *HashVec[K, V]) HasGet(key K) (V, bool) {
	pos, found := hv.index.lookup(key)
	if !found {
		return getZero[V](), false
	}

	return hv.store.at(pos).Value, true
}

func (hv *HashVec[K, V]) Get(key K) V {
	v, _ := hv.HasGet(key)
	return v
}

// GetRef returns a pointer to the stored value so the caller can mutate it
// in place. The pointer is only valid until the next mutating operation on
// the HashVec, which may relocate or destroy the entry.
func (hv *HashVec[K, V]) GetRef(key K) (*V, bool) {
	pos, found := hv.index.lookup(key)
	if !found {
		return nil, false
	}

	return hv.store.valueRef(pos), true
}

func (hv *HashVec[K, V]) Has(key K) bool {
	_, found := hv.index.lookup(key)
	return found
}

// Index reports the current position of a key.
func (hv *HashVec[K, V]) Index(key K) (int, bool) {
	return hv.index.lookup(key)
}

// At returns the pair at position i. Positions outside [0, Len) are a caller
// logic error and panic, same as indexing a slice; validity is checkable
// upfront via Len.
func (hv *HashVec[K, V]) At(i int) Pair[K, V] {
	if i < 0 || i >= hv.store.len() {
		panic(fmt.Sprintf("hashvec: position %d out of range with length %d", i, hv.store.len()))
	}

	return hv.store.at(i)
}

func (hv *HashVec[K, V]) Len() int {
	return hv.store.len()
}

func (hv *HashVec[K, V]) IsEmpty() bool {
	return hv.store.len() == 0
}

// Rename changes an entry's key in place; position and value are untouched.
// A missing oldKey reports (false, nil). When newKey already belongs to a
// different entry the rename is rejected with ErrKeyExists and the container
// is left unchanged: silently swallowing the other entry would break key
// uniqueness.
func (hv *HashVec[K, V]) Rename(oldKey K, newKey K) (renamed bool, err error) {
	pos, found := hv.index.lookup(oldKey)
	if !found {
		return false, nil
	}

	if other, occupied := hv.index.lookup(newKey); occupied {
		if other == pos {
			return true, nil
		}
		return false, errors.Wrapf(ErrKeyExists, "cannot rename to key held by position %d", other)
	}

	hv.store.setKey(pos, newKey)
	hv.index.remove(oldKey)
	hv.index.set(newKey, pos)
	return true, nil
}

// HasRemove removes the entry for key preserving the relative order of all
// other entries, and returns the removed value.
func (hv *HashVec[K, V]) HasRemove(key K) (V, bool) {
	pos, found := hv.index.lookup(key)
	if !found {
		return getZero[V](), false
	}

	removed := hv.store.removeAt(pos)
	hv.index.remove(key)
	hv.index.shiftFrom(pos+1, -1)
	return removed.Value, true
}

func (hv *HashVec[K, V]) Remove(key K) V {
	v, _ := hv.HasRemove(key)
	return v
}

// SwapKeys exchanges the positions of two entries resolved by key. Returns
// false when either key is absent; the container is untouched in that case.
func (hv *HashVec[K, V]) SwapKeys(a K, b K) (swapped bool) {
	i, foundA := hv.index.lookup(a)
	if !foundA {
		return false
	}

	j, foundB := hv.index.lookup(b)
	if !foundB {
		return false
	}

	hv.swapPositions(i, j)
	return true
}

// SwapIndices exchanges the entries at two positions.
func (hv *HashVec[K, V]) SwapIndices(i, j int) error {
	n := hv.store.len()
	if i < 0 || i >= n || j < 0 || j >= n {
		return errors.Wrapf(ErrIndexOutOfRange, "cannot swap positions %d and %d with length %d", i, j, n)
	}

	hv.swapPositions(i, j)
	return nil
}

func (hv *HashVec[K, V]) swapPositions(i, j int) {
	if i == j {
		return
	}

	hv.store.swap(i, j)
	hv.index.set(hv.store.at(i).Key, i)
	hv.index.set(hv.store.at(j).Key, j)
}

// Pop removes and returns the last entry. No shifting happens, so the other
// entries keep their positions.
func (hv *HashVec[K, V]) Pop() (Pair[K, V], bool) {
	n := hv.store.len()
	if n == 0 {
		return Pair[K, V]{}, false
	}

	removed := hv.store.removeAt(n - 1)
	hv.index.remove(removed.Key)
	return removed, true
}

func (hv *HashVec[K, V]) Clear() {
	hv.store.clear()
	hv.index.clear()
}

// Append drains other into hv with Push semantics pair by pair, leaving
// other empty. Keys already present in hv end up at the back with other's
// value.
func (hv *HashVec[K, V]) Append(other *HashVec[K, V]) {
	for _, p := range other.store.entries {
		hv.Push(p.Key, p.Value)
	}

	other.Clear()
}
