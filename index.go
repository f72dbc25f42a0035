package hashvec

// positionIndex maps keys to their current position in the entry store.
// Positions are opaque integers here; keeping them in sync with the store
// after shifts is the container's job.
type positionIndex[K comparable] struct {
	positions map[K]int
}

func newPositionIndex[K comparable]() positionIndex[K] {
	return positionIndex[K]{positions: make(map[K]int)}
}

func (pi *positionIndex[K]) lookup(key K) (int, bool) {
	pos, found := pi.positions[key]
	return pos, found
}

func (pi *positionIndex[K]) set(key K, pos int) {
	pi.positions[key] = pos
}

func (pi *positionIndex[K]) remove(key K) {
	delete(pi.positions, key)
}

// shiftFrom adjusts every recorded position >= from by delta. Restores
// the key->position mapping after the store shifted on insertAt/removeAt.
func (pi *positionIndex[K]) shiftFrom(from, delta int) {
	for key, pos := range pi.positions {
		if pos >= from {
			pi.positions[key] = pos + delta
		}
	}
}

func (pi *positionIndex[K]) len() int {
	return len(pi.positions)
}

func (pi *positionIndex[K]) clear() {
	pi.positions = make(map[K]int)
}
