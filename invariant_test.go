package hashvec

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertConsistent checks the joint store/index invariant: equal sizes,
// every indexed position valid and pointing at its own key, every stored
// entry indexed at its own position, no duplicated keys.
func assertConsistent[K comparable, V any](t *testing.T, hv *HashVec[K, V]) {
	t.Helper()

	require.Equal(t, hv.store.len(), hv.index.len(), "store and index must have equal sizes")

	for key, pos := range hv.index.positions {
		require.GreaterOrEqual(t, pos, 0)
		require.Less(t, pos, hv.store.len())
		require.Equal(t, key, hv.store.at(pos).Key, "indexed position must hold the indexed key")
	}

	seen := make(map[K]struct{}, hv.store.len())
	for i, p := range hv.store.entries {
		pos, found := hv.index.lookup(p.Key)
		require.True(t, found, "stored entry must be indexed")
		require.Equal(t, i, pos, "index must record the entry's actual position")

		_, dup := seen[p.Key]
		require.False(t, dup, "no two entries may share a key")
		seen[p.Key] = struct{}{}
	}
}

func TestInvariant_RandomOperationSequences(t *testing.T) {
	const (
		seqs      = 20
		opsPerSeq = 500
		keySpace  = 40
	)

	for seq := 0; seq < seqs; seq++ {
		seq := seq
		t.Run(fmt.Sprintf("sequence_%d", seq), func(t *testing.T) {
			rng := rand.New(rand.NewSource(int64(seq)))
			hv := New[string, int]()

			randomKey := func() string {
				return fmt.Sprintf("key_%d", rng.Intn(keySpace))
			}

			for op := 0; op < opsPerSeq; op++ {
				switch rng.Intn(10) {
				case 0, 1:
					hv.Insert(randomKey(), rng.Int())
				case 2, 3:
					hv.Push(randomKey(), rng.Int())
				case 4:
					hv.Remove(randomKey())
				case 5:
					hv.Pop()
				case 6:
					hv.SwapKeys(randomKey(), randomKey())
				case 7:
					if hv.Len() > 0 {
						i := rng.Intn(hv.Len())
						j := rng.Intn(hv.Len())
						require.NoError(t, hv.SwapIndices(i, j))
					}
				case 8:
					_, err := hv.Rename(randomKey(), randomKey())
					if err != nil {
						assert.ErrorIs(t, err, ErrKeyExists)
					}
				case 9:
					pos := rng.Intn(hv.Len() + 1)
					err := hv.InsertAt(pos, fmt.Sprintf("at_%d_%d", seq, op), rng.Int())
					require.NoError(t, err)
				}

				assertConsistent(t, hv)
			}
		})
	}
}

func TestInvariant_HoldsAfterClear(t *testing.T) {
	hv := New[string, int]()
	for i := 0; i < 50; i++ {
		hv.Insert(fmt.Sprintf("key_%d", i), i)
	}

	hv.Clear()
	assertConsistent(t, hv)

	hv.Insert("foo", 1)
	assertConsistent(t, hv)
}

func TestEntryStore_Shifts(t *testing.T) {
	t.Run("insertAt shifts the tail right", func(t *testing.T) {
		var s entryStore[string, int]
		s.push(Pair[string, int]{Key: "a", Value: 1})
		s.push(Pair[string, int]{Key: "b", Value: 2})
		s.push(Pair[string, int]{Key: "c", Value: 3})

		s.insertAt(1, Pair[string, int]{Key: "x", Value: 9})

		require.Equal(t, 4, s.len())
		assert.Equal(t, "a", s.at(0).Key)
		assert.Equal(t, "x", s.at(1).Key)
		assert.Equal(t, "b", s.at(2).Key)
		assert.Equal(t, "c", s.at(3).Key)
	})

	t.Run("removeAt shifts the tail left and returns the removed entry", func(t *testing.T) {
		var s entryStore[string, int]
		s.push(Pair[string, int]{Key: "a", Value: 1})
		s.push(Pair[string, int]{Key: "b", Value: 2})
		s.push(Pair[string, int]{Key: "c", Value: 3})

		removed := s.removeAt(1)

		assert.Equal(t, Pair[string, int]{Key: "b", Value: 2}, removed)
		require.Equal(t, 2, s.len())
		assert.Equal(t, "a", s.at(0).Key)
		assert.Equal(t, "c", s.at(1).Key)
	})

	t.Run("snapshot is independent of later mutation", func(t *testing.T) {
		var s entryStore[string, int]
		s.push(Pair[string, int]{Key: "a", Value: 1})

		snap := s.snapshot()
		s.setValue(0, 99)

		assert.Equal(t, 1, snap[0].Value)
	})
}

func TestPositionIndex_ShiftFrom(t *testing.T) {
	pi := newPositionIndex[string]()
	pi.set("a", 0)
	pi.set("b", 1)
	pi.set("c", 2)
	pi.set("d", 3)

	pi.shiftFrom(2, -1)

	posA, _ := pi.lookup("a")
	posB, _ := pi.lookup("b")
	posC, _ := pi.lookup("c")
	posD, _ := pi.lookup("d")

	assert.Equal(t, 0, posA)
	assert.Equal(t, 1, posB)
	assert.Equal(t, 1, posC)
	assert.Equal(t, 2, posD)

	pi.shiftFrom(1, 1)

	posB, _ = pi.lookup("b")
	posC, _ = pi.lookup("c")
	assert.Equal(t, 2, posB)
	assert.Equal(t, 2, posC)
}
