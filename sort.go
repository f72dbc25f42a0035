package hashvec

import (
	"sort"

	"golang.org/x/exp/constraints"
)

type LessPairFn[K comparable, V any] func(a Pair[K, V], b Pair[K, V]) (less bool)

// SortInPlaceBy reorders the entries by the given comparison, stable with
// respect to the current positional order, then reindexes every key.
func (hv *HashVec[K, V]) SortInPlaceBy(lessFn LessPairFn[K, V]) *HashVec[K, V] {
	sort.SliceStable(hv.store.entries, func(i, j int) bool {
		return lessFn(hv.store.entries[i], hv.store.entries[j])
	})

	for pos, p := range hv.store.entries {
		hv.index.set(p.Key, pos)
	}

	return hv
}

// SortBy sorts a clone and returns it, leaving the receiver untouched.
func (hv *HashVec[K, V]) SortBy(lessFn LessPairFn[K, V]) *HashVec[K, V] {
	return hv.Clone().SortInPlaceBy(lessFn)
}

// SortByKeys reorders hv in place into ascending key order.
func SortByKeys[K constraints.Ordered, V any](hv *HashVec[K, V]) *HashVec[K, V] {
	return hv.SortInPlaceBy(func(a Pair[K, V], b Pair[K, V]) bool {
		return a.Key < b.Key
	})
}
