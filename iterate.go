package hashvec

import "context"

type (
	FilterFn[K comparable, V any]       func(key K, value V, order int) bool
	ForEachFn[K comparable, V any]      func(key K, value V, order int)
	ForEachUntilFn[K comparable, V any] func(key K, value V, order int) bool
	TransformerFn[K comparable, V any]  func(key K, value V, order int) V
)

// ForEach visits every pair in positional order, position 0 first. The
// callback must not mutate the HashVec.
func (hv *HashVec[K, V]) ForEach(f ForEachFn[K, V]) {
	for order, p := range hv.store.entries {
		f(p.Key, p.Value, order)
	}
}

// ForEachUntil visits pairs in positional order while the callback keeps
// returning true.
func (hv *HashVec[K, V]) ForEachUntil(f ForEachUntilFn[K, V]) {
	for order, p := range hv.store.entries {
		if !f(p.Key, p.Value, order) {
			break
		}
	}
}

// Pairs produces the pairs lazily over a channel, in positional order. The
// sequence is a snapshot taken when Pairs is called, so mutations of the
// HashVec after the call do not affect an in-flight iteration. The channel
// closes after the last pair or once ctx is cancelled.
func (hv *HashVec[K, V]) Pairs(ctx context.Context) <-chan Pair[K, V] {
	snapshot := hv.store.snapshot()
	resultCh := make(chan Pair[K, V])

	go func() {
		defer close(resultCh)

		for _, p := range snapshot {
			select {
			case resultCh <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	return resultCh
}

func (hv *HashVec[K, V]) Keys() []K {
	keys := make([]K, 0, hv.store.len())
	for _, p := range hv.store.entries {
		keys = append(keys, p.Key)
	}
	return keys
}

func (hv *HashVec[K, V]) Values() []V {
	values := make([]V, 0, hv.store.len())
	for _, p := range hv.store.entries {
		values = append(values, p.Value)
	}
	return values
}

// Filter returns a new HashVec with the pairs the callback preserved,
// relative order intact.
func (hv *HashVec[K, V]) Filter(f FilterFn[K, V]) *HashVec[K, V] {
	result := New[K, V]()
	for order, p := range hv.store.entries {
		if f(p.Key, p.Value, order) {
			result.Insert(p.Key, p.Value)
		}
	}
	return result
}

// Transform returns a new HashVec with every value replaced by the
// callback's result, keys and order intact.
func (hv *HashVec[K, V]) Transform(f TransformerFn[K, V]) *HashVec[K, V] {
	result := New[K, V]()
	for order, p := range hv.store.entries {
		result.Insert(p.Key, f(p.Key, p.Value, order))
	}
	return result
}

func (hv *HashVec[K, V]) Clone() *HashVec[K, V] {
	result := New[K, V]()
	for _, p := range hv.store.entries {
		result.Insert(p.Key, p.Value)
	}
	return result
}
