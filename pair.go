package hashvec

type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// P is a shorthand pair constructor for FromPairs literals.
func P[K comparable, V any](key K, value V) Pair[K, V] {
	return Pair[K, V]{Key: key, Value: value}
}

type OrderedPair[K comparable, V any] struct {
	Order int
	Key   K
	Value V
}

type OrderedPairs[K comparable, V any] []OrderedPair[K, V]

func (op OrderedPairs[K, V]) Len() int {
	return len(op)
}

func (op OrderedPairs[K, V]) Swap(i, j int) {
	op[i], op[j] = op[j], op[i]
}

func (op OrderedPairs[K, V]) Less(i, j int) bool {
	return op[i].Order < op[j].Order
}
