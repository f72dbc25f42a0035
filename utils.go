package hashvec

func getZero[T any]() T {
	var result T
	return result
}
