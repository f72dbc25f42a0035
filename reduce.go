package hashvec

import (
	"context"

	"github.com/pkg/errors"
)

type (
	ReduceFn[K comparable, V, R any] func(carry R, key K, value V, order int) R

	reduceSink[K comparable, V, R any] func(ctx context.Context, flow *flow[K, V]) (R, error)

	// ReducableStream is a Stream whose sink folds the surviving pairs into
	// a single result instead of a new HashVec.
	ReducableStream[K comparable, V, R any] struct {
		Stream[K, V]
		sink reduceSink[K, V, R]
	}
)

func NewReducableStream[K comparable, V, R any](
	hv *HashVec[K, V],
	options ...FlowOption,
) *ReducableStream[K, V, R] {
	fc := flowControl{
		concurrency: DefaultConcurrency,
	}

	for _, o := range options {
		o(&fc)
	}

	return &ReducableStream[K, V, R]{
		Stream: Stream[K, V]{
			hv:          hv,
			concurrency: fc.concurrency,
		},
	}
}

// Reduce installs the folding sink. The reducer receives each pair's
// original position as order; arrival order follows stage completion when
// the pipeline runs concurrently.
func (s *ReducableStream[K, V, R]) Reduce(
	reducer ReduceFn[K, V, R],
) *ReducableStream[K, V, R] {
	f := func(ctx context.Context, flow *flow[K, V]) (R, error) {
		var result R
		for {
			select {
			case <-ctx.Done():
				return getZero[R](), errors.Wrap(ctx.Err(), "reduce interrupted")
			case pair, ok := <-flow.ch:
				if !ok {
					return result, nil
				}
				result = reducer(result, pair.Key, pair.Value, pair.Order)
			}
		}
	}

	s.sink = f

	return s
}

func (s *ReducableStream[K, V, R]) PipeToResult(ctx context.Context) (R, error) {
	if s.sink == nil {
		return getZero[R](), ErrReducerRequired
	}

	outFlow, err := s.run(ctx)
	if err != nil {
		return getZero[R](), errors.Wrap(err, "reducable hashvec stream failed")
	}

	result, err := s.sink(ctx, outFlow)
	if err != nil {
		return getZero[R](), errors.Wrap(err, "reducable hashvec stream failed")
	}

	return result, nil
}
