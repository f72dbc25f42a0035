package hashvec

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

const DefaultConcurrency = 1

type (
	StreamFilterFn[K comparable, V any]    func(key K, value V, order int) bool
	StreamTransformFn[K comparable, V any] func(key K, value V, order int) V
	StreamForEachFn[K comparable, V any]   func(key K, value V, order int)

	piper[K comparable, V any] func(ctx context.Context, flow *flow[K, V]) *flow[K, V]
)

// Stream is a lazy pipeline over a HashVec's pairs. Stages run with
// configurable concurrency; Run restores the source's positional order among
// the surviving pairs before materializing the result. The source is read as
// a snapshot, so mutating it after Run starts does not affect the pipeline.
type Stream[K comparable, V any] struct {
	hv          *HashVec[K, V]
	concurrency uint8

	mux       sync.Mutex
	functions []piper[K, V]
}

// Stream starts a pipeline over hv's pairs.
func (hv *HashVec[K, V]) Stream(options ...FlowOption) *Stream[K, V] {
	fc := flowControl{
		concurrency: DefaultConcurrency,
	}

	for _, o := range options {
		o(&fc)
	}

	return &Stream[K, V]{
		hv:          hv,
		concurrency: fc.concurrency,
	}
}

func (hv *HashVec[K, V]) orderedPairs(ctx context.Context) <-chan OrderedPair[K, V] {
	snapshot := hv.store.snapshot()
	resultCh := make(chan OrderedPair[K, V])

	go func() {
		defer close(resultCh)

		for order, p := range snapshot {
			op := OrderedPair[K, V]{
				Order: order,
				Key:   p.Key,
				Value: p.Value,
			}

			select {
			case resultCh <- op:
			case <-ctx.Done():
				return
			}
		}
	}()

	return resultCh
}

func (s *Stream[K, V]) Filter(
	filter StreamFilterFn[K, V],
	options ...FlowOption,
) *Stream[K, V] {
	fc := flowControl{
		concurrency: s.concurrency,
	}

	for _, o := range options {
		o(&fc)
	}

	f := func(ctx context.Context, flow *flow[K, V]) *flow[K, V] {
		out := newFlow[K, V](fc.concurrency)

		var wg sync.WaitGroup
		wg.Add(int(fc.concurrency))

		for i := 0; i < int(fc.concurrency); i++ {
			go func() {
				defer wg.Done()

				for {
					select {
					case <-out.stop:
						flow.stop <- struct{}{}
						return
					case pair, ok := <-flow.ch:
						if !ok {
							return
						}
						if filter(pair.Key, pair.Value, pair.Order) {
							out.ch <- pair
						}
					case <-ctx.Done():
						return
					}
				}
			}()
		}

		go func() {
			wg.Wait()
			close(out.ch)
		}()

		return out
	}

	s.append(f)
	return s
}

func (s *Stream[K, V]) Transform(
	transform StreamTransformFn[K, V],
	options ...FlowOption,
) *Stream[K, V] {
	fc := flowControl{
		concurrency: s.concurrency,
	}

	for _, o := range options {
		o(&fc)
	}

	f := func(ctx context.Context, flow *flow[K, V]) *flow[K, V] {
		out := newFlow[K, V](fc.concurrency)

		var wg sync.WaitGroup
		wg.Add(int(fc.concurrency))

		for i := 0; i < int(fc.concurrency); i++ {
			go func() {
				defer wg.Done()

				for {
					select {
					case <-out.stop:
						flow.stop <- struct{}{}
						return
					case pair, ok := <-flow.ch:
						if !ok {
							return
						}
						out.ch <- OrderedPair[K, V]{
							Order: pair.Order,
							Key:   pair.Key,
							Value: transform(pair.Key, pair.Value, pair.Order),
						}
					case <-ctx.Done():
						return
					}
				}
			}()
		}

		go func() {
			wg.Wait()
			close(out.ch)
		}()

		return out
	}

	s.append(f)
	return s
}

func (s *Stream[K, V]) ForEach(
	effector StreamForEachFn[K, V],
	options ...FlowOption,
) *Stream[K, V] {
	fc := flowControl{
		concurrency: s.concurrency,
	}

	for _, o := range options {
		o(&fc)
	}

	f := func(ctx context.Context, flow *flow[K, V]) *flow[K, V] {
		out := newFlow[K, V](fc.concurrency)

		var wg sync.WaitGroup
		wg.Add(int(fc.concurrency))

		for i := 0; i < int(fc.concurrency); i++ {
			go func() {
				defer wg.Done()

				for {
					select {
					case <-out.stop:
						flow.stop <- struct{}{}
						return
					case pair, ok := <-flow.ch:
						if !ok {
							return
						}
						effector(pair.Key, pair.Value, pair.Order)
						out.ch <- pair
					case <-ctx.Done():
						return
					}
				}
			}()
		}

		go func() {
			wg.Wait()
			close(out.ch)
		}()

		return out
	}

	s.append(f)
	return s
}

// Take passes through the first n pairs to arrive and stops the upstream.
// Works only in single threaded mode; under concurrency "first n" is not
// deterministic.
func (s *Stream[K, V]) Take(n int) *Stream[K, V] {
	f := func(ctx context.Context, flow *flow[K, V]) *flow[K, V] {
		out := newFlow[K, V](1)

		go func() {
			defer close(out.ch)

			taken := 0
			for taken < n {
				select {
				case pair, ok := <-flow.ch:
					if !ok {
						return
					}
					out.ch <- pair
					taken++
				case <-out.stop:
					flow.stop <- struct{}{}
					return
				case <-ctx.Done():
					return
				}
			}

			flow.stop <- struct{}{}
		}()

		return out
	}

	s.append(f)
	return s
}

// Run executes the pipeline and materializes the surviving pairs into a new
// HashVec, in the source's positional order.
func (s *Stream[K, V]) Run(runCtx context.Context) (*HashVec[K, V], error) {
	outFlow, err := s.run(runCtx)
	if err != nil {
		return nil, err
	}

	var pairSlice OrderedPairs[K, V]

resultLoop:
	for {
		select {
		case result, ok := <-outFlow.ch:
			if !ok {
				break resultLoop
			}
			pairSlice = append(pairSlice, result)
		case <-runCtx.Done():
			return nil, runCtx.Err()
		}
	}

	sort.Sort(pairSlice)

	result := New[K, V]()
	for _, op := range pairSlice {
		result.Insert(op.Key, op.Value)
	}

	return result, nil
}

func (s *Stream[K, V]) run(runCtx context.Context) (*flow[K, V], error) {
	if s.concurrency < 1 {
		return nil, errors.Wrapf(ErrInvalidConcurrency, "should be at least 1, got %d", s.concurrency)
	}

	inFlow := newFlow[K, V](s.concurrency)

	go func() {
		ctx, cancel := context.WithCancel(runCtx)

		defer func() {
			cancel()
			close(inFlow.ch)
		}()

		for p := range s.hv.orderedPairs(ctx) {
			select {
			case inFlow.ch <- p:
			case <-inFlow.stop:
				return
			case <-runCtx.Done():
				return
			}
		}
	}()

	return s.launchActionOnFlow(runCtx, 0, inFlow), nil
}

func (s *Stream[K, V]) launchActionOnFlow(ctx context.Context, action int, f *flow[K, V]) *flow[K, V] {
	if action >= len(s.functions) {
		return f
	}

	out := s.functions[action](ctx, f)
	return s.launchActionOnFlow(ctx, action+1, out)
}

func (s *Stream[K, V]) append(f piper[K, V]) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.functions = append(s.functions, f)
}
