package excel

import "iter"

// Iterator walks positions start..end-1 and yields only those the probe
// reports as present. The next item is looked up once and buffered, so
// HasNext may be called any number of times and Next works without it.
type Iterator[T any] struct {
	pos   int
	end   int
	probe func(int) (T, bool)

	buffered bool
	item     T
}

func newIterator[T any](start, end int, probe func(int) (T, bool)) *Iterator[T] {
	return &Iterator[T]{pos: start, end: end, probe: probe}
}

// HasNext reports whether another item is available.
func (it *Iterator[T]) HasNext() bool {
	if it.buffered {
		return true
	}
	for it.pos < it.end {
		p := it.pos
		it.pos++
		if v, ok := it.probe(p); ok {
			it.item = v
			it.buffered = true
			return true
		}
	}
	return false
}

// Next returns the next item, or false when the iterator is exhausted.
func (it *Iterator[T]) Next() (T, bool) {
	if !it.HasNext() {
		var zero T
		return zero, false
	}
	v := it.item
	var zero T
	it.item = zero
	it.buffered = false
	return v, true
}

// All returns the remaining items as a range-over-func sequence.
func (it *Iterator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Collect drains the iterator into a slice.
func (it *Iterator[T]) Collect() []T {
	var out []T
	for v := range it.All() {
		out = append(out, v)
	}
	return out
}
