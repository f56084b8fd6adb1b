package analysis

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrCategoryNotFound is returned when a breakdown is asked for a
	// category that does not occur in the data.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrDivisionByZero is returned when a rate is taken over zero rows.
	ErrDivisionByZero = errors.New("division by zero")
)

// Breakdown is an aggregate keyed by category. Keys are kept in ascending
// order, which is also the order ArgMax breaks ties in.
type Breakdown[K cmp.Ordered, V int | float64] struct {
	keys   []K
	values map[K]V
}

func newBreakdown[K cmp.Ordered, V int | float64](values map[K]V) Breakdown[K, V] {
	keys := make([]K, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return Breakdown[K, V]{keys: keys, values: values}
}

// Get returns the value for key, or ErrCategoryNotFound.
func (b Breakdown[K, V]) Get(key K) (V, error) {
	v, ok := b.values[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrCategoryNotFound, key)
	}
	return v, nil
}

// Keys returns the categories in ascending order.
func (b Breakdown[K, V]) Keys() []K { return slices.Clone(b.keys) }

// Len returns the number of categories.
func (b Breakdown[K, V]) Len() int { return len(b.keys) }

// ArgMax returns the category with the largest value. The first key in
// ascending order wins a tie.
func (b Breakdown[K, V]) ArgMax() (K, error) {
	var best K
	if len(b.keys) == 0 {
		return best, fmt.Errorf("%w: empty breakdown", ErrCategoryNotFound)
	}
	best = b.keys[0]
	for _, k := range b.keys[1:] {
		if b.values[k] > b.values[best] {
			best = k
		}
	}
	return best, nil
}

// Map returns a copy of the breakdown as a plain map.
func (b Breakdown[K, V]) Map() map[K]V {
	out := make(map[K]V, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}
