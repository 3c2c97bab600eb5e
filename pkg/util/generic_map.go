package util

import "sync"

// GenericMap is a concurrent safe map with generic key and value types.
type GenericMap[K comparable, V any] struct {
	m sync.Map
}

// NewGenericMap creates a new instance of GenericMap.
func NewGenericMap[K comparable, V any]() *GenericMap[K, V] {
	return &GenericMap[K, V]{}
}

// Load returns the value stored for key and whether it was present.
func (m *GenericMap[K, V]) Load(key K) (value V, ok bool) {
	v, loaded := m.m.Load(key)
	if !loaded {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (m *GenericMap[K, V]) Store(key K, value V) {
	m.m.Store(key, value)
}

// LoadOrStore keeps an existing value for key, otherwise stores value.
// loaded is true when the existing value was kept.
func (m *GenericMap[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	v, loaded := m.m.LoadOrStore(key, value)
	return v.(V), loaded
}

// LoadAndDelete removes key and returns the value it held.
func (m *GenericMap[K, V]) LoadAndDelete(key K) (value V, loaded bool) {
	v, loaded := m.m.LoadAndDelete(key)
	if !loaded {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (m *GenericMap[K, V]) Clear() {
	m.m.Clear()
}

func (m *GenericMap[K, V]) Range(f func(key K, value V) bool) {
	m.m.Range(func(k, v any) bool {
		return f(k.(K), v.(V))
	})
}

// Values returns the values accepted by keep, in unspecified order.
func (m *GenericMap[K, V]) Values(keep func(V) bool) []V {
	out := []V{}
	m.Range(func(_ K, v V) bool {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
		return true
	})
	return out
}

func (m *GenericMap[K, V]) Len() int {
	n := 0
	m.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
