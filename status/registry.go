package status

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Registry is the central metrics facade
// Systems cache pointers at construction; update loops write directly to atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
	Bools  *MetricMap[atomic.Bool]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
		Bools:  NewMetricMap[atomic.Bool](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Bools.Count()
}

// Values flattens every numeric metric into a sorted-key map, bools as 0/1
func (r *Registry) Values() map[string]float64 {
	out := make(map[string]float64, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = float64(v.Load()) })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Bools.Range(func(k string, v *atomic.Bool) {
		if v.Load() {
			out[k] = 1
		} else {
			out[k] = 0
		}
	})
	return out
}

// MetricMap maps names to lazily allocated metric cells
// Registration locks; access through a cached pointer does not
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the cell for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok = m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

// Range visits every cell in sorted key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m.items[k])
	}
}

// Count returns the number of registered cells
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
