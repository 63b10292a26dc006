package browse

import (
	"sort"
	"sync"
)

// observers is a registry of callbacks keyed by a registration id.
type observers[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
}

func (o *observers[T]) add(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fns == nil {
		o.fns = map[int]func(T){}
	}
	id := o.next
	o.next++
	o.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.fns, id)
			o.mu.Unlock()
		})
	}
}

// notify calls every observer outside the registry lock, in registration order.
func (o *observers[T]) notify(v T) {
	o.mu.Lock()
	ids := make([]int, 0, len(o.fns))
	for id := range o.fns {
		ids = append(ids, id)
	}
	fns := make([]func(T), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, o.fns[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
