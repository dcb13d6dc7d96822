package cargo

import (
	"sort"
	"sync"
	"weak"
)

// Source owns carrier inventories.
type Source interface {
	// Inventory calls fn for each known owner until fn returns false.
	Inventory(fn func(owner string, tally Tally) bool)
	// Subscribe registers fn to run after every inventory change. The returned
	// cancel func removes it and is safe to call more than once.
	Subscribe(fn func()) (cancel func())
}

// Watch subscribes fn on src for owner without keeping owner alive. Once the
// owner has been garbage collected the subscription removes itself on the next
// notification. fn must not capture owner itself.
func Watch[T any](src Source, owner *T, fn func(*T)) (cancel func()) {
	ref := weak.Make(owner)

	var (
		mu       sync.Mutex
		unsub    func()
		dead     bool
		stopOnce sync.Once
	)
	stop := func() {
		mu.Lock()
		u := unsub
		dead = true
		mu.Unlock()
		if u != nil {
			stopOnce.Do(u)
		}
	}

	u := src.Subscribe(func() {
		o := ref.Value()
		if o == nil {
			stop()
			return
		}
		fn(o)
	})

	mu.Lock()
	unsub = u
	alreadyDead := dead
	mu.Unlock()
	if alreadyDead {
		stopOnce.Do(u)
	}
	return stop
}

// subscribers is the handler registry shared by the Source implementations.
type subscribers struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func()
}

func (s *subscribers) add(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handlers == nil {
		s.handlers = make(map[int]func())
	}
	id := s.nextID
	s.nextID++
	s.handlers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.handlers, id)
		})
	}
}

// notify runs every handler without holding the registry lock, so handlers may
// unsubscribe themselves.
func (s *subscribers) notify() {
	s.mu.Lock()
	ids := make([]int, 0, len(s.handlers))
	for id := range s.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.handlers[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *subscribers) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

// MemorySource is an in-memory Source. Set notifies subscribers synchronously.
type MemorySource struct {
	mu     sync.RWMutex
	owners map[string]Tally
	subs   subscribers
}

// NewMemorySource returns an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{owners: make(map[string]Tally)}
}

// Set replaces the inventory of owner and notifies subscribers.
func (m *MemorySource) Set(owner string, tally Tally) {
	cp := make(Tally, len(tally))
	for k, v := range tally {
		cp[k] = v
	}

	m.mu.Lock()
	m.owners[owner] = cp
	m.mu.Unlock()

	m.subs.notify()
}

// Inventory implements Source. Owners are visited in call-sign order.
func (m *MemorySource) Inventory(fn func(owner string, tally Tally) bool) {
	m.mu.RLock()
	names := make([]string, 0, len(m.owners))
	for name := range m.owners {
		names = append(names, name)
	}
	sort.Strings(names)
	tallies := make([]Tally, len(names))
	for i, name := range names {
		tallies[i] = m.owners[name]
	}
	m.mu.RUnlock()

	for i, name := range names {
		if !fn(name, tallies[i]) {
			return
		}
	}
}

// Subscribe implements Source.
func (m *MemorySource) Subscribe(fn func()) func() {
	return m.subs.add(fn)
}

// Subscribers returns the number of live subscriptions.
func (m *MemorySource) Subscribers() int {
	return m.subs.len()
}
