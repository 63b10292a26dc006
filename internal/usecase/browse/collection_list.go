package browse

import (
	"context"
	"sync"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
)

// CollectionListState is a snapshot of the catalog loader.
// Error is empty when the last fetch succeeded.
type CollectionListState struct {
	Collections []domain.ModelSchema
	Loading     bool
	Error       string
}

// CollectionList loads the list of available collections (GET /schema).
type CollectionList struct {
	api  ports.SchemaSource
	opts options

	mu     sync.RWMutex
	state  CollectionListState
	gen    uint64
	subs   observers[CollectionListState]
	active sync.Once
	wg     sync.WaitGroup
}

func NewCollectionList(api ports.SchemaSource, opts ...Option) *CollectionList {
	return &CollectionList{
		api:   api,
		opts:  buildOptions(opts),
		state: CollectionListState{Collections: []domain.ModelSchema{}},
	}
}

// State returns the current snapshot.
func (l *CollectionList) State() CollectionListState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Subscribe registers fn to receive every new snapshot.
func (l *CollectionList) Subscribe(fn func(CollectionListState)) (unsubscribe func()) {
	return l.subs.add(fn)
}

// Activate starts the initial fetch in the background. Only the first call
// has an effect; use Fetch for refreshes.
func (l *CollectionList) Activate(ctx context.Context) {
	l.active.Do(func() {
		gen := l.begin()
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.run(ctx, gen)
		}()
	})
}

// Fetch loads the collections and blocks until the request settles.
// Failures are recorded in the state, never returned.
func (l *CollectionList) Fetch(ctx context.Context) {
	l.run(ctx, l.begin())
}

// Wait blocks until background fetches started by Activate have settled.
func (l *CollectionList) Wait() {
	l.wg.Wait()
}

func (l *CollectionList) begin() uint64 {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.state.Loading = true
	l.state.Error = ""
	snap := l.state
	l.mu.Unlock()

	l.opts.log.Debug("collections.fetch.start", "gen", gen)
	l.subs.notify(snap)
	return gen
}

func (l *CollectionList) run(ctx context.Context, gen uint64) {
	defer l.apply(gen, true, func(s *CollectionListState) { s.Loading = false })

	list, err := l.api.ListSchemas(ctx)
	if err != nil {
		l.opts.log.Warn("collections.fetch.failed", "gen", gen, "err", err)
		l.apply(gen, false, func(s *CollectionListState) { s.Error = domain.Message(err) })
		return
	}

	l.opts.log.Debug("collections.fetch.ok", "gen", gen, "count", len(list))
	l.apply(gen, false, func(s *CollectionListState) { s.Collections = list })
}

// apply mutates the state under the lock and notifies observers. With the
// stale guard enabled, results of superseded fetches are dropped.
func (l *CollectionList) apply(gen uint64, settle bool, fn func(*CollectionListState)) {
	l.mu.Lock()
	if l.opts.staleGuard && gen != l.gen {
		l.mu.Unlock()
		if !settle {
			l.opts.log.Debug("collections.fetch.stale", "gen", gen)
		}
		return
	}
	fn(&l.state)
	snap := l.state
	l.mu.Unlock()

	l.subs.notify(snap)
}
