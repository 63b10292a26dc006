package browse

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
)

// CollectionDetailState is a snapshot of the detail loader.
// Collection names the fetch that produced Schema and Items.
type CollectionDetailState struct {
	Collection string
	Schema     *domain.ModelSchema
	Items      []domain.ContentItem
	Loading    bool
	Error      string
}

// CollectionDetail follows a Selection and loads the schema and items of the
// selected collection.
type CollectionDetail struct {
	api  ports.CollectionsAPI
	sel  *Selection
	ctx  context.Context
	opts options

	mu    sync.RWMutex
	state CollectionDetailState
	gen   uint64
	subs  observers[CollectionDetailState]
	wg    sync.WaitGroup

	stop func()
}

// NewCollectionDetail binds a loader to sel. If sel is already set, the first
// fetch starts before NewCollectionDetail returns; every later change of sel
// starts another one. Selection-triggered fetches run with ctx.
func NewCollectionDetail(ctx context.Context, api ports.CollectionsAPI, sel *Selection, opts ...Option) *CollectionDetail {
	d := &CollectionDetail{
		api:   api,
		sel:   sel,
		ctx:   ctx,
		opts:  buildOptions(opts),
		state: CollectionDetailState{Items: []domain.ContentItem{}},
	}
	d.stop = sel.Watch(d.onSelect, true)
	return d
}

// State returns the current snapshot.
func (d *CollectionDetail) State() CollectionDetailState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Subscribe registers fn to receive every new snapshot.
func (d *CollectionDetail) Subscribe(fn func(CollectionDetailState)) (unsubscribe func()) {
	return d.subs.add(fn)
}

// Fetch reloads the currently selected collection and blocks until both
// requests settle. It is a no-op when nothing is selected.
func (d *CollectionDetail) Fetch(ctx context.Context) {
	id, ok := d.sel.Get()
	if !ok {
		return
	}
	d.run(ctx, id, d.begin(id))
}

// Wait blocks until every selection-triggered fetch has settled.
func (d *CollectionDetail) Wait() {
	d.wg.Wait()
}

// Close stops following the selection. In-flight fetches still complete.
func (d *CollectionDetail) Close() {
	if d.stop != nil {
		d.stop()
	}
}

func (d *CollectionDetail) onSelect(ch SelectionChange) {
	if !ch.OK {
		return
	}
	gen := d.begin(ch.ID)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(d.ctx, ch.ID, gen)
	}()
}

func (d *CollectionDetail) begin(id string) uint64 {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.state.Loading = true
	d.state.Error = ""
	snap := d.state
	d.mu.Unlock()

	d.opts.log.Debug("detail.fetch.start", "collection", id, "gen", gen)
	d.subs.notify(snap)
	return gen
}

func (d *CollectionDetail) run(ctx context.Context, id string, gen uint64) {
	defer d.apply(gen, true, func(s *CollectionDetailState) { s.Loading = false })

	var (
		schema domain.ModelSchema
		items  []domain.ContentItem
		g      errgroup.Group
	)
	g.Go(func() error {
		var err error
		schema, err = d.api.GetSchema(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = d.api.ListContent(ctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		d.opts.log.Warn("detail.fetch.failed", "collection", id, "gen", gen, "err", err)
		d.apply(gen, false, func(s *CollectionDetailState) { s.Error = domain.Message(err) })
		return
	}
	if items == nil {
		items = []domain.ContentItem{}
	}

	d.opts.log.Debug("detail.fetch.ok", "collection", id, "gen", gen, "items", len(items))
	d.apply(gen, false, func(s *CollectionDetailState) {
		s.Collection = id
		s.Schema = &schema
		s.Items = items
	})
}

func (d *CollectionDetail) apply(gen uint64, settle bool, fn func(*CollectionDetailState)) {
	d.mu.Lock()
	if d.opts.staleGuard && gen != d.gen {
		d.mu.Unlock()
		if !settle {
			d.opts.log.Debug("detail.fetch.stale", "gen", gen)
		}
		return
	}
	fn(&d.state)
	snap := d.state
	d.mu.Unlock()

	d.subs.notify(snap)
}
