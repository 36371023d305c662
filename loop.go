package main

import (
	"context"
	"log/slog"
	"sync"
)

// Observer receives the UI side effects of the controller. Calls are made
// from the gallery loop goroutine and must not block for long.
type Observer interface {
	Notice(level NoticeLevel, message string)
	Scroll(s ScrollBy)
}

// View is an immutable snapshot of the controller state.
type View struct {
	Query       string `json:"query"`
	Page        int    `json:"page"`
	Hits        []Hit  `json:"hits"`
	TotalHits   int    `json:"totalHits"`
	Loading     bool   `json:"loading"`
	Error       string `json:"error,omitempty"`
	Phase       string `json:"phase"`
	CanLoadMore bool   `json:"canLoadMore"`
}

func viewOf(s State) View {
	v := View{
		Query:       s.Query,
		Page:        s.Page,
		Hits:        s.Hits,
		TotalHits:   s.TotalHits,
		Loading:     s.Loading,
		Phase:       s.Phase().String(),
		CanLoadMore: s.CanLoadMore(),
	}
	if s.Err != nil {
		v.Error = s.Err.Error()
	}
	return v
}

type dispatch struct {
	ev    Event
	reply chan View
}

type inflight struct {
	tag    FetchTag
	cancel context.CancelFunc
}

// Gallery runs the controller: it owns the State, applies events one at a
// time and performs the fetches the transitions ask for.
type Gallery struct {
	searcher ImageSearcher
	observer Observer
	log      *slog.Logger

	events  chan dispatch
	results chan Event
	done    chan struct{}

	// loop goroutine only
	state   State
	fetches map[uint64]inflight

	mu      sync.Mutex
	view    View
	changed chan struct{}
}

func NewGallery(searcher ImageSearcher, observer Observer, logger *slog.Logger) *Gallery {
	return &Gallery{
		searcher: searcher,
		observer: observer,
		log:      logger.With("component", "gallery"),
		events:   make(chan dispatch),
		results:  make(chan Event),
		done:     make(chan struct{}),
		fetches:  map[uint64]inflight{},
		view:     viewOf(State{}),
		changed:  make(chan struct{}),
	}
}

// Run processes events until ctx is cancelled. In-flight fetches are
// cancelled on the way out.
func (g *Gallery) Run(ctx context.Context) error {
	defer close(g.done)
	defer func() {
		for seq, f := range g.fetches {
			g.log.Debug("cancel fetch on stop", "q", f.tag.Query, "page", f.tag.Page, "seq", seq)
			f.cancel()
			delete(g.fetches, seq)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case d := <-g.events:
			g.apply(ctx, d.ev)
			d.reply <- g.Snapshot()
		case ev := <-g.results:
			g.apply(ctx, ev)
		}
	}
}

// Dispatch hands ev to the loop and returns the view after it was applied.
func (g *Gallery) Dispatch(ctx context.Context, ev Event) (View, error) {
	d := dispatch{ev: ev, reply: make(chan View, 1)}
	select {
	case g.events <- d:
	case <-g.done:
		return View{}, ErrClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
	select {
	case v := <-d.reply:
		return v, nil
	case <-g.done:
		return View{}, ErrClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

func (g *Gallery) Snapshot() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view
}

// WaitIdle blocks until no fetch is in flight.
func (g *Gallery) WaitIdle(ctx context.Context) (View, error) {
	for {
		g.mu.Lock()
		v, changed := g.view, g.changed
		g.mu.Unlock()
		if !v.Loading {
			return v, nil
		}
		select {
		case <-changed:
		case <-g.done:
			return g.Snapshot(), ErrClosed
		case <-ctx.Done():
			return v, ctx.Err()
		}
	}
}

func (g *Gallery) apply(ctx context.Context, ev Event) {
	var done *FetchTag
	switch ev := ev.(type) {
	case FetchSucceeded:
		done = &ev.Tag
	case FetchFailed:
		done = &ev.Tag
	}
	if done != nil {
		g.finish(*done)
		if *done != g.state.pending {
			g.log.Debug("discard stale result", "q", done.Query, "page", done.Page, "seq", done.Seq)
		}
	}

	next, effects := Transition(g.state, ev)
	g.state = next

	for _, eff := range effects {
		switch eff := eff.(type) {
		case StartFetch:
			g.start(ctx, eff.Tag)
		case CancelFetch:
			g.log.Debug("cancel fetch", "q", eff.Tag.Query, "page", eff.Tag.Page, "seq", eff.Tag.Seq)
			g.finish(eff.Tag)
		case ShowNotice:
			if g.observer != nil {
				g.observer.Notice(eff.Level, eff.Message)
			}
		case ScrollBy:
			if g.observer != nil {
				g.observer.Scroll(eff)
			}
		}
	}
	g.publish()
}

func (g *Gallery) publish() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.view = viewOf(g.state)
	close(g.changed)
	g.changed = make(chan struct{})
}

func (g *Gallery) finish(tag FetchTag) {
	if f, ok := g.fetches[tag.Seq]; ok {
		f.cancel()
		delete(g.fetches, tag.Seq)
	}
}

func (g *Gallery) start(ctx context.Context, tag FetchTag) {
	fctx, cancel := context.WithCancel(ctx)
	g.fetches[tag.Seq] = inflight{tag: tag, cancel: cancel}
	g.log.Debug("start fetch", "q", tag.Query, "page", tag.Page, "seq", tag.Seq)

	go func() {
		res, err := g.searcher.Search(fctx, tag.Query, tag.Page)
		var ev Event
		if err != nil {
			ev = FetchFailed{Tag: tag, Err: &FetchError{
				Source: g.searcher.Type(),
				Query:  tag.Query,
				Page:   tag.Page,
				Err:    err,
			}}
		} else {
			ev = FetchSucceeded{Tag: tag, Result: res}
		}
		select {
		case g.results <- ev:
		case <-ctx.Done():
		}
	}()
}
