package main

import (
	"slices"
	"strings"
)

// CardHeight is the rendered height of one thumbnail row, in pixels.
const CardHeight = 300

const (
	msgNoResults   = "No results were found for your search, please try something else."
	msgFetchFailed = "Sorry something went wrong. "
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// FetchTag identifies one issued fetch. Completions carry the tag they were
// issued with and are dropped unless it is still the pending one.
type FetchTag struct {
	Query string
	Page  int
	Seq   uint64
}

// State is the gallery controller state. Values are never mutated in place
// by Transition; Hits of an older State stay valid.
type State struct {
	Query     string
	Page      int
	Hits      []Hit
	TotalHits int
	Loading   bool
	Err       error

	pending FetchTag
	seq     uint64
}

func (s State) Phase() Phase {
	switch {
	case s.Query == "":
		return PhaseIdle
	case s.Loading:
		return PhaseLoading
	case s.Err != nil:
		return PhaseFailed
	default:
		return PhaseLoaded
	}
}

// CanLoadMore reports whether a LoadMore event would issue a fetch.
func (s State) CanLoadMore() bool {
	return len(s.Hits) > 0 && !s.Loading
}

type Event interface{ isEvent() }

type Submit struct{ Query string }

type LoadMore struct{}

type FetchSucceeded struct {
	Tag    FetchTag
	Result ResultPage
}

type FetchFailed struct {
	Tag FetchTag
	Err error
}

func (Submit) isEvent()         {}
func (LoadMore) isEvent()       {}
func (FetchSucceeded) isEvent() {}
func (FetchFailed) isEvent()    {}

type Effect interface{ isEffect() }

type StartFetch struct{ Tag FetchTag }

type CancelFetch struct{ Tag FetchTag }

type ShowNotice struct {
	Level   NoticeLevel
	Message string
}

// ScrollBy asks the view to scroll forward to the first new hit.
type ScrollBy struct {
	Pixels int
	Anchor string
}

func (StartFetch) isEffect()  {}
func (CancelFetch) isEffect() {}
func (ShowNotice) isEffect()  {}
func (ScrollBy) isEffect()    {}

// Transition applies ev to s. It has no side effects; everything the
// caller must do is returned as effects, in order.
func Transition(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Submit:
		return submit(s, strings.TrimSpace(ev.Query))
	case LoadMore:
		if !s.CanLoadMore() {
			return s, nil
		}
		return issue(s, s.Page+1)
	case FetchSucceeded:
		if !s.Loading || ev.Tag != s.pending {
			return s, nil
		}
		return succeeded(s, ev)
	case FetchFailed:
		if !s.Loading || ev.Tag != s.pending {
			return s, nil
		}
		s.Loading = false
		s.pending = FetchTag{}
		s.Err = ev.Err
		return s, []Effect{ShowNotice{Level: NoticeFailure, Message: msgFetchFailed + ev.Err.Error()}}
	}
	return s, nil
}

func submit(s State, query string) (State, []Effect) {
	if query == s.Query {
		return s, nil
	}
	var effects []Effect
	if s.Loading {
		effects = append(effects, CancelFetch{Tag: s.pending})
	}
	s = State{seq: s.seq}
	if query == "" {
		return s, effects
	}
	s.Query = query
	s, start := issue(s, 1)
	return s, append(effects, start...)
}

func issue(s State, page int) (State, []Effect) {
	s.seq++
	s.Page = page
	s.Loading = true
	s.pending = FetchTag{Query: s.Query, Page: page, Seq: s.seq}
	return s, []Effect{StartFetch{Tag: s.pending}}
}

func succeeded(s State, ev FetchSucceeded) (State, []Effect) {
	var effects []Effect
	first := len(s.Hits)
	// Equivalent of slices.Concat (Go 1.22+): always a fresh backing array.
	hits := slices.Grow([]Hit(nil), len(s.Hits)+len(ev.Result.Hits))
	hits = append(hits, s.Hits...)
	s.Hits = append(hits, ev.Result.Hits...)
	s.TotalHits = ev.Result.TotalHits
	s.Loading = false
	s.pending = FetchTag{}
	s.Err = nil

	if ev.Tag.Page > 1 {
		scroll := ScrollBy{Pixels: 2 * CardHeight}
		if first < len(s.Hits) {
			scroll.Anchor = s.Hits[first].Anchor()
		}
		effects = append(effects, scroll)
	}
	if len(ev.Result.Hits) == 0 {
		effects = append(effects, ShowNotice{Level: NoticeWarning, Message: msgNoResults})
	}
	return s, effects
}
