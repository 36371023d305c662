package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHits(prefix string, n int) []Hit {
	hits := make([]Hit, n)
	for i := range hits {
		hits[i] = Hit{
			ID:           fmt.Sprintf("pixabay/%s%d", prefix, i),
			Tags:         prefix,
			ThumbnailURL: fmt.Sprintf("https://cdn.test/%s%d_640.jpg", prefix, i),
			FullURL:      fmt.Sprintf("https://cdn.test/%s%d_1280.jpg", prefix, i),
		}
	}
	return hits
}

func startTag(t *testing.T, effects []Effect) FetchTag {
	t.Helper()
	for _, eff := range effects {
		if start, ok := eff.(StartFetch); ok {
			return start.Tag
		}
	}
	t.Fatalf("no StartFetch in %v", effects)
	return FetchTag{}
}

func TestSubmitStartsFirstPage(t *testing.T) {
	s, effects := Transition(State{}, Submit{Query: "  cats "})
	require.Len(t, effects, 1)
	tag := startTag(t, effects)
	assert.Equal(t, "cats", tag.Query)
	assert.Equal(t, 1, tag.Page)
	assert.Equal(t, "cats", s.Query)
	assert.Equal(t, 1, s.Page)
	assert.True(t, s.Loading)
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.False(t, s.CanLoadMore())
}

func TestSubmitSameQueryIsNoop(t *testing.T) {
	s, effects := Transition(State{}, Submit{Query: "cats"})
	s, _ = Transition(s, FetchSucceeded{Tag: startTag(t, effects), Result: ResultPage{Hits: makeHits("c", 5)}})

	next, effects := Transition(s, Submit{Query: "cats"})
	assert.Empty(t, effects)
	assert.Equal(t, s, next)

	// also while the first fetch is still running
	loading, effects := Transition(State{}, Submit{Query: "dogs"})
	tag := startTag(t, effects)
	next, effects = Transition(loading, Submit{Query: "dogs"})
	assert.Empty(t, effects)
	assert.Equal(t, tag, next.pending)
}

func TestSubmitEmptyQueryOnIdleIsNoop(t *testing.T) {
	s, effects := Transition(State{}, Submit{Query: "   "})
	assert.Empty(t, effects)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestSubmitEmptyQueryResetsToIdle(t *testing.T) {
	s, effects := Transition(State{}, Submit{Query: "cats"})
	s, _ = Transition(s, FetchSucceeded{Tag: startTag(t, effects), Result: ResultPage{Hits: makeHits("c", 2)}})

	s, effects = Transition(s, Submit{Query: ""})
	assert.Empty(t, effects)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.Hits)
	assert.Equal(t, 0, s.Page)
}

func TestCatsThenDogs(t *testing.T) {
	s, effects := Transition(State{}, Submit{Query: "cats"})
	s, effects = Transition(s, FetchSucceeded{Tag: startTag(t, effects), Result: ResultPage{TotalHits: 8, Hits: makeHits("c", 5)}})
	assert.Empty(t, effects)
	assert.Len(t, s.Hits, 5)
	assert.False(t, s.Loading)
	assert.Equal(t, PhaseLoaded, s.Phase())
	assert.True(t, s.CanLoadMore())

	s, effects = Transition(s, LoadMore{})
	tag := startTag(t, effects)
	assert.Equal(t, FetchTag{Query: "cats", Page: 2, Seq: tag.Seq}, tag)
	assert.Equal(t, 2, s.Page)

	s, effects = Transition(s, FetchSucceeded{Tag: tag, Result: ResultPage{TotalHits: 8, Hits: makeHits("d", 3)}})
	assert.Len(t, s.Hits, 8)
	require.Len(t, effects, 1)
	assert.Equal(t, ScrollBy{Pixels: 2 * CardHeight, Anchor: "hit-pixabay-d0"}, effects[0])

	s, effects = Transition(s, Submit{Query: "dogs"})
	tag = startTag(t, effects)
	assert.Equal(t, "dogs", tag.Query)
	assert.Equal(t, 1, tag.Page)
	assert.Empty(t, s.Hits)
	assert.Equal(t, 1, s.Page)
	assert.Nil(t, s.Err)
	assert.Equal(t, 0, s.TotalHits)
}

func TestAccumulatorSumsPages(t *testing.T) {
	sizes := []int{4, 4, 2}
	s, effects := Transition(State{}, Submit{Query: "sunset"})
	want := 0
	for i, n := range sizes {
		if i > 0 {
			s, effects = Transition(s, LoadMore{})
		}
		tag := startTag(t, effects)
		assert.Equal(t, i+1, tag.Page)
		s, _ = Transition(s, FetchSucceeded{Tag: tag, Result: ResultPage{Hits: makeHits(fmt.Sprint(i), n)}})
		want += n
		assert.Len(t, s.Hits, want)
	}
	assert.Equal(t, "pixabay/20", s.Hits[8].ID)
}

func TestTransitionDoesNotShareHits(t *testing.T) {
	s, effects := Transition(State{}, Submit{Query: "cats"})
	s, _ = Transition(s, FetchSucceeded{Tag: startTag(t, effects), Result: ResultPage{Hits: makeHits("a", 2)}})
	before := s

	s1, effects := Transition(before, LoadMore{})
	s1, _ = Transition(s1, FetchSucceeded{Tag: startTag(t, effects), Result: ResultPage{Hits: makeHits("b", 1)}})
	s2, effects := Transition(before, LoadMore{})
	s2, _ = Transition(s2, FetchSucceeded{Tag: startTag(t, effects), Result: ResultPage{Hits: makeHits("z", 1)}})

	assert.Len(t, before.Hits, 2)
	assert.Equal(t, "pixabay/b0", s1.Hits[2].ID)
	assert.Equal(t, "pixabay/z0", s2.Hits[2].ID)
}

func TestFailedFetchKeepsAccumulator(t *testing.T) {
	s, effects := Transition(State{}, Submit{Query: "cats"})
	s, _ = Transition(s, FetchSucceeded{Tag: startTag(t, effects), Result: ResultPage{Hits: makeHits("c", 3)}})
	s, effects = Transition(s, LoadMore{})

	cause := &FetchError{Source: "pixabay", Query: "cats", Page: 2, Err: &HTTPError{StatusCode: 400}}
	s, effects = Transition(s, FetchFailed{Tag: startTag(t, effects), Err: cause})
	assert.Len(t, s.Hits, 3)
	assert.Equal(t, 2, s.Page)
	assert.False(t, s.Loading)
	assert.Equal(t, PhaseFailed, s.Phase())
	assert.True(t, errors.Is(s.Err, ErrFetchFailed))
	require.Len(t, effects, 1)
	assert.Equal(t, ShowNotice{Level: NoticeFailure, Message: "Sorry something went wrong. pixabay: http 400"}, effects[0])

	// load more retries from the next page
	s, effects = Transition(s, LoadMore{})
	assert.Equal(t, 3, startTag(t, effects).Page)
}

func TestZeroHits(t *testing.T) {
	s, effects := Transition(State{}, Submit{Query: "qwertyuiop"})
	s, effects = Transition(s, FetchSucceeded{Tag: startTag(t, effects)})
	assert.Empty(t, s.Hits)
	assert.Equal(t, []Effect{ShowNotice{Level: NoticeWarning, Message: msgNoResults}}, effects)
	assert.False(t, s.CanLoadMore())

	s, effects = Transition(State{}, Submit{Query: "cats"})
	s, _ = Transition(s, FetchSucceeded{Tag: startTag(t, effects), Result: ResultPage{Hits: makeHits("c", 2)}})
	s, effects = Transition(s, LoadMore{})
	s, effects = Transition(s, FetchSucceeded{Tag: startTag(t, effects)})
	assert.Len(t, s.Hits, 2)
	assert.Equal(t, []Effect{
		ScrollBy{Pixels: 2 * CardHeight},
		ShowNotice{Level: NoticeWarning, Message: msgNoResults},
	}, effects)
}

func TestLoadMoreGuards(t *testing.T) {
	s, effects := Transition(State{}, LoadMore{})
	assert.Empty(t, effects)
	assert.Equal(t, PhaseIdle, s.Phase())

	s, effects = Transition(s, Submit{Query: "cats"})
	tag := startTag(t, effects)
	_, effects = Transition(s, LoadMore{})
	assert.Empty(t, effects, "load more while the first page is loading")

	s, _ = Transition(s, FetchSucceeded{Tag: tag, Result: ResultPage{Hits: makeHits("c", 1)}})
	s, effects = Transition(s, LoadMore{})
	require.Len(t, effects, 1)
	next, effects := Transition(s, LoadMore{})
	assert.Empty(t, effects, "load more while page 2 is loading")
	assert.Equal(t, 2, next.Page)
}

func TestStaleResponsesAreDiscarded(t *testing.T) {
	s, effects := Transition(State{}, Submit{Query: "cats"})
	catsTag := startTag(t, effects)

	s, effects = Transition(s, Submit{Query: "dogs"})
	require.Len(t, effects, 2)
	assert.Equal(t, CancelFetch{Tag: catsTag}, effects[0])
	dogsTag := startTag(t, effects)
	assert.NotEqual(t, catsTag.Seq, dogsTag.Seq)

	next, effects := Transition(s, FetchSucceeded{Tag: catsTag, Result: ResultPage{Hits: makeHits("c", 5)}})
	assert.Empty(t, effects)
	assert.Equal(t, s, next)

	next, effects = Transition(s, FetchFailed{Tag: catsTag, Err: errors.New("context canceled")})
	assert.Empty(t, effects)
	assert.Nil(t, next.Err)

	s, _ = Transition(s, FetchSucceeded{Tag: dogsTag, Result: ResultPage{Hits: makeHits("d", 2)}})
	assert.Len(t, s.Hits, 2)
	assert.Equal(t, "d", s.Hits[0].Tags)

	// a late duplicate of an already applied completion
	next, effects = Transition(s, FetchSucceeded{Tag: dogsTag, Result: ResultPage{Hits: makeHits("d", 2)}})
	assert.Empty(t, effects)
	assert.Len(t, next.Hits, 2)
}

func TestResubmitAfterSwitchingBack(t *testing.T) {
	s, effects := Transition(State{}, Submit{Query: "cats"})
	first := startTag(t, effects)
	s, _ = Transition(s, Submit{Query: "dogs"})
	s, effects = Transition(s, Submit{Query: "cats"})
	second := startTag(t, effects)

	assert.Equal(t, first.Query, second.Query)
	assert.Equal(t, first.Page, second.Page)

	next, _ := Transition(s, FetchSucceeded{Tag: first, Result: ResultPage{Hits: makeHits("old", 4)}})
	assert.Empty(t, next.Hits, "same query and page but an older fetch")
	assert.True(t, next.Loading)
}

func TestSuccessClearsError(t *testing.T) {
	s, effects := Transition(State{}, Submit{Query: "cats"})
	s, _ = Transition(s, FetchSucceeded{Tag: startTag(t, effects), Result: ResultPage{Hits: makeHits("c", 1)}})
	s, effects = Transition(s, LoadMore{})
	s, _ = Transition(s, FetchFailed{Tag: startTag(t, effects), Err: errors.New("boom")})
	require.Error(t, s.Err)

	s, effects = Transition(s, LoadMore{})
	s, _ = Transition(s, FetchSucceeded{Tag: startTag(t, effects), Result: ResultPage{Hits: makeHits("x", 1)}})
	assert.NoError(t, s.Err)
	assert.Equal(t, PhaseLoaded, s.Phase())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "loaded", PhaseLoaded.String())
	assert.Equal(t, "failed", PhaseFailed.String())
}
