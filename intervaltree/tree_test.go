package intervaltree

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsphweid/noteindex/model"
	"github.com/jsphweid/noteindex/ranges"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// span is a bare ranged value; only the Range takes part in equality.
type span struct {
	r ranges.Range
}

func (s span) Range() ranges.Range   { return s.r }
func (s span) Equal(other span) bool { return s.r == other.r }
func (s span) Less(other span) bool  { return s.r.Less(other.r) }

func sp(low, high int) span { return span{r: ranges.MustNew(low, high)} }

func note(pitch uint8, low, high int) model.Note {
	return model.Note{Span: ranges.MustNew(low, high), Pitch: pitch}
}

var noteCmp = cmp.Comparer(func(a, b ranges.Range) bool { return a == b })

func TestExampleQueries(t *testing.T) {
	tree, err := Build([]span{sp(10, 20), sp(5, 20), sp(10, 25)})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]span{sp(5, 20), sp(10, 20), sp(10, 25)}, tree.Query(12))
	assert.Equal([]span{sp(10, 25)}, tree.Query(22))
	assert.Empty(tree.Query(26))
	assert.Empty(tree.Query(4))
}

func TestBuildNilBatch(t *testing.T) {
	_, err := Build[model.Note](nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildRejectsInvalidRange(t *testing.T) {
	_, err := Build([]model.Note{{Pitch: 60}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEmptyTree(t *testing.T) {
	tree, err := Build([]model.Note{})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.True(tree.IsEmpty())
	assert.Equal(0, tree.NodeCount())
	assert.Equal(0, tree.ElementCount())
	assert.Equal(0, tree.Height())
	assert.NotNil(tree.Query(5))
	assert.Empty(tree.Query(5))

	res, err := tree.QueryRange(ranges.MustNew(0, 100))
	assert.NoError(err)
	assert.Empty(res)
	assert.Empty(tree.Ordered())

	_, ok := tree.Span()
	assert.False(ok)
}

func TestQueryRangeRejectsZeroWindow(t *testing.T) {
	tree, err := Build([]model.Note{note(60, 0, 10)})
	require.NoError(t, err)

	_, err = tree.QueryRange(ranges.Range{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDuplicatesShareOneBag(t *testing.T) {
	cases := map[string]struct {
		batch         []model.Note
		wantElements  int
		wantNodes     int
		queryAt       int
		wantAtQueryAt []model.Note
	}{
		"SamePitchSameRange": {
			batch:         []model.Note{note(60, 0, 10), note(60, 0, 10)},
			wantElements:  1,
			wantNodes:     1,
			queryAt:       5,
			wantAtQueryAt: []model.Note{note(60, 0, 10)},
		},
		"ChordSharesRange": {
			batch:         []model.Note{note(67, 0, 10), note(60, 0, 10), note(64, 0, 10)},
			wantElements:  3,
			wantNodes:     1,
			queryAt:       10,
			wantAtQueryAt: []model.Note{note(60, 0, 10), note(64, 0, 10), note(67, 0, 10)},
		},
		"MetadataDoesNotDistinguish": {
			batch: []model.Note{
				{Span: ranges.MustNew(0, 10), Pitch: 60, Velocity: 10},
				{Span: ranges.MustNew(0, 10), Pitch: 60, Velocity: 90},
			},
			wantElements:  1,
			wantNodes:     1,
			queryAt:       0,
			wantAtQueryAt: []model.Note{{Span: ranges.MustNew(0, 10), Pitch: 60, Velocity: 10}},
		},
		"SamePitchDifferentRange": {
			batch:         []model.Note{note(60, 0, 10), note(60, 5, 15)},
			wantElements:  2,
			wantNodes:     2,
			queryAt:       7,
			wantAtQueryAt: []model.Note{note(60, 0, 10), note(60, 5, 15)},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tree, err := Build(tc.batch)
			require.NoError(t, err)

			assert := assert.New(t)
			assert.Equal(tc.wantElements, tree.ElementCount())
			assert.Equal(tc.wantNodes, tree.NodeCount())
			assert.Equal(tc.wantAtQueryAt, tree.Query(tc.queryAt))
		})
	}
}

func TestElementCountGrowsOnlyForDistinctPayloads(t *testing.T) {
	batch := []model.Note{note(60, 0, 10)}
	counts := []int{}
	for _, next := range []model.Note{note(60, 0, 10), note(62, 0, 10), note(64, 0, 10)} {
		batch = append(batch, next)
		tree, err := Build(batch)
		require.NoError(t, err)
		counts = append(counts, tree.ElementCount())
		assert.Equal(t, 1, tree.NodeCount())
	}
	assert.Equal(t, []int{1, 2, 3}, counts)
}

func randomNotes(rng *rand.Rand, n int) []model.Note {
	res := make([]model.Note, 0, n)
	for i := 0; i < n; i++ {
		low := rng.Intn(1000)
		high := low + 1 + rng.Intn(120)
		res = append(res, note(uint8(48+rng.Intn(6)), low, high))
	}
	// force some exact duplicates and shared ranges
	for i := 0; i < n/10; i++ {
		res = append(res, res[rng.Intn(len(res))])
		shared := res[rng.Intn(len(res))]
		shared.Pitch = uint8(90 + rng.Intn(10))
		res = append(res, shared)
	}
	return res
}

func dedupe(batch []model.Note) []model.Note {
	var res []model.Note
	for _, n := range batch {
		dup := false
		for _, have := range res {
			if have.Equal(n) {
				dup = true
				break
			}
		}
		if !dup {
			res = append(res, n)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Less(res[j]) })
	return res
}

func bruteForce(batch []model.Note, keep func(model.Note) bool) []model.Note {
	res := []model.Note{}
	for _, n := range dedupe(batch) {
		if keep(n) {
			res = append(res, n)
		}
	}
	return res
}

func TestQueriesMatchBruteForce(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			batch := randomNotes(rng, 300)
			tree, err := Build(batch)
			require.NoError(t, err)

			require.Equal(t, len(dedupe(batch)), tree.ElementCount())

			for p := -5; p <= 1130; p += 3 {
				want := bruteForce(batch, func(n model.Note) bool { return n.Span.Contains(p) })
				if diff := cmp.Diff(want, tree.Query(p), noteCmp); diff != "" {
					t.Fatalf("query(%d) mismatch (-want +got):\n%s", p, diff)
				}
			}

			for i := 0; i < 200; i++ {
				low := rng.Intn(1100)
				w := ranges.MustNew(low, low+1+rng.Intn(80))
				got, err := tree.QueryRange(w)
				require.NoError(t, err)
				want := bruteForce(batch, func(n model.Note) bool { return n.Span.Overlaps(w) })
				if diff := cmp.Diff(want, got, noteCmp); diff != "" {
					t.Fatalf("query(%v) mismatch (-want +got):\n%s", w, diff)
				}
			}
		})
	}
}

func TestShapeIndependentOfInsertionOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	batch := randomNotes(rng, 200)
	first, err := Build(batch)
	require.NoError(t, err)

	shuffled := append([]model.Note(nil), batch...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	second, err := Build(shuffled)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(first.NodeCount(), second.NodeCount())
	assert.Equal(first.ElementCount(), second.ElementCount())
	assert.Equal(first.Height(), second.Height())
	assert.Equal(first.Ordered(), second.Ordered())
	for p := 0; p < 1100; p += 7 {
		assert.Equal(first.Query(p), second.Query(p))
	}
}

func TestHeightIsLogarithmic(t *testing.T) {
	// sorted input is the worst case for a naive BST
	var batch []span
	for i := 0; i < 1023; i++ {
		batch = append(batch, sp(i, i+5))
	}
	tree, err := Build(batch)
	require.NoError(t, err)

	assert.Equal(t, 1023, tree.NodeCount())
	assert.Equal(t, 10, tree.Height())
}

func TestOrderedAndSpan(t *testing.T) {
	tree, err := Build([]model.Note{note(64, 30, 40), note(60, 0, 10), note(62, 5, 100), note(59, 0, 10)})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.Note{note(59, 0, 10), note(60, 0, 10), note(62, 5, 100), note(64, 30, 40)}, tree.Ordered())

	s, ok := tree.Span()
	assert.True(ok)
	assert.Equal(ranges.MustNew(0, 100), s)
}

func TestResultsAreCopies(t *testing.T) {
	tree, err := Build([]model.Note{note(60, 0, 10), note(64, 0, 10)})
	require.NoError(t, err)

	res := tree.Query(5)
	res[0].Pitch = 1
	res[1] = note(1, 1, 2)

	assert.Equal(t, []model.Note{note(60, 0, 10), note(64, 0, 10)}, tree.Query(5))
}

func TestRepeatedAndConcurrentQueriesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree, err := Build(randomNotes(rng, 150))
	require.NoError(t, err)

	w := ranges.MustNew(200, 400)
	want, err := tree.QueryRange(w)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]model.Note, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = tree.QueryRange(w)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
