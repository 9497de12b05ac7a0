package geos

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/dhconnelly/rtreego"
)

// oracleItem wraps an envelope for rtreego storage so tree query results can
// be cross-checked against an independent R-tree implementation.
type oracleItem struct {
	env  Envelope
	item int
}

// Bounds implements rtreego.Spatial interface.
func (o *oracleItem) Bounds() rtreego.Rect {
	point := rtreego.Point{o.env.MinX, o.env.MinY}

	// rtreego requires non-zero dimensions
	const epsilon = 1e-9
	w := o.env.MaxX - o.env.MinX
	h := o.env.MaxY - o.env.MinY
	if w < epsilon {
		w = epsilon
	}
	if h < epsilon {
		h = epsilon
	}
	rect, _ := rtreego.NewRect(point, []float64{w, h})
	return rect
}

func randomEnvelopes(n int, seed int64) []Envelope {
	rng := rand.New(rand.NewSource(seed))
	envs := make([]Envelope, n)
	for i := range envs {
		x := rng.Float64() * 1000
		y := rng.Float64() * 1000
		envs[i] = NewEnvelope(x, y, x+rng.Float64()*20, y+rng.Float64()*20)
	}
	return envs
}

func TestSTRtreeQueryAgainstOracle(t *testing.T) {
	envs := randomEnvelopes(500, 42)

	tree := NewSTRtree(DefaultNodeCapacity)
	oracle := rtreego.NewTree(2, 25, 50)
	for i, env := range envs {
		if err := tree.Insert(env, i); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		oracle.Insert(&oracleItem{env: env, item: i})
	}
	tree.Build()

	queries := []Envelope{
		NewEnvelope(100, 100, 200, 200),
		NewEnvelope(0, 0, 1000, 1000),
		NewEnvelope(500, 500, 501, 501),
		NewEnvelope(-50, -50, -10, -10),
	}
	for _, q := range queries {
		var got []int
		tree.Query(q, func(item int) {
			got = append(got, item)
		})
		sort.Ints(got)

		qRect, _ := rtreego.NewRect(rtreego.Point{q.MinX, q.MinY},
			[]float64{q.MaxX - q.MinX, q.MaxY - q.MinY})
		var want []int
		for _, spatial := range oracle.SearchIntersect(qRect) {
			want = append(want, spatial.(*oracleItem).item)
		}
		sort.Ints(want)

		if len(got) != len(want) {
			t.Fatalf("Query %+v returned %d items, oracle returned %d", q, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("Query %+v result mismatch at %d: %d vs %d", q, i, got[i], want[i])
			}
		}
	}
}

func TestSTRtreeQueryBruteForce(t *testing.T) {
	envs := randomEnvelopes(200, 7)
	tree := NewSTRtree(4)
	for i, env := range envs {
		if err := tree.Insert(env, i); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	tree.Build()

	q := NewEnvelope(250, 250, 400, 400)
	got := map[int]bool{}
	tree.Query(q, func(item int) {
		if got[item] {
			t.Errorf("Item %d visited twice", item)
		}
		got[item] = true
	})
	for i, env := range envs {
		if env.Intersects(q) != got[i] {
			t.Errorf("Item %d: intersects=%v, visited=%v", i, env.Intersects(q), got[i])
		}
	}
}

func TestSTRtreeInsertAfterBuild(t *testing.T) {
	tree := NewSTRtree(DefaultNodeCapacity)
	if err := tree.Insert(NewEnvelope(0, 0, 1, 1), 0); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	tree.Build()
	if err := tree.Insert(NewEnvelope(2, 2, 3, 3), 1); err == nil {
		t.Error("Insert after Build should fail")
	}
}

func TestSTRtreeNullEnvelopesSkipped(t *testing.T) {
	tree := NewSTRtree(DefaultNodeCapacity)
	if err := tree.Insert(NullEnvelope(), 0); err != nil {
		t.Fatalf("Insert of null envelope failed: %v", err)
	}
	if err := tree.Insert(NewEnvelope(0, 0, 1, 1), 1); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	tree.Build()

	var items []int
	tree.Query(NewEnvelope(-10, -10, 10, 10), func(item int) {
		items = append(items, item)
	})
	if len(items) != 1 || items[0] != 1 {
		t.Errorf("Expected only item 1, got %v", items)
	}
}

func TestSTRtreeEmpty(t *testing.T) {
	tree := NewSTRtree(DefaultNodeCapacity)
	tree.Build()
	tree.Query(NewEnvelope(0, 0, 1, 1), func(int) {
		t.Error("Empty tree should visit nothing")
	})
	_, found, err := tree.NearestGeneric(NewEnvelope(0, 0, 1, 1), func(int) (float64, error) {
		t.Error("Empty tree should not call the distance callback")
		return 0, nil
	})
	if err != nil {
		t.Fatalf("NearestGeneric failed: %v", err)
	}
	if found {
		t.Error("Empty tree should report found=false")
	}
}

func TestSTRtreeNearestGeneric(t *testing.T) {
	// Points on a grid; nearest to the query corner is (0,0) at index 0.
	var envs []Envelope
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			fx, fy := float64(x*10), float64(y*10)
			envs = append(envs, NewEnvelope(fx, fy, fx, fy))
		}
	}
	tree := NewSTRtree(4)
	for i, env := range envs {
		if err := tree.Insert(env, i); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	tree.Build()

	query := NewEnvelope(-3, -4, -3, -4)
	calls := 0
	item, found, err := tree.NearestGeneric(query, func(item int) (float64, error) {
		calls++
		env := envs[item]
		return math.Hypot(env.MinX+3, env.MinY+4), nil
	})
	if err != nil {
		t.Fatalf("NearestGeneric failed: %v", err)
	}
	if !found {
		t.Fatal("NearestGeneric should find an item")
	}
	if item != 0 {
		t.Errorf("Expected item 0, got %d", item)
	}
	if calls >= len(envs) {
		t.Errorf("Pruning should skip most items, but %d of %d were visited", calls, len(envs))
	}
}

func TestSTRtreeNearestGenericPropagatesError(t *testing.T) {
	tree := NewSTRtree(DefaultNodeCapacity)
	if err := tree.Insert(NewEnvelope(0, 0, 1, 1), 0); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	tree.Build()
	wantErr := Error("boom")
	_, _, err := tree.NearestGeneric(NewEnvelope(5, 5, 6, 6), func(int) (float64, error) {
		return 0, wantErr
	})
	if err != wantErr {
		t.Errorf("Expected callback error to propagate, got %v", err)
	}
}
