package sensorgraph

import (
	"math"
	"testing"

	"github.com/asagraphs/magds/pkg/core"
)

func intLess(a, b int) bool   { return a < b }
func intEq(a, b int) bool     { return a == b }
func intDist(a, b int) float64 { return math.Abs(float64(a - b)) }

func strLess(a, b string) bool { return a < b }
func strEq(a, b string) bool   { return a == b }

func TestInsertOrdersAndLinksNeighbors(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	for _, k := range []int{5, 1, 3, 2, 4} {
		g.Insert(k)
	}

	nodes := g.All()
	if len(nodes) != 5 {
		t.Fatalf("Len() = %d, want 5", len(nodes))
	}
	for i, n := range nodes {
		if n.Key != i+1 {
			t.Errorf("nodes[%d].Key = %d, want %d", i, n.Key, i+1)
		}
	}
	if nodes[0].Prev() != nil {
		t.Error("first node should have no prev")
	}
	if nodes[len(nodes)-1].Next() != nil {
		t.Error("last node should have no next")
	}
	for i := 0; i < len(nodes)-1; i++ {
		if nodes[i].Next() != nodes[i+1] {
			t.Errorf("nodes[%d].Next() mismatch", i)
		}
		if nodes[i+1].Prev() != nodes[i] {
			t.Errorf("nodes[%d+1].Prev() mismatch", i)
		}
	}
}

func TestInsertDuplicateIncrementsCounter(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	g.Insert(7)
	g.Insert(7)
	g.Insert(7)

	node, ok := g.Search(7)
	if !ok {
		t.Fatal("expected key 7 to be found")
	}
	if node.Neuron.Counter() != 3 {
		t.Errorf("Counter() = %d, want 3", node.Neuron.Counter())
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (duplicates must not create new nodes)", g.Len())
	}
}

func TestSearchMiss(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	g.Insert(1)
	g.Insert(10)
	if _, ok := g.Search(5); ok {
		t.Error("Search(5) should miss: 5 was never inserted")
	}
}

func TestSearchFuzzyNearestKey(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	for _, k := range []int{10, 20, 30} {
		g.Insert(k)
	}

	node, ok := g.SearchFuzzy(24)
	if !ok {
		t.Fatal("SearchFuzzy(24) should find a nearest key")
	}
	if node.Key != 20 {
		t.Errorf("SearchFuzzy(24) = %d, want 20", node.Key)
	}
}

func TestSearchFuzzyTieBreaksLow(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	g.Insert(10)
	g.Insert(20)

	node, ok := g.SearchFuzzy(15)
	if !ok {
		t.Fatal("SearchFuzzy(15) should find a nearest key")
	}
	if node.Key != 10 {
		t.Errorf("SearchFuzzy(15) tie should break to smaller key 10, got %d", node.Key)
	}
}

func TestCategoricalGraphHasNoFuzzyMatch(t *testing.T) {
	g := New[string]("labels", strLess, strEq, nil)
	g.Insert("red")
	g.Insert("blue")

	if _, ok := g.SearchFuzzy("green"); ok {
		t.Error("a categorical graph (no distance fn) must not fuzzy-match")
	}
}

func TestActivateHorizontalPropagationDecaysAndCutsOff(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	for _, k := range []int{1, 2, 3, 100} {
		g.Insert(k)
	}

	touched, ok, err := g.Activate(2, false, 1.0, true, 0.2, false, core.VisitSet{}, nil)
	if err != nil {
		t.Fatalf("Activate: unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("Activate(2) should match an exact key")
	}

	center, _ := g.Search(2)
	if touched[center.Neuron.ID()] != 1.0 {
		t.Errorf("center activation = %v, want 1.0", touched[center.Neuron.ID()])
	}

	left, _ := g.Search(1)
	right, _ := g.Search(3)
	if touched[left.Neuron.ID()] == 0 {
		t.Error("immediate left neighbor should receive decayed signal")
	}
	if touched[right.Neuron.ID()] == 0 {
		t.Error("immediate right neighbor should receive decayed signal")
	}

	far, _ := g.Search(100)
	if _, reached := touched[far.Neuron.ID()]; reached {
		t.Error("a far node should not be reached once decay falls below epsilon")
	}
}

func TestActivateHorizontalDecayMatchesRangeNormalizedFormula(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	for k := 1; k <= 9; k++ {
		g.Insert(k)
	}

	touched, ok, err := g.Activate(5, false, 1.0, true, 0.01, false, core.VisitSet{}, nil)
	if err != nil {
		t.Fatalf("Activate: unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("Activate(5) should match an exact key")
	}

	left, _ := g.Search(4)
	right, _ := g.Search(6)
	const want = 1 - 1.0/8.0 // range = 9-1 = 8; |Δ| = 1
	if got := touched[left.Neuron.ID()]; math.Abs(got-want) > 1e-9 {
		t.Errorf("left neighbor activation = %v, want %v", got, want)
	}
	if got := touched[right.Neuron.ID()]; math.Abs(got-want) > 1e-9 {
		t.Errorf("right neighbor activation = %v, want %v", got, want)
	}
}

func TestActivateFuzzyMatchScalesSignalBySimilarity(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	for _, k := range []int{10, 20, 30} {
		g.Insert(k)
	}

	// range = 30-10 = 20; SearchFuzzy(24) resolves to 20, |Δ| = 4.
	touched, ok, err := g.Activate(24, true, 1.0, false, 0.01, false, core.VisitSet{}, nil)
	if err != nil {
		t.Fatalf("Activate: unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("Activate(24, fuzzy) should resolve to the nearest key")
	}

	node, _ := g.Search(20)
	want := 1 - 4.0/20.0
	if got := touched[node.Neuron.ID()]; math.Abs(got-want) > 1e-9 {
		t.Errorf("fuzzy match activation = %v, want %v (signal scaled by similarity)", got, want)
	}
}

func TestActivateExactMatchIsNotScaledBySimilarity(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	for _, k := range []int{10, 20, 30} {
		g.Insert(k)
	}

	touched, ok, err := g.Activate(20, true, 1.0, false, 0.01, false, core.VisitSet{}, nil)
	if err != nil {
		t.Fatalf("Activate: unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("Activate(20, fuzzy) should match exactly")
	}
	node, _ := g.Search(20)
	if got := touched[node.Neuron.ID()]; got != 1.0 {
		t.Errorf("exact match activation = %v, want 1.0 (full signal)", got)
	}
}

func TestRangeTracksMinMaxAcrossInserts(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	if g.Range() != 0 {
		t.Errorf("Range() on empty graph = %v, want 0", g.Range())
	}
	g.Insert(5)
	if g.Range() != 0 {
		t.Errorf("Range() with a single key = %v, want 0", g.Range())
	}
	g.Insert(1)
	g.Insert(9)
	if g.Range() != 8 {
		t.Errorf("Range() = %v, want 8", g.Range())
	}
	g.Insert(3) // a key between the existing bounds must not change Range
	if g.Range() != 8 {
		t.Errorf("Range() after inner insert = %v, want 8", g.Range())
	}
}

func TestActivateReentrancyGuard(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	g.Insert(1)
	visited := core.VisitSet{}
	visited[core.NeuronID{LocalID: "1", ParentID: "numbers"}] = struct{}{}

	_, _, err := g.Activate(1, false, 1.0, false, 0.01, false, visited, nil)
	if err == nil {
		t.Fatal("expected ErrReentrantBorrow re-entering an already-visited node")
	}
}

func TestDeactivateAllZeroesEveryNeuron(t *testing.T) {
	g := New[int]("numbers", intLess, intEq, intDist)
	for _, k := range []int{1, 2, 3} {
		n := g.Insert(k)
		n.Neuron.AddActivation(1)
	}
	g.DeactivateAll()
	for _, n := range g.All() {
		if n.Neuron.Activation() != 0 {
			t.Errorf("node %v activation = %v after DeactivateAll, want 0", n.Key, n.Neuron.Activation())
		}
	}
}
