// Package sensorgraph implements the ASA-graph: an ordered index over one
// scalar type per attribute, where every distinct value is a neuron linked
// horizontally to its predecessor and successor in key order. It is the Go
// rendering of original_source/src/simple/sensor.rs's
// ASAGraph<T, N>, generalized with Go generics instead of Rust's const
// generic bucket width (the bucket width is an internal tuning knob the
// spec does not surface, so it is dropped rather than faked).
package sensorgraph

import (
	"fmt"
	"math"
	"sort"

	"github.com/asagraphs/magds/pkg/core"
)

// Node is one distinct key in a Graph, carrying the neuron bookkeeping for
// that value and its horizontal neighbors.
type Node[T any] struct {
	Key    T
	Neuron core.BaseNeuron

	prev *Node[T]
	next *Node[T]
}

// Prev returns the node immediately preceding this one in key order, or nil
// if this is the first node.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

// Next returns the node immediately following this one in key order, or nil
// if this is the last node.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Graph is an ASA-graph over scalar type T: a sorted sequence of Nodes with
// O(log n) lookup via binary search and O(1) horizontal traversal via the
// prev/next links each Node carries.
type Graph[T any] struct {
	name string
	less func(a, b T) bool
	eq   func(a, b T) bool
	// dist, when non-nil, measures the distance between two keys for
	// horizontal-propagation decay and fuzzy nearest-key search. Left nil
	// for categorical graphs (no natural distance, no horizontal
	// propagation, no fuzzy search — spec.md §4.3.3/§4.3.4).
	dist func(a, b T) float64

	nodes []*Node[T] // kept sorted ascending by less

	// minKey/maxKey track the smallest and largest key ever inserted (updated
	// per spec.md §4.3.1 step 3's "update min/max bounds"), so Range can
	// report range = max_key - min_key per spec.md §3 without rescanning
	// nodes.
	minKey, maxKey T
	hasRange       bool
}

// New creates an empty Graph named id, comparing keys with less/eq and
// (optionally) measuring distance with dist.
func New[T any](id string, less, eq func(a, b T) bool, dist func(a, b T) float64) *Graph[T] {
	return &Graph[T]{name: id, less: less, eq: eq, dist: dist}
}

// ID returns the sensor name this graph indexes.
func (g *Graph[T]) ID() string { return g.name }

// Len returns the number of distinct keys currently indexed.
func (g *Graph[T]) Len() int { return len(g.nodes) }

// Range returns max_key - min_key over every key ever inserted, per
// spec.md §3's sensor-graph descriptor. It is 0 for an empty graph, a
// single-key graph, or a categorical graph with no distance function —
// spec.md §8 scenario note: "Sensor with a single distinct key: range = 0".
func (g *Graph[T]) Range() float64 {
	if g.dist == nil || !g.hasRange {
		return 0
	}
	return g.dist(g.minKey, g.maxKey)
}

// search returns the index of key if present, and the index it would be
// inserted at (sort.Search semantics) alongside whether it was found.
func (g *Graph[T]) search(key T) (idx int, found bool) {
	idx = sort.Search(len(g.nodes), func(i int) bool {
		return !g.less(g.nodes[i].Key, key)
	})
	if idx < len(g.nodes) && g.eq(g.nodes[idx].Key, key) {
		return idx, true
	}
	return idx, false
}

// Insert creates-or-increments the node for key, relinking horizontal
// neighbors on first insertion, and returns it. Matches spec.md §4.3.1: a
// repeat key increments its neuron's duplicate counter rather than creating
// a second node.
func (g *Graph[T]) Insert(key T) *Node[T] {
	idx, found := g.search(key)
	if found {
		g.nodes[idx].Neuron.IncrementCounter()
		return g.nodes[idx]
	}

	localID := fmt.Sprint(key)
	node := &Node[T]{
		Key:    key,
		Neuron: core.NewBaseNeuron(core.NeuronID{LocalID: localID, ParentID: g.name}),
	}

	g.nodes = append(g.nodes, nil)
	copy(g.nodes[idx+1:], g.nodes[idx:])
	g.nodes[idx] = node

	if !g.hasRange {
		g.minKey, g.maxKey = key, key
		g.hasRange = true
	} else {
		if g.less(key, g.minKey) {
			g.minKey = key
		}
		if g.less(g.maxKey, key) {
			g.maxKey = key
		}
	}

	if idx > 0 {
		prev := g.nodes[idx-1]
		prev.next = node
		node.prev = prev
	}
	if idx+1 < len(g.nodes) {
		next := g.nodes[idx+1]
		next.prev = node
		node.next = next
	}

	return node
}

// Search returns the node holding key, if any.
func (g *Graph[T]) Search(key T) (*Node[T], bool) {
	idx, found := g.search(key)
	if !found {
		return nil, false
	}
	return g.nodes[idx], true
}

// SearchFuzzy returns the node holding key if present; otherwise, for
// graphs with a distance function, the node with the nearest key, ties
// broken toward the smaller key (spec.md §4.3.4). Categorical graphs (no
// dist function) never fuzzy-match: an absent exact key returns ok=false.
func (g *Graph[T]) SearchFuzzy(key T) (*Node[T], bool) {
	if node, ok := g.Search(key); ok {
		return node, true
	}
	if g.dist == nil || len(g.nodes) == 0 {
		return nil, false
	}

	idx, _ := g.search(key)
	var candidates []*Node[T]
	if idx > 0 {
		candidates = append(candidates, g.nodes[idx-1])
	}
	if idx < len(g.nodes) {
		candidates = append(candidates, g.nodes[idx])
	}
	if len(candidates) == 0 {
		return nil, false
	}

	best := candidates[0]
	bestDist := g.dist(best.Key, key)
	for _, c := range candidates[1:] {
		d := g.dist(c.Key, key)
		if d < bestDist || (d == bestDist && g.less(c.Key, best.Key)) {
			best = c
			bestDist = d
		}
	}
	return best, true
}

// All returns every node in ascending key order.
func (g *Graph[T]) All() []*Node[T] {
	out := make([]*Node[T], len(g.nodes))
	copy(out, g.nodes)
	return out
}

// DeactivateAll zeroes every neuron in the graph, matching spec.md
// §4.4's deactivate_whole_sensor.
func (g *Graph[T]) DeactivateAll() {
	for _, n := range g.nodes {
		n.Neuron.Deactivate()
	}
}

// VerticalFunc is called once per object neuron a matched sensor value
// defines, so the caller (pkg/magds, which holds the object-neuron store)
// can apply the same signal there. counter is the firing sensor-value
// neuron's duplicate count, letting the callee derive the edge weight
// w = 1/counter spec.md §3 ties to defining-edge normalization. It
// returns the set of neurons it touched so Activate can report a single
// combined result.
type VerticalFunc func(id core.NeuronID, signal float64, counter int) (map[core.NeuronID]float64, error)

// Activate matches key (exactly, or by nearest key when fuzzy is true and
// the graph has a distance function), adds signal to the matched node, and
// optionally fans the signal out horizontally to neighbors (decayed by
// distance, cut off once the decay factor 1-|Δ|/range falls below epsilon)
// and vertically into every
// object neuron the matched value defines. It returns every neuron touched
// along with its resulting activation, or ok=false if key had no match.
//
// Grounded on spec.md §4.6 (additive BFS-style propagation, visited-set
// bounded) and original_source/src/neuron/simple_neuron.rs's activate.
func (g *Graph[T]) Activate(
	key T,
	fuzzy bool,
	signal float64,
	propagateHorizontal bool,
	horizontalEpsilon float64,
	propagateVertical bool,
	visited core.VisitSet,
	onVertical VerticalFunc,
) (map[core.NeuronID]float64, bool, error) {
	var node *Node[T]
	var ok, exact bool
	if fuzzy {
		node, ok = g.SearchFuzzy(key)
		if ok {
			exact = g.eq(node.Key, key)
		}
	} else {
		node, ok = g.Search(key)
		exact = ok
	}
	if !ok {
		return nil, false, nil
	}

	// spec.md §4.3.3 step 2: fire the resolved neuron with signal*similarity,
	// where similarity is 1 for an exact match and, for a fuzzy non-exact
	// match on a continuous/ordinal sensor, 1 - |k_target-k_neuron|/range
	// (0 when range is 0, i.e. a single-distinct-key sensor matched fuzzily
	// against a different query key — spec.md §8 scenario note).
	similarity := 1.0
	if !exact {
		similarity = 0
		if g.dist != nil {
			if r := g.Range(); r > 0 {
				similarity = 1.0 - g.dist(node.Key, key)/r
				if similarity < 0 {
					similarity = 0
				}
			}
		}
	}

	touched := make(map[core.NeuronID]float64)
	if err := g.activateNode(node, signal*similarity, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical, touched); err != nil {
		return nil, true, err
	}
	return touched, true, nil
}

func (g *Graph[T]) activateNode(
	node *Node[T],
	signal float64,
	propagateHorizontal bool,
	horizontalEpsilon float64,
	propagateVertical bool,
	visited core.VisitSet,
	onVertical VerticalFunc,
	touched map[core.NeuronID]float64,
) error {
	id := node.Neuron.ID()
	if err := visited.Enter(id); err != nil {
		return err
	}
	node.Neuron.AddActivation(signal)
	touched[id] = node.Neuron.Activation()

	if propagateVertical && onVertical != nil {
		counter := node.Neuron.Counter()
		for _, definedID := range node.Neuron.DefinedNeurons() {
			sub, err := onVertical(definedID, signal, counter)
			if err != nil {
				return err
			}
			for k, v := range sub {
				touched[k] = v
			}
		}
	}

	if propagateHorizontal && g.dist != nil {
		r := g.Range()
		for _, neighbor := range []*Node[T]{node.prev, node.next} {
			if neighbor == nil || r <= 0 {
				continue
			}
			// spec.md §4.3.3 step 3: propagate at signal*(1-|Δ|/range),
			// stopping once *similarity* (not the propagated signal) falls
			// below epsilon. horizontalEpsilon is supplied by the caller and
			// is not checked against range.
			similarity := 1.0 - math.Abs(g.dist(node.Key, neighbor.Key))/r
			if similarity < horizontalEpsilon {
				continue
			}
			if _, seen := visited[neighbor.Neuron.ID()]; seen {
				continue
			}
			next := signal * similarity
			if err := g.activateNode(neighbor, next, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical, touched); err != nil {
				return err
			}
		}
	}

	return nil
}

// Deactivate zeroes the matched node and, when propagateHorizontal or
// propagateVertical is set, recursively zeroes every horizontally or
// vertically connected neuron, bounded by visited so the
// bilateral sensor<->object edges cannot loop.
func (g *Graph[T]) Deactivate(
	key T,
	propagateHorizontal bool,
	propagateVertical bool,
	visited core.VisitSet,
	onVertical func(id core.NeuronID) error,
) (bool, error) {
	node, ok := g.Search(key)
	if !ok {
		return false, nil
	}
	return true, g.deactivateNode(node, propagateHorizontal, propagateVertical, visited, onVertical)
}

func (g *Graph[T]) deactivateNode(
	node *Node[T],
	propagateHorizontal bool,
	propagateVertical bool,
	visited core.VisitSet,
	onVertical func(id core.NeuronID) error,
) error {
	id := node.Neuron.ID()
	if err := visited.Enter(id); err != nil {
		return err
	}
	node.Neuron.Deactivate()

	if propagateVertical && onVertical != nil {
		for _, definedID := range node.Neuron.DefinedNeurons() {
			if err := onVertical(definedID); err != nil {
				return err
			}
		}
	}

	if propagateHorizontal {
		for _, neighbor := range []*Node[T]{node.prev, node.next} {
			if neighbor == nil {
				continue
			}
			if _, seen := visited[neighbor.Neuron.ID()]; seen {
				continue
			}
			if err := g.deactivateNode(neighbor, propagateHorizontal, propagateVertical, visited, onVertical); err != nil {
				return err
			}
		}
	}

	return nil
}
