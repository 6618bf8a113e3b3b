package core

import "fmt"

// NeuronID addresses a neuron within its parent graph: the local id (a row
// number for an object neuron, a stringified key for a sensor value) plus
// the parent name (a table name for object neurons, a sensor name for
// sensor values). Grounded on original_source's NeuronID{ id, parent_id }.
type NeuronID struct {
	LocalID  string
	ParentID string
}

func (id NeuronID) String() string {
	return fmt.Sprintf("%s/%s", id.ParentID, id.LocalID)
}

// ConnectionKind enumerates the connection kinds original_source reserves.
// MAGDS implements only Defining; every other kind is accepted as a typed
// constant (so callers can name it) but rejected at Connect time, resolving
// spec.md §9 Open Question 2.
type ConnectionKind int

const (
	Defining ConnectionKind = iota
	Dummy
	Definition
	Explanation
	Inhibition
	Similarity
	Consequence
)

func (k ConnectionKind) String() string {
	switch k {
	case Defining:
		return "defining"
	case Dummy:
		return "dummy"
	case Definition:
		return "definition"
	case Explanation:
		return "explanation"
	case Inhibition:
		return "inhibition"
	case Similarity:
		return "similarity"
	case Consequence:
		return "consequence"
	default:
		return "unknown"
	}
}

// BaseNeuron is the machinery shared by sensor-value neurons and object
// neurons: an activation level, a duplicate counter, and the bilateral
// defining-edge sets that connect it to the rest of the graph. It holds
// only neuron ids, not pointers, so that both pkg/sensorgraph and pkg/object
// can embed it without importing each other. Grounded on
// original_source/src/neuron/simple_neuron.rs's SimpleNeuron fields and on
// qubicDB-qubicdb/pkg/core/types.go's Neuron (activation/counter bookkeeping
// shape), generalized to a single shared connection kind instead of
// Hebbian-weighted synapses.
type BaseNeuron struct {
	id         NeuronID
	activation float64
	counter    int

	// definingOut holds ids this neuron points to via a Defining edge
	// (a sensor value's links to every object neuron it defines).
	definingOut map[NeuronID]struct{}
	// definingIn holds ids that point to this neuron via a Defining edge
	// (the reverse bookkeeping that lets an object neuron list the sensor
	// values that define it).
	definingIn map[NeuronID]struct{}
}

// NewBaseNeuron creates a BaseNeuron with counter 1, matching
// original_source's convention that a freshly inserted sensor value starts
// with one occurrence.
func NewBaseNeuron(id NeuronID) BaseNeuron {
	return BaseNeuron{
		id:          id,
		counter:     1,
		definingOut: make(map[NeuronID]struct{}),
		definingIn:  make(map[NeuronID]struct{}),
	}
}

func (n *BaseNeuron) ID() NeuronID         { return n.id }
func (n *BaseNeuron) Activation() float64  { return n.activation }
func (n *BaseNeuron) Counter() int         { return n.counter }
func (n *BaseNeuron) IncrementCounter()    { n.counter++ }
func (n *BaseNeuron) SetActivation(a float64) { n.activation = a }
func (n *BaseNeuron) AddActivation(delta float64) {
	n.activation += delta
}
func (n *BaseNeuron) Deactivate() { n.activation = 0 }

// Connect records a unidirectional Defining edge from this neuron to other.
// Any other ConnectionKind is rejected, per spec.md §9 Open Question 2.
func (n *BaseNeuron) Connect(other NeuronID, kind ConnectionKind) error {
	if kind != Defining {
		return fmt.Errorf("%w: %s", ErrUnsupportedConnectionKind, kind)
	}
	if other == n.id {
		return ErrSelfLink
	}
	if n.definingOut == nil {
		n.definingOut = make(map[NeuronID]struct{})
	}
	n.definingOut[other] = struct{}{}
	return nil
}

// ConnectFrom records the reverse bookkeeping half of a bilateral Defining
// edge: other points to this neuron.
func (n *BaseNeuron) ConnectFrom(other NeuronID, kind ConnectionKind) error {
	if kind != Defining {
		return fmt.Errorf("%w: %s", ErrUnsupportedConnectionKind, kind)
	}
	if other == n.id {
		return ErrSelfLink
	}
	if n.definingIn == nil {
		n.definingIn = make(map[NeuronID]struct{})
	}
	n.definingIn[other] = struct{}{}
	return nil
}

// ConnectBilateral wires both halves of a Defining edge from a to b,
// mirroring original_source's connect_bilateral_from helper used by
// the ingest parser.
func ConnectBilateral(a, b *BaseNeuron, kind ConnectionKind) error {
	if err := a.Connect(b.ID(), kind); err != nil {
		return err
	}
	if err := b.ConnectFrom(a.ID(), kind); err != nil {
		return err
	}
	return nil
}

// DefinedNeurons returns the ids this neuron points to (what it defines).
func (n *BaseNeuron) DefinedNeurons() []NeuronID {
	out := make([]NeuronID, 0, len(n.definingOut))
	for id := range n.definingOut {
		out = append(out, id)
	}
	return out
}

// DefiningNeurons returns the ids that point to this neuron (what defines
// it) — for an object neuron, this is exactly its set of sensor values.
func (n *BaseNeuron) DefiningNeurons() []NeuronID {
	out := make([]NeuronID, 0, len(n.definingIn))
	for id := range n.definingIn {
		out = append(out, id)
	}
	return out
}

// VisitSet is a reentrancy guard shared across one activation or
// deactivation call: a neuron or sensor-graph node already on the current
// propagation stack must not be re-entered, per spec.md §5's borrow-check
// analogue. Modeled on Rust's RefCell double-borrow panic, surfaced here as
// ErrReentrantBorrow instead of a panic.
type VisitSet map[NeuronID]struct{}

// Enter marks id as visited, returning ErrReentrantBorrow if it already
// was.
func (vs VisitSet) Enter(id NeuronID) error {
	if _, seen := vs[id]; seen {
		return fmt.Errorf("%w: %s", ErrReentrantBorrow, id)
	}
	vs[id] = struct{}{}
	return nil
}
