package core

import (
	"errors"
	"testing"
)

func TestConnectBilateral(t *testing.T) {
	sensor := NewBaseNeuron(NeuronID{LocalID: "5.1", ParentID: "sepal_length"})
	object := NewBaseNeuron(NeuronID{LocalID: "1", ParentID: "iris"})

	if err := ConnectBilateral(&sensor, &object, Defining); err != nil {
		t.Fatalf("ConnectBilateral: unexpected error: %v", err)
	}

	defined := sensor.DefinedNeurons()
	if len(defined) != 1 || defined[0] != object.ID() {
		t.Errorf("sensor.DefinedNeurons() = %v, want [%v]", defined, object.ID())
	}

	defining := object.DefiningNeurons()
	if len(defining) != 1 || defining[0] != sensor.ID() {
		t.Errorf("object.DefiningNeurons() = %v, want [%v]", defining, sensor.ID())
	}
}

func TestConnectRejectsNonDefining(t *testing.T) {
	a := NewBaseNeuron(NeuronID{LocalID: "a", ParentID: "p"})
	other := NeuronID{LocalID: "b", ParentID: "p"}
	if err := a.Connect(other, Similarity); !errors.Is(err, ErrUnsupportedConnectionKind) {
		t.Errorf("Connect(Similarity) err = %v, want ErrUnsupportedConnectionKind", err)
	}
}

func TestConnectRejectsSelfLink(t *testing.T) {
	a := NewBaseNeuron(NeuronID{LocalID: "a", ParentID: "p"})
	if err := a.Connect(a.ID(), Defining); !errors.Is(err, ErrSelfLink) {
		t.Errorf("Connect(self) err = %v, want ErrSelfLink", err)
	}
}

func TestVisitSetDetectsReentrancy(t *testing.T) {
	vs := VisitSet{}
	id := NeuronID{LocalID: "x", ParentID: "p"}
	if err := vs.Enter(id); err != nil {
		t.Fatalf("first Enter: unexpected error: %v", err)
	}
	if err := vs.Enter(id); !errors.Is(err, ErrReentrantBorrow) {
		t.Errorf("second Enter err = %v, want ErrReentrantBorrow", err)
	}
}

func TestActivationBookkeeping(t *testing.T) {
	n := NewBaseNeuron(NeuronID{LocalID: "x", ParentID: "p"})
	n.AddActivation(0.5)
	n.AddActivation(0.25)
	if n.Activation() != 0.75 {
		t.Errorf("Activation() = %v, want 0.75", n.Activation())
	}
	n.Deactivate()
	if n.Activation() != 0 {
		t.Errorf("after Deactivate, Activation() = %v, want 0", n.Activation())
	}
	if n.Counter() != 1 {
		t.Errorf("Counter() = %d, want 1", n.Counter())
	}
	n.IncrementCounter()
	if n.Counter() != 2 {
		t.Errorf("Counter() after increment = %d, want 2", n.Counter())
	}
}
