// Package object implements the object neuron: one per ingested row,
// connected to the sensor values that define it by bilateral Defining
// edges. Grounded on original_source/src/neuron/simple_neuron.rs's
// SimpleNeuron.
package object

import (
	"github.com/asagraphs/magds/pkg/core"
)

// Neuron is an object neuron: it carries no value of its own, only its
// activation state and the defining edges connecting it to sensor values
// (and, for object-to-object links, other object neurons).
type Neuron struct {
	core.BaseNeuron
}

// New creates an object neuron with the given id and zero activation.
func New(id core.NeuronID) *Neuron {
	return &Neuron{BaseNeuron: core.NewBaseNeuron(id)}
}

// Explain returns the ids of every neuron that defines this one — for a
// fully-ingested row, its complete set of sensor values. Grounded on
// simple_neuron.rs's defining_sensors/defining_neurons.
func (n *Neuron) Explain() []core.NeuronID {
	return n.DefiningNeurons()
}

// ExplainOne returns the id of the defining neuron belonging to the named
// sensor, if this object has one. Used by Predict to read back the target
// attribute's value for a winning object neuron.
func (n *Neuron) ExplainOne(sensorName string) (core.NeuronID, bool) {
	for _, id := range n.DefiningNeurons() {
		if id.ParentID == sensorName {
			return id, true
		}
	}
	return core.NeuronID{}, false
}

// Defines reports whether this object neuron is connected to a defining
// neuron belonging to sensorName.
func (n *Neuron) Defines(sensorName string) bool {
	_, ok := n.ExplainOne(sensorName)
	return ok
}
