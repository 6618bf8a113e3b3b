package object

import (
	"testing"

	"github.com/asagraphs/magds/pkg/core"
)

func TestExplainAndExplainOne(t *testing.T) {
	row := New(core.NeuronID{LocalID: "1", ParentID: "iris"})
	sepal := core.NewBaseNeuron(core.NeuronID{LocalID: "5.1", ParentID: "sepal_length"})
	variety := core.NewBaseNeuron(core.NeuronID{LocalID: "Setosa", ParentID: "variety"})

	if err := core.ConnectBilateral(&sepal, &row.BaseNeuron, core.Defining); err != nil {
		t.Fatalf("ConnectBilateral: %v", err)
	}
	if err := core.ConnectBilateral(&variety, &row.BaseNeuron, core.Defining); err != nil {
		t.Fatalf("ConnectBilateral: %v", err)
	}

	explained := row.Explain()
	if len(explained) != 2 {
		t.Fatalf("Explain() = %v, want 2 defining neurons", explained)
	}

	id, ok := row.ExplainOne("sepal_length")
	if !ok || id.LocalID != "5.1" {
		t.Errorf("ExplainOne(sepal_length) = (%v, %v), want (5.1, true)", id, ok)
	}

	if !row.Defines("variety") {
		t.Error("row.Defines(variety) should be true")
	}
	if row.Defines("petal_length") {
		t.Error("row.Defines(petal_length) should be false: never connected")
	}
}
