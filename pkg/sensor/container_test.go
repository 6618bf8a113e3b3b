package sensor

import (
	"errors"
	"testing"

	"github.com/asagraphs/magds/pkg/core"
)

func TestInsertAndSearchI32(t *testing.T) {
	c, err := New("age", core.TagI32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, n := range []int32{1, 2, 2, 3} {
		if _, err := c.Insert(core.NewI32(n)); err != nil {
			t.Fatalf("Insert(%d): %v", n, err)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	neuron, ok := c.Search(core.NewI32(2))
	if !ok {
		t.Fatal("Search(2) should find a match")
	}
	if neuron.Counter() != 2 {
		t.Errorf("Counter() = %d, want 2 (2 was inserted twice)", neuron.Counter())
	}

	if _, ok := c.Search(core.NewI32(99)); ok {
		t.Error("Search(99) should miss")
	}
}

func TestInsertRejectsWrongTag(t *testing.T) {
	c, _ := New("age", core.TagI32)
	if _, err := c.Insert(core.NewOwnedString("x")); !errors.Is(err, core.ErrTypeMismatch) {
		t.Errorf("Insert with wrong tag: err = %v, want ErrTypeMismatch", err)
	}
}

func TestSearchWrongTagIsMissNotError(t *testing.T) {
	c, _ := New("age", core.TagI32)
	if _, ok := c.Search(core.NewOwnedString("x")); ok {
		t.Error("Search with wrong tag should report a miss, not panic or match")
	}
}

func TestCategoricalSensorHasNoFuzzyMatch(t *testing.T) {
	c, _ := New("variety", core.TagOwnedString)
	c.Insert(core.NewOwnedString("setosa"))
	if _, ok := c.SearchFuzzy(core.NewOwnedString("versicolor")); ok {
		t.Error("a categorical sensor must not fuzzy-match")
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	if _, err := New("x", core.TagUnknown); !errors.Is(err, core.ErrInvalidType) {
		t.Errorf("New(TagUnknown): err = %v, want ErrInvalidType", err)
	}
}

func TestActivateReportsVerticalTouches(t *testing.T) {
	c, _ := New("sepal_length", core.TagF64)
	c.Insert(core.NewF64(5.1))

	calledWith := []core.NeuronID{}
	onVertical := func(id core.NeuronID, signal float64, _ int) (map[core.NeuronID]float64, error) {
		calledWith = append(calledWith, id)
		return map[core.NeuronID]float64{id: signal}, nil
	}

	touched, ok, err := c.Activate(core.NewF64(5.1), false, 1.0, false, 0.01, true, core.VisitSet{}, onVertical)
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if !ok {
		t.Fatal("Activate should match the inserted key")
	}
	if len(touched) == 0 {
		t.Error("Activate should report at least the matched node")
	}
}
