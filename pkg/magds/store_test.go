package magds

import (
	"strings"
	"testing"

	"github.com/asagraphs/magds/pkg/core"
	"github.com/asagraphs/magds/pkg/ingest"
	"github.com/asagraphs/magds/pkg/sensor"
)

func TestIngestWiresRowsToSensorValues(t *testing.T) {
	csvText := "sepal_length,variety\n5.1,Setosa\n5.1,Setosa\n6.2,Versicolor\n"
	table, err := ingest.FromCSV("iris", strings.NewReader(csvText), ingest.Options{
		NullTokens:          []string{""},
		InferenceSampleSize: 10,
	})
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}

	s := New()
	if err := s.Ingest(table); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	sepal, ok := s.Sensor("sepal_length")
	if !ok {
		t.Fatal("sepal_length sensor not created")
	}
	if sepal.Len() != 2 {
		t.Errorf("sepal_length distinct keys = %d, want 2 (5.1 deduped)", sepal.Len())
	}

	row1, ok := s.Neuron("1", "iris")
	if !ok {
		t.Fatal("row 1 neuron missing")
	}
	val, ok := row1.ExplainOne("sepal_length")
	if !ok || val.ParentID != "sepal_length" {
		t.Errorf("row 1 ExplainOne(sepal_length) = (%v, %v)", val, ok)
	}
	if len(row1.Explain()) != 2 {
		t.Errorf("row 1 Explain() len = %d, want 2", len(row1.Explain()))
	}
}

func TestCreateSensorRejectsUnknownTag(t *testing.T) {
	s := New()
	if _, err := s.CreateSensor("x", core.TagUnknown); err == nil {
		t.Fatal("expected error for TagUnknown")
	}
}

func TestSensorOperationsReportUnknownSensor(t *testing.T) {
	s := New()
	if _, err := s.SensorInsert("missing", core.NewI64(1)); err == nil {
		t.Fatal("expected ErrUnknownSensor")
	}
	if _, _, err := s.SensorSearch("missing", core.NewI64(1)); err == nil {
		t.Fatal("expected ErrUnknownSensor")
	}
	if _, _, err := s.SensorActivate("missing", core.NewI64(1), false, 1, false, 0.01, false); err == nil {
		t.Fatal("expected ErrUnknownSensor")
	}
	if err := s.DeactivateWholeSensor("missing"); err == nil {
		t.Fatal("expected ErrUnknownSensor")
	}
}

func TestSensorActivatePropagatesIntoObjectNeurons(t *testing.T) {
	csvText := "color\nred\nred\nblue\n"
	table, err := ingest.FromCSV("rows", strings.NewReader(csvText), ingest.Options{
		NullTokens:          []string{""},
		InferenceSampleSize: 10,
	})
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	s := New()
	if err := s.Ingest(table); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	_, found, err := s.SensorActivate("color", core.NewOwnedString("red"), false, 1.0, false, 0.01, true)
	if err != nil {
		t.Fatalf("SensorActivate: %v", err)
	}
	if !found {
		t.Fatal("expected a match for red")
	}

	row1, _ := s.Neuron("1", "rows")
	row3, _ := s.Neuron("3", "rows")
	// "red" was inserted twice, so its defining-edge weight is 1/2 per
	// spec.md §3's duplicate-frequency normalization.
	const wantRed = 0.5
	if row1.Activation() != wantRed {
		t.Errorf("row 1 (red) activation = %v, want %v", row1.Activation(), wantRed)
	}
	if row3.Activation() != 0 {
		t.Errorf("row 3 (blue) activation = %v, want 0", row3.Activation())
	}
}

func TestDeactivateZeroesEverything(t *testing.T) {
	csvText := "color\nred\nblue\n"
	table, _ := ingest.FromCSV("rows", strings.NewReader(csvText), ingest.Options{InferenceSampleSize: 10})
	s := New()
	if err := s.Ingest(table); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	s.SensorActivate("color", core.NewOwnedString("red"), false, 1.0, false, 0.01, true)
	s.Deactivate()

	row1, _ := s.Neuron("1", "rows")
	if row1.Activation() != 0 {
		t.Errorf("row 1 activation after Deactivate = %v, want 0", row1.Activation())
	}
	colorSensor, _ := s.Sensor("color")
	if colorSensor.Len() == 0 {
		t.Fatal("sensor graph should still have its keys after Deactivate, only activation zeroed")
	}
}

func TestAddSensorReturnsPrevious(t *testing.T) {
	s := New()
	first, err := s.CreateSensor("x", core.TagI64)
	if err != nil {
		t.Fatalf("CreateSensor: %v", err)
	}
	second, err := sensor.New("x", core.TagI64)
	if err != nil {
		t.Fatalf("building replacement sensor: %v", err)
	}
	prev := s.AddSensor(second)
	if prev != first {
		t.Error("AddSensor should return the previously registered sensor")
	}
}
