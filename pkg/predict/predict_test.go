package predict

import (
	"strings"
	"testing"

	"github.com/asagraphs/magds/pkg/core"
	"github.com/asagraphs/magds/pkg/ingest"
	"github.com/asagraphs/magds/pkg/magds"
)

func buildStore(t *testing.T, csvText, name string) *magds.Store {
	t.Helper()
	table, err := ingest.FromCSV(name, strings.NewReader(csvText), ingest.Options{
		NullTokens:          []string{""},
		InferenceSampleSize: 10,
	})
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	s := magds.New()
	if err := s.Ingest(table); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	return s
}

func TestPredictPicksWinnerByMaxActivation(t *testing.T) {
	csvText := "petal_length,variety\n1.0,Setosa\n1.1,Setosa\n5.0,Virginica\n"
	store := buildStore(t, csvText, "iris")

	value, proba, err := Predict(store, map[string]core.TaggedValue{
		"petal_length": core.NewF64(1.05),
	}, "variety", true)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	got, _ := value.AsString()
	if got != "Setosa" {
		t.Errorf("predicted variety = %q, want Setosa", got)
	}
	if proba <= 0 || proba > 1 {
		t.Errorf("probability = %v, want in (0, 1]", proba)
	}
}

func TestPredictUnknownSensorIsSkippedNotFatal(t *testing.T) {
	csvText := "petal_length,variety\n1.0,Setosa\n5.0,Virginica\n"
	store := buildStore(t, csvText, "iris")

	_, _, err := Predict(store, map[string]core.TaggedValue{
		"petal_length": core.NewF64(1.0),
		"nonexistent":  core.NewI64(1),
	}, "variety", false)
	if err != nil {
		t.Fatalf("Predict should skip the unknown sensor, got error: %v", err)
	}
}

func TestPredictNoCandidateReturnsErrNoCandidate(t *testing.T) {
	csvText := "petal_length,variety\n1.0,Setosa\n"
	store := buildStore(t, csvText, "iris")

	_, _, err := Predict(store, map[string]core.TaggedValue{
		"petal_length": core.NewF64(99.0),
	}, "variety", false)
	if err == nil {
		t.Fatal("expected ErrNoCandidate for an unmatched exact value")
	}
}

func TestPredictWeightedHonorsWeights(t *testing.T) {
	csvText := "a,b,label\n1,1,low\n1,1,low\n9,9,high\n"
	store := buildStore(t, csvText, "rows")

	value, _, err := PredictWeighted(store, map[string]Feature{
		"a": {Value: core.NewI64(1), Weight: 5.0},
		"b": {Value: core.NewI64(9), Weight: 0.1},
	}, "label", false)
	if err != nil {
		t.Fatalf("PredictWeighted: %v", err)
	}
	got, _ := value.AsString()
	if got != "low" {
		t.Errorf("predicted label = %q, want low (heavier weight on a=1)", got)
	}
}

func TestPredictionScoreComputesRMSEAndMeanProbability(t *testing.T) {
	trainCSV := "petal_length,variety\n1.0,Setosa\n1.1,Setosa\n5.0,Virginica\n5.2,Virginica\n"
	testCSV := "petal_length,variety\n1.05,Setosa\n5.1,Virginica\n"

	train := buildStore(t, trainCSV, "iris_train")
	test := buildStore(t, testCSV, "iris_test")

	rmse, meanProba, err := PredictionScore(train, test, "variety", true)
	if err != nil {
		t.Fatalf("PredictionScore: %v", err)
	}
	if rmse != 0 {
		t.Errorf("rmse = %v, want 0 (perfect categorical matches)", rmse)
	}
	if meanProba <= 0 || meanProba > 1 {
		t.Errorf("meanProba = %v, want in (0, 1]", meanProba)
	}
}
