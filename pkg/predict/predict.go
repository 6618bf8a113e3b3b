// Package predict implements spreading-activation prediction over a
// magds.Store: match a set of feature values against their sensors,
// activate vertically into the object neurons they define, and read the
// winning neuron's value for a target attribute. Grounded on
// original_source/src/algorithm/predict.rs's predict/predict_weighted/
// prediction_score, with the winner-selection and probability-clamp fixes
// spec.md §4.7 calls for (original_source sorts candidates into a
// BTreeMap and takes the first entry, which is the *minimum* activation,
// not the maximum — this package selects the maximum, tie-broken by the
// lowest neuron id lexicographically).
package predict

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/asagraphs/magds/pkg/core"
	"github.com/asagraphs/magds/pkg/magds"
)

// ErrNoCandidate is returned when no feature resolved to any sensor value,
// leaving nothing to predict from.
var ErrNoCandidate = errors.New("predict: no candidate neuron activated")

// Feature pairs a value with the weight its evidence carries, for
// PredictWeighted. Weight 1.0 is what Predict uses for every feature.
type Feature struct {
	Value  core.TaggedValue
	Weight float32
}

// Predict matches features against their sensors with uniform weight 1.0,
// activates vertically, and reads target off the winning object neuron.
func Predict(store *magds.Store, features map[string]core.TaggedValue, target string, fuzzy bool) (core.TaggedValue, float64, error) {
	weighted := make(map[string]Feature, len(features))
	for name, v := range features {
		weighted[name] = Feature{Value: v, Weight: 1.0}
	}
	return predictInternal(store, weighted, target, fuzzy)
}

// PredictWeighted matches features against their sensors with per-feature
// weights, activates vertically, and reads target off the winning object
// neuron.
func PredictWeighted(store *magds.Store, features map[string]Feature, target string, fuzzy bool) (core.TaggedValue, float64, error) {
	return predictInternal(store, features, target, fuzzy)
}

func predictInternal(store *magds.Store, features map[string]Feature, target string, fuzzy bool) (core.TaggedValue, float64, error) {
	touched := make(map[core.NeuronID]struct{})
	var maxPossible float64

	for name, f := range features {
		maxPossible += float64(f.Weight)

		result, found, err := store.SensorActivate(name, f.Value, fuzzy, float64(f.Weight), false, 0, true)
		if err != nil {
			if errors.Is(err, core.ErrUnknownSensor) {
				log.Printf("predict: cannot find sensor %s, skipping", name)
				continue
			}
			return core.TaggedValue{}, 0, err
		}
		if !found {
			continue
		}
		for id := range result {
			touched[id] = struct{}{}
		}
	}

	if len(touched) == 0 {
		return core.TaggedValue{}, 0, ErrNoCandidate
	}

	winnerID, winnerActivation, err := selectWinner(store, touched)
	if err != nil {
		return core.TaggedValue{}, 0, err
	}

	probability := winnerActivation / maxPossible
	probability = math.Max(0, math.Min(1, probability))

	winner, ok := store.NeuronFromID(winnerID)
	if !ok {
		return core.TaggedValue{}, 0, fmt.Errorf("predict: winning neuron %s vanished from store", winnerID)
	}

	valueID, ok := winner.ExplainOne(target)
	if !ok {
		return core.TaggedValue{}, 0, fmt.Errorf("predict: winner %s has no value for target %s", winnerID, target)
	}

	targetSensor, ok := store.Sensor(target)
	if !ok {
		return core.TaggedValue{}, 0, fmt.Errorf("%w: %s", core.ErrUnknownSensor, target)
	}

	value, err := core.FromText(valueID.LocalID, targetSensor.DataType())
	if err != nil {
		return core.TaggedValue{}, 0, fmt.Errorf("predict: decoding target value %q: %w", valueID.LocalID, err)
	}
	return value, probability, nil
}

// selectWinner picks the maximum-activation candidate, breaking ties by
// the lowest neuron id in lexicographic (string) order — spec.md §4.7
// step 4.
func selectWinner(store *magds.Store, touched map[core.NeuronID]struct{}) (core.NeuronID, float64, error) {
	ids := make([]core.NeuronID, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	var winner core.NeuronID
	var winnerActivation float64
	haveWinner := false

	for _, id := range ids {
		n, ok := store.NeuronFromID(id)
		if !ok {
			continue
		}
		a := n.Activation()
		if !haveWinner || a > winnerActivation {
			winner = id
			winnerActivation = a
			haveWinner = true
		}
	}

	if !haveWinner {
		return core.NeuronID{}, 0, ErrNoCandidate
	}
	return winner, winnerActivation, nil
}
