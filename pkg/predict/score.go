package predict

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/asagraphs/magds/pkg/core"
	"github.com/asagraphs/magds/pkg/magds"
)

// PredictionScore walks every object neuron in test, reconstructs its
// feature map from its defining sensor values (excluding target), and
// predicts target against train. It returns the RMSE of the predicted vs.
// reference target values and the mean winning probability across scored
// rows. Grounded on original_source/src/algorithm/predict.rs's
// prediction_score.
func PredictionScore(train, test *magds.Store, target string, fuzzy bool) (rmse float64, meanProbability float64, err error) {
	var totalError, totalProba float64
	var scored int

	for _, row := range test.AllNeurons() {
		defining := row.Explain()
		if len(defining) == 0 {
			return 0, 0, core.ErrCorruptedTestSet
		}

		features := make(map[string]core.TaggedValue)
		var reference core.TaggedValue
		haveReference := false

		for _, sensorID := range defining {
			featureName := sensorID.ParentID
			sensorContainer, ok := test.Sensor(featureName)
			if !ok {
				continue
			}
			value, decodeErr := core.FromText(sensorID.LocalID, sensorContainer.DataType())
			if decodeErr != nil {
				log.Printf("predict: score: row %s: decoding %s: %v, skipping feature", row.ID(), featureName, decodeErr)
				continue
			}
			if featureName == target {
				reference = value
				haveReference = true
			} else {
				features[featureName] = value
			}
		}

		if !haveReference {
			log.Printf("predict: score: row %s has no reference value for target %s, skipping", row.ID(), target)
			continue
		}

		predicted, proba, predErr := Predict(train, features, target, fuzzy)
		if predErr != nil {
			if errors.Is(predErr, ErrNoCandidate) {
				log.Printf("predict: score: row %s: no candidate for target %s, skipping", row.ID(), target)
				train.Deactivate()
				continue
			}
			return 0, 0, predErr
		}

		d, distErr := core.Distance(predicted, reference)
		if distErr != nil {
			return 0, 0, fmt.Errorf("predict: score: row %s: %w", row.ID(), distErr)
		}
		totalError += d * d
		totalProba += proba
		scored++
		train.Deactivate()
	}

	if scored == 0 {
		return 0, 0, fmt.Errorf("predict: score: no rows in test store could be scored")
	}

	return math.Sqrt(totalError), totalProba / float64(scored), nil
}
