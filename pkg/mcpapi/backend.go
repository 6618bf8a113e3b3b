package mcpapi

import (
	"context"
	"fmt"

	"github.com/asagraphs/magds/pkg/core"
	"github.com/asagraphs/magds/pkg/magds"
	"github.com/asagraphs/magds/pkg/predict"
)

// StoreBackend adapts a *magds.Store to the Backend interface, decoding
// the text values MCP tool calls carry into core.TaggedValue against each
// sensor's own scalar type.
type StoreBackend struct {
	Store *magds.Store
}

func (b *StoreBackend) SensorInsert(_ context.Context, sensorName, valueText string) (map[string]any, error) {
	s, ok := b.Store.Sensor(sensorName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownSensor, sensorName)
	}
	value, err := core.FromText(valueText, s.DataType())
	if err != nil {
		return nil, err
	}
	n, err := b.Store.SensorInsert(sensorName, value)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"sensor":   sensorName,
		"id":       n.ID().String(),
		"counter":  n.Counter(),
		"distinct": s.Len(),
	}, nil
}

func (b *StoreBackend) SensorSearch(_ context.Context, sensorName, valueText string, fuzzy bool) (map[string]any, error) {
	s, ok := b.Store.Sensor(sensorName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownSensor, sensorName)
	}
	value, err := core.FromText(valueText, s.DataType())
	if err != nil {
		return nil, err
	}

	var n *core.BaseNeuron
	var found bool
	if fuzzy {
		n, found, err = b.Store.SensorSearchFuzzy(sensorName, value)
	} else {
		n, found, err = b.Store.SensorSearch(sensorName, value)
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]any{"sensor": sensorName, "found": false}, nil
	}
	return map[string]any{
		"sensor":  sensorName,
		"found":   true,
		"id":      n.ID().String(),
		"counter": n.Counter(),
	}, nil
}

func (b *StoreBackend) Predict(_ context.Context, features map[string]string, target string, fuzzy bool) (map[string]any, error) {
	typed := make(map[string]core.TaggedValue, len(features))
	for name, text := range features {
		s, ok := b.Store.Sensor(name)
		if !ok {
			continue
		}
		v, err := core.FromText(text, s.DataType())
		if err != nil {
			continue
		}
		typed[name] = v
	}

	value, probability, err := predict.Predict(b.Store, typed, target, fuzzy)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"target":      target,
		"value":       value.String(),
		"probability": probability,
	}, nil
}

func (b *StoreBackend) IngestStatus(_ context.Context) (map[string]any, error) {
	return map[string]any{
		"objectNeurons": b.Store.NeuronCount(),
	}, nil
}
