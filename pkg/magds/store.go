// Package magds implements the MAGDS store: the name-addressed registry of
// sensors and object neurons, and the Ingest operation that turns a
// ColumnarTable into a fully connected graph. Grounded on
// original_source/src/simple/magds.rs and dynamic/magds.rs's MAGDS struct
// (map-of-maps registry, create_sensor/add_sensor/sensor_insert/
// sensor_search/sensor_activate/sensor_deactivate/neuron_from_id).
package magds

import (
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"

	"github.com/asagraphs/magds/pkg/core"
	"github.com/asagraphs/magds/pkg/ingest"
	"github.com/asagraphs/magds/pkg/object"
	"github.com/asagraphs/magds/pkg/sensor"
	"github.com/asagraphs/magds/pkg/sensorgraph"
)

// Store holds every sensor and object neuron in one MAGDS instance. Per
// spec.md §5, MAGDS is single-threaded and caller-sequenced: Store carries
// no internal locking, matching the teacher's Matrix only in registry
// shape, not in its concurrency model.
type Store struct {
	sensors map[string]*sensor.Container
	neurons map[core.NeuronID]*object.Neuron
}

// New creates an empty store.
func New() *Store {
	return &Store{
		sensors: make(map[string]*sensor.Container),
		neurons: make(map[core.NeuronID]*object.Neuron),
	}
}

// CreateSensor creates and registers an empty sensor named id of the given
// tag. TagUnknown is rejected with ErrInvalidType.
func (s *Store) CreateSensor(id string, tag core.ScalarTag) (*sensor.Container, error) {
	if tag == core.TagUnknown {
		return nil, fmt.Errorf("%w: sensor %s", core.ErrInvalidType, id)
	}
	c, err := sensor.New(id, tag)
	if err != nil {
		return nil, err
	}
	s.sensors[id] = c
	return c, nil
}

// AddSensor registers an already-built sensor container, returning
// whatever sensor previously occupied that name, if any.
func (s *Store) AddSensor(c *sensor.Container) *sensor.Container {
	prev := s.sensors[c.ID()]
	s.sensors[c.ID()] = c
	return prev
}

// Sensor returns the sensor registered under name.
func (s *Store) Sensor(name string) (*sensor.Container, bool) {
	c, ok := s.sensors[name]
	return c, ok
}

// SensorInsert inserts v into the named sensor.
func (s *Store) SensorInsert(name string, v core.TaggedValue) (*core.BaseNeuron, error) {
	c, ok := s.sensors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownSensor, name)
	}
	return c.Insert(v)
}

// SensorSearch looks up v in the named sensor.
func (s *Store) SensorSearch(name string, v core.TaggedValue) (*core.BaseNeuron, bool, error) {
	c, ok := s.sensors[name]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", core.ErrUnknownSensor, name)
	}
	n, found := c.Search(v)
	return n, found, nil
}

// SensorSearchFuzzy looks up v in the named sensor, falling back to the
// nearest key for continuous/discrete sensors.
func (s *Store) SensorSearchFuzzy(name string, v core.TaggedValue) (*core.BaseNeuron, bool, error) {
	c, ok := s.sensors[name]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", core.ErrUnknownSensor, name)
	}
	n, found := c.SearchFuzzy(v)
	return n, found, nil
}

// SensorActivate activates v within the named sensor and spreads the
// signal vertically into every object neuron the matched value defines.
// Grounded on spec.md §4.6 and dynamic/magds.rs's sensor_activate.
func (s *Store) SensorActivate(
	name string,
	v core.TaggedValue,
	fuzzy bool,
	signal float64,
	propagateHorizontal bool,
	horizontalEpsilon float64,
	propagateVertical bool,
) (map[core.NeuronID]float64, bool, error) {
	c, ok := s.sensors[name]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", core.ErrUnknownSensor, name)
	}

	visited := core.VisitSet{}
	onVertical := s.activateObjectVertical()
	return c.Activate(v, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
}

// activateObjectVertical applies spec.md §3's defining-edge weight
// w = 1/counter(from) — normalizing by how many times the firing sensor
// value was inserted, so a value seen 50 times doesn't over-activate
// every object it defines relative to a value seen once.
func (s *Store) activateObjectVertical() sensorgraph.VerticalFunc {
	return func(id core.NeuronID, signal float64, counter int) (map[core.NeuronID]float64, error) {
		row, ok := s.neurons[id]
		if !ok {
			return nil, nil
		}
		weight := 1.0
		if counter > 0 {
			weight = 1.0 / float64(counter)
		}
		row.AddActivation(signal * weight)
		return map[core.NeuronID]float64{id: row.Activation()}, nil
	}
}

// SensorDeactivate deactivates v within the named sensor, optionally
// propagating into connected neighbors and object neurons.
func (s *Store) SensorDeactivate(
	name string,
	v core.TaggedValue,
	propagateHorizontal bool,
	propagateVertical bool,
) (bool, error) {
	c, ok := s.sensors[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", core.ErrUnknownSensor, name)
	}

	visited := core.VisitSet{}
	onVertical := func(id core.NeuronID) error {
		if row, ok := s.neurons[id]; ok {
			row.Deactivate()
		}
		return nil
	}
	return c.Deactivate(v, propagateHorizontal, propagateVertical, visited, onVertical)
}

// DeactivateWholeSensor zeroes every neuron in the named sensor.
func (s *Store) DeactivateWholeSensor(name string) error {
	c, ok := s.sensors[name]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrUnknownSensor, name)
	}
	c.DeactivateAll()
	return nil
}

// Deactivate zeroes every neuron in the store: every sensor value and
// every object neuron.
func (s *Store) Deactivate() {
	for _, c := range s.sensors {
		c.DeactivateAll()
	}
	for _, n := range s.neurons {
		n.Deactivate()
	}
}

// AddNeuron registers an object neuron.
func (s *Store) AddNeuron(n *object.Neuron) {
	s.neurons[n.ID()] = n
}

// NeuronFromID returns the object neuron with id, if any.
func (s *Store) NeuronFromID(id core.NeuronID) (*object.Neuron, bool) {
	n, ok := s.neurons[id]
	return n, ok
}

// Neuron returns the object neuron (localID, parentID), if any.
func (s *Store) Neuron(localID, parentID string) (*object.Neuron, bool) {
	return s.NeuronFromID(core.NeuronID{LocalID: localID, ParentID: parentID})
}

// Neurons returns every object neuron belonging to parentID (a table
// name), in no particular order.
func (s *Store) Neurons(parentID string) []*object.Neuron {
	var out []*object.Neuron
	for id, n := range s.neurons {
		if id.ParentID == parentID {
			out = append(out, n)
		}
	}
	return out
}

// AllNeurons returns every object neuron in the store, in no particular
// order. Used by PredictionScore to walk a whole test set.
func (s *Store) AllNeurons() []*object.Neuron {
	out := make([]*object.Neuron, 0, len(s.neurons))
	for _, n := range s.neurons {
		out = append(out, n)
	}
	return out
}

// NeuronCount returns the number of object neurons registered in the
// store.
func (s *Store) NeuronCount() int {
	return len(s.neurons)
}

// Ingest builds one object neuron per row of table and one sensor per
// column, connecting each row to the sensor value of every non-null cell
// with a bilateral Defining edge. Grounded on spec.md §4.5.1 and
// original_source/src/simple/parser.rs's magds_from_df/
// connected_sensor_from_datavec: a column whose tag cannot be instantiated
// is skipped and logged rather than failing the whole ingest.
func (s *Store) Ingest(table *ingest.ColumnarTable) error {
	batchID := uuid.NewString()
	log.Printf("magds: ingest: batch %s: table %q, %d rows, %d columns", batchID, table.Name, table.Rows, len(table.Columns))

	rows := make([]*object.Neuron, table.Rows)
	for i := 0; i < table.Rows; i++ {
		id := core.NeuronID{LocalID: strconv.Itoa(i + 1), ParentID: table.Name}
		row := object.New(id)
		s.AddNeuron(row)
		rows[i] = row
	}

	for _, col := range table.Columns {
		if col.Tag == core.TagUnknown {
			log.Printf("magds: ingest: column %q has unknown type, skipping", col.Name)
			continue
		}

		c, ok := s.sensors[col.Name]
		if !ok {
			var err error
			c, err = s.CreateSensor(col.Name, col.Tag)
			if err != nil {
				log.Printf("magds: ingest: column %q: %v, skipping", col.Name, err)
				continue
			}
		}

		for i := 0; i < col.Values.Len() && i < len(rows); i++ {
			v, present := col.Values.At(i)
			if !present {
				continue
			}
			valueNeuron, err := c.Insert(v)
			if err != nil {
				log.Printf("magds: ingest: column %q row %d: %v, skipping cell", col.Name, i, err)
				continue
			}
			if err := core.ConnectBilateral(valueNeuron, &rows[i].BaseNeuron, core.Defining); err != nil {
				log.Printf("magds: ingest: column %q row %d: connecting defining edge: %v", col.Name, i, err)
			}
		}
	}

	log.Printf("magds: ingest: batch %s: complete, %d object neurons", batchID, len(rows))
	return nil
}
