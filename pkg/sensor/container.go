// Package sensor implements the sensor container: a tagged union over one
// sensorgraph.Graph[T] instantiation per ScalarTag, dispatching every
// operation to the concrete graph that matches the container's tag. It is
// the Go rendering of original_source/src/dynamic/sensor.rs's
// SensorConatiner enum, which spec.md §9 Open Question 3 names as the most
// elaborate (and therefore authoritative) sensor-container draft.
package sensor

import (
	"fmt"
	"math"
	"math/big"

	"github.com/asagraphs/magds/pkg/core"
	"github.com/asagraphs/magds/pkg/sensorgraph"
)

// Container wraps exactly one of the 17 concrete Graph[T] instantiations,
// selected by Tag. Every exported method dispatches with its own switch
// over the tag, so callers never switch on the Go type themselves.
type Container struct {
	tag  core.ScalarTag
	name string

	boolGraph     *sensorgraph.Graph[bool]
	u8Graph       *sensorgraph.Graph[uint8]
	u16Graph      *sensorgraph.Graph[uint16]
	u32Graph      *sensorgraph.Graph[uint32]
	u64Graph      *sensorgraph.Graph[uint64]
	u128Graph     *sensorgraph.Graph[*big.Int]
	usizeGraph    *sensorgraph.Graph[uint64]
	i8Graph       *sensorgraph.Graph[int8]
	i16Graph      *sensorgraph.Graph[int16]
	i32Graph      *sensorgraph.Graph[int32]
	i64Graph      *sensorgraph.Graph[int64]
	i128Graph     *sensorgraph.Graph[*big.Int]
	isizeGraph    *sensorgraph.Graph[int64]
	f32Graph      *sensorgraph.Graph[float32]
	f64Graph      *sensorgraph.Graph[float64]
	internedGraph *sensorgraph.Graph[string]
	ownedGraph    *sensorgraph.Graph[string]
}

func bigLess(a, b *big.Int) bool { return a.Cmp(b) < 0 }
func bigEq(a, b *big.Int) bool   { return a.Cmp(b) == 0 }
func bigDist(a, b *big.Int) float64 {
	d := new(big.Int).Sub(a, b)
	d.Abs(d)
	f, _ := new(big.Float).SetInt(d).Float64()
	return f
}

func boolLess(a, b bool) bool { return !a && b }
func boolEq(a, b bool) bool   { return a == b }

func numLess[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64](a, b T) bool {
	return a < b
}
func numEq[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64](a, b T) bool {
	return a == b
}
func numDist[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64](a, b T) float64 {
	if a < b {
		return float64(b) - float64(a)
	}
	return float64(a) - float64(b)
}

func strLess(a, b string) bool { return a < b }
func strEq(a, b string) bool   { return a == b }

// New creates an empty Container of the given tag named id. Discrete and
// continuous tags get a distance function (enabling horizontal propagation
// and fuzzy search); the bool tag and the two string tags are categorical
// and get none, per
// spec.md §3/§4.3.3-4.
func New(id string, tag core.ScalarTag) (*Container, error) {
	c := &Container{tag: tag, name: id}
	switch tag {
	case core.TagBool:
		c.boolGraph = sensorgraph.New[bool](id, boolLess, boolEq, nil)
	case core.TagU8:
		c.u8Graph = sensorgraph.New[uint8](id, numLess[uint8], numEq[uint8], numDist[uint8])
	case core.TagU16:
		c.u16Graph = sensorgraph.New[uint16](id, numLess[uint16], numEq[uint16], numDist[uint16])
	case core.TagU32:
		c.u32Graph = sensorgraph.New[uint32](id, numLess[uint32], numEq[uint32], numDist[uint32])
	case core.TagU64:
		c.u64Graph = sensorgraph.New[uint64](id, numLess[uint64], numEq[uint64], numDist[uint64])
	case core.TagU128:
		c.u128Graph = sensorgraph.New[*big.Int](id, bigLess, bigEq, bigDist)
	case core.TagUSize:
		c.usizeGraph = sensorgraph.New[uint64](id, numLess[uint64], numEq[uint64], numDist[uint64])
	case core.TagI8:
		c.i8Graph = sensorgraph.New[int8](id, numLess[int8], numEq[int8], numDist[int8])
	case core.TagI16:
		c.i16Graph = sensorgraph.New[int16](id, numLess[int16], numEq[int16], numDist[int16])
	case core.TagI32:
		c.i32Graph = sensorgraph.New[int32](id, numLess[int32], numEq[int32], numDist[int32])
	case core.TagI64:
		c.i64Graph = sensorgraph.New[int64](id, numLess[int64], numEq[int64], numDist[int64])
	case core.TagI128:
		c.i128Graph = sensorgraph.New[*big.Int](id, bigLess, bigEq, bigDist)
	case core.TagISize:
		c.isizeGraph = sensorgraph.New[int64](id, numLess[int64], numEq[int64], numDist[int64])
	case core.TagF32:
		c.f32Graph = sensorgraph.New[float32](id, numLess[float32], numEq[float32], numDist[float32])
	case core.TagF64:
		c.f64Graph = sensorgraph.New[float64](id, numLess[float64], numEq[float64], numDist[float64])
	case core.TagInternedString:
		c.internedGraph = sensorgraph.New[string](id, strLess, strEq, nil)
	case core.TagOwnedString:
		c.ownedGraph = sensorgraph.New[string](id, strLess, strEq, nil)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidType, tag)
	}
	return c, nil
}

// ID returns the sensor's name.
func (c *Container) ID() string { return c.name }

// DataType returns the sensor's scalar tag.
func (c *Container) DataType() core.ScalarTag { return c.tag }

// DataCategory returns the data category of the sensor's scalar tag.
func (c *Container) DataCategory() core.DataCategory { return core.CategoryOf(c.tag) }

// Len returns the number of distinct keys currently indexed.
func (c *Container) Len() int {
	switch c.tag {
	case core.TagBool:
		return c.boolGraph.Len()
	case core.TagU8:
		return c.u8Graph.Len()
	case core.TagU16:
		return c.u16Graph.Len()
	case core.TagU32:
		return c.u32Graph.Len()
	case core.TagU64:
		return c.u64Graph.Len()
	case core.TagU128:
		return c.u128Graph.Len()
	case core.TagUSize:
		return c.usizeGraph.Len()
	case core.TagI8:
		return c.i8Graph.Len()
	case core.TagI16:
		return c.i16Graph.Len()
	case core.TagI32:
		return c.i32Graph.Len()
	case core.TagI64:
		return c.i64Graph.Len()
	case core.TagI128:
		return c.i128Graph.Len()
	case core.TagISize:
		return c.isizeGraph.Len()
	case core.TagF32:
		return c.f32Graph.Len()
	case core.TagF64:
		return c.f64Graph.Len()
	case core.TagInternedString:
		return c.internedGraph.Len()
	case core.TagOwnedString:
		return c.ownedGraph.Len()
	default:
		return 0
	}
}

// Insert inserts v, which must share the container's tag, creating or
// incrementing its neuron. Returns ErrTypeMismatch for the wrong tag and
// ErrInvalidKey for a NaN key in an f32/f64 sensor.
func (c *Container) Insert(v core.TaggedValue) (*core.BaseNeuron, error) {
	if v.Tag() != c.tag {
		return nil, fmt.Errorf("%w: sensor %s holds %s, got %s", core.ErrTypeMismatch, c.name, c.tag, v.Tag())
	}
	if c.tag == core.TagF32 || c.tag == core.TagF64 {
		if f, _ := v.AsFloat64(); math.IsNaN(f) {
			return nil, fmt.Errorf("%w: sensor %s cannot index NaN", core.ErrInvalidKey, c.name)
		}
	}
	switch c.tag {
	case core.TagBool:
		x, _ := v.AsBool()
		return &c.boolGraph.Insert(x).Neuron, nil
	case core.TagU8:
		x, _ := v.AsU8()
		return &c.u8Graph.Insert(x).Neuron, nil
	case core.TagU16:
		x, _ := v.AsU16()
		return &c.u16Graph.Insert(x).Neuron, nil
	case core.TagU32:
		x, _ := v.AsU32()
		return &c.u32Graph.Insert(x).Neuron, nil
	case core.TagU64:
		x, _ := v.AsU64()
		return &c.u64Graph.Insert(x).Neuron, nil
	case core.TagU128:
		x, _ := v.AsU128()
		return &c.u128Graph.Insert(x).Neuron, nil
	case core.TagUSize:
		x, _ := v.AsUSize()
		return &c.usizeGraph.Insert(x).Neuron, nil
	case core.TagI8:
		x, _ := v.AsI8()
		return &c.i8Graph.Insert(x).Neuron, nil
	case core.TagI16:
		x, _ := v.AsI16()
		return &c.i16Graph.Insert(x).Neuron, nil
	case core.TagI32:
		x, _ := v.AsI32()
		return &c.i32Graph.Insert(x).Neuron, nil
	case core.TagI64:
		x, _ := v.AsI64()
		return &c.i64Graph.Insert(x).Neuron, nil
	case core.TagI128:
		x, _ := v.AsI128()
		return &c.i128Graph.Insert(x).Neuron, nil
	case core.TagISize:
		x, _ := v.AsISize()
		return &c.isizeGraph.Insert(x).Neuron, nil
	case core.TagF32:
		x, _ := v.AsF32()
		return &c.f32Graph.Insert(x).Neuron, nil
	case core.TagF64:
		x, _ := v.AsF64()
		return &c.f64Graph.Insert(x).Neuron, nil
	case core.TagInternedString:
		x, _ := v.AsInternedString()
		return &c.internedGraph.Insert(x).Neuron, nil
	case core.TagOwnedString:
		x, _ := v.AsOwnedString()
		return &c.ownedGraph.Insert(x).Neuron, nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidType, c.tag)
	}
}

// Search looks up v's key. It returns ok=false both when v has the wrong
// tag and when the key was never inserted — original_source's search
// returns None on type mismatch rather than an error.
func (c *Container) Search(v core.TaggedValue) (*core.BaseNeuron, bool) {
	if v.Tag() != c.tag {
		return nil, false
	}
	switch c.tag {
	case core.TagBool:
		x, _ := v.AsBool()
		n, ok := c.boolGraph.Search(x)
		return baseOrNil(n, ok)
	case core.TagU8:
		x, _ := v.AsU8()
		n, ok := c.u8Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagU16:
		x, _ := v.AsU16()
		n, ok := c.u16Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagU32:
		x, _ := v.AsU32()
		n, ok := c.u32Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagU64:
		x, _ := v.AsU64()
		n, ok := c.u64Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagU128:
		x, _ := v.AsU128()
		n, ok := c.u128Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagUSize:
		x, _ := v.AsUSize()
		n, ok := c.usizeGraph.Search(x)
		return baseOrNil(n, ok)
	case core.TagI8:
		x, _ := v.AsI8()
		n, ok := c.i8Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagI16:
		x, _ := v.AsI16()
		n, ok := c.i16Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagI32:
		x, _ := v.AsI32()
		n, ok := c.i32Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagI64:
		x, _ := v.AsI64()
		n, ok := c.i64Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagI128:
		x, _ := v.AsI128()
		n, ok := c.i128Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagISize:
		x, _ := v.AsISize()
		n, ok := c.isizeGraph.Search(x)
		return baseOrNil(n, ok)
	case core.TagF32:
		x, _ := v.AsF32()
		n, ok := c.f32Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagF64:
		x, _ := v.AsF64()
		n, ok := c.f64Graph.Search(x)
		return baseOrNil(n, ok)
	case core.TagInternedString:
		x, _ := v.AsInternedString()
		n, ok := c.internedGraph.Search(x)
		return baseOrNil(n, ok)
	case core.TagOwnedString:
		x, _ := v.AsOwnedString()
		n, ok := c.ownedGraph.Search(x)
		return baseOrNil(n, ok)
	default:
		return nil, false
	}
}

// SearchFuzzy behaves like Search but, for continuous/discrete sensors,
// falls back to the nearest key when the exact one is absent (spec.md
// §4.3.4). Categorical sensors never fuzzy-match.
func (c *Container) SearchFuzzy(v core.TaggedValue) (*core.BaseNeuron, bool) {
	if v.Tag() != c.tag {
		return nil, false
	}
	switch c.tag {
	case core.TagBool:
		x, _ := v.AsBool()
		n, ok := c.boolGraph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagU8:
		x, _ := v.AsU8()
		n, ok := c.u8Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagU16:
		x, _ := v.AsU16()
		n, ok := c.u16Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagU32:
		x, _ := v.AsU32()
		n, ok := c.u32Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagU64:
		x, _ := v.AsU64()
		n, ok := c.u64Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagU128:
		x, _ := v.AsU128()
		n, ok := c.u128Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagUSize:
		x, _ := v.AsUSize()
		n, ok := c.usizeGraph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagI8:
		x, _ := v.AsI8()
		n, ok := c.i8Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagI16:
		x, _ := v.AsI16()
		n, ok := c.i16Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagI32:
		x, _ := v.AsI32()
		n, ok := c.i32Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagI64:
		x, _ := v.AsI64()
		n, ok := c.i64Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagI128:
		x, _ := v.AsI128()
		n, ok := c.i128Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagISize:
		x, _ := v.AsISize()
		n, ok := c.isizeGraph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagF32:
		x, _ := v.AsF32()
		n, ok := c.f32Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagF64:
		x, _ := v.AsF64()
		n, ok := c.f64Graph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagInternedString:
		x, _ := v.AsInternedString()
		n, ok := c.internedGraph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	case core.TagOwnedString:
		x, _ := v.AsOwnedString()
		n, ok := c.ownedGraph.SearchFuzzy(x)
		return baseOrNil(n, ok)
	default:
		return nil, false
	}
}

// Activate matches v (exact or fuzzy) and spreads signal per spec.md §4.6.
// It returns ErrTypeMismatch for the wrong tag; ok=false means no match.
func (c *Container) Activate(
	v core.TaggedValue,
	fuzzy bool,
	signal float64,
	propagateHorizontal bool,
	horizontalEpsilon float64,
	propagateVertical bool,
	visited core.VisitSet,
	onVertical sensorgraph.VerticalFunc,
) (map[core.NeuronID]float64, bool, error) {
	if v.Tag() != c.tag {
		return nil, false, fmt.Errorf("%w: sensor %s holds %s, got %s", core.ErrTypeMismatch, c.name, c.tag, v.Tag())
	}
	switch c.tag {
	case core.TagBool:
		x, _ := v.AsBool()
		return c.boolGraph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagU8:
		x, _ := v.AsU8()
		return c.u8Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagU16:
		x, _ := v.AsU16()
		return c.u16Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagU32:
		x, _ := v.AsU32()
		return c.u32Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagU64:
		x, _ := v.AsU64()
		return c.u64Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagU128:
		x, _ := v.AsU128()
		return c.u128Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagUSize:
		x, _ := v.AsUSize()
		return c.usizeGraph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagI8:
		x, _ := v.AsI8()
		return c.i8Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagI16:
		x, _ := v.AsI16()
		return c.i16Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagI32:
		x, _ := v.AsI32()
		return c.i32Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagI64:
		x, _ := v.AsI64()
		return c.i64Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagI128:
		x, _ := v.AsI128()
		return c.i128Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagISize:
		x, _ := v.AsISize()
		return c.isizeGraph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagF32:
		x, _ := v.AsF32()
		return c.f32Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagF64:
		x, _ := v.AsF64()
		return c.f64Graph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagInternedString:
		x, _ := v.AsInternedString()
		return c.internedGraph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	case core.TagOwnedString:
		x, _ := v.AsOwnedString()
		return c.ownedGraph.Activate(x, fuzzy, signal, propagateHorizontal, horizontalEpsilon, propagateVertical, visited, onVertical)
	default:
		return nil, false, fmt.Errorf("%w: %s", core.ErrInvalidType, c.tag)
	}
}

// Deactivate zeroes v's node and, when requested, everything horizontally
// and vertically reachable from it.
func (c *Container) Deactivate(
	v core.TaggedValue,
	propagateHorizontal bool,
	propagateVertical bool,
	visited core.VisitSet,
	onVertical func(core.NeuronID) error,
) (bool, error) {
	if v.Tag() != c.tag {
		return false, fmt.Errorf("%w: sensor %s holds %s, got %s", core.ErrTypeMismatch, c.name, c.tag, v.Tag())
	}
	switch c.tag {
	case core.TagBool:
		x, _ := v.AsBool()
		return c.boolGraph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagU8:
		x, _ := v.AsU8()
		return c.u8Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagU16:
		x, _ := v.AsU16()
		return c.u16Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagU32:
		x, _ := v.AsU32()
		return c.u32Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagU64:
		x, _ := v.AsU64()
		return c.u64Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagU128:
		x, _ := v.AsU128()
		return c.u128Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagUSize:
		x, _ := v.AsUSize()
		return c.usizeGraph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagI8:
		x, _ := v.AsI8()
		return c.i8Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagI16:
		x, _ := v.AsI16()
		return c.i16Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagI32:
		x, _ := v.AsI32()
		return c.i32Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagI64:
		x, _ := v.AsI64()
		return c.i64Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagI128:
		x, _ := v.AsI128()
		return c.i128Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagISize:
		x, _ := v.AsISize()
		return c.isizeGraph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagF32:
		x, _ := v.AsF32()
		return c.f32Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagF64:
		x, _ := v.AsF64()
		return c.f64Graph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagInternedString:
		x, _ := v.AsInternedString()
		return c.internedGraph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	case core.TagOwnedString:
		x, _ := v.AsOwnedString()
		return c.ownedGraph.Deactivate(x, propagateHorizontal, propagateVertical, visited, onVertical)
	default:
		return false, fmt.Errorf("%w: %s", core.ErrInvalidType, c.tag)
	}
}

// DeactivateAll zeroes every neuron in the sensor, matching spec.md §4.4's
// deactivate_whole_sensor.
func (c *Container) DeactivateAll() {
	switch c.tag {
	case core.TagBool:
		c.boolGraph.DeactivateAll()
	case core.TagU8:
		c.u8Graph.DeactivateAll()
	case core.TagU16:
		c.u16Graph.DeactivateAll()
	case core.TagU32:
		c.u32Graph.DeactivateAll()
	case core.TagU64:
		c.u64Graph.DeactivateAll()
	case core.TagU128:
		c.u128Graph.DeactivateAll()
	case core.TagUSize:
		c.usizeGraph.DeactivateAll()
	case core.TagI8:
		c.i8Graph.DeactivateAll()
	case core.TagI16:
		c.i16Graph.DeactivateAll()
	case core.TagI32:
		c.i32Graph.DeactivateAll()
	case core.TagI64:
		c.i64Graph.DeactivateAll()
	case core.TagI128:
		c.i128Graph.DeactivateAll()
	case core.TagISize:
		c.isizeGraph.DeactivateAll()
	case core.TagF32:
		c.f32Graph.DeactivateAll()
	case core.TagF64:
		c.f64Graph.DeactivateAll()
	case core.TagInternedString:
		c.internedGraph.DeactivateAll()
	case core.TagOwnedString:
		c.ownedGraph.DeactivateAll()
	}
}

func baseOrNil[T any](n *sensorgraph.Node[T], ok bool) (*core.BaseNeuron, bool) {
	if !ok {
		return nil, false
	}
	return &n.Neuron, true
}
