package core

import "errors"

var (
	// ErrUnknownSensor is returned when a store operation names a sensor
	// that was never created.
	ErrUnknownSensor = errors.New("sensor not found")

	// ErrTypeMismatch is returned when a value's ScalarTag does not match
	// the tag a sensor, column, or distance comparison expects.
	ErrTypeMismatch = errors.New("scalar type mismatch")

	// ErrInvalidType is returned when a caller asks to create a sensor
	// with TagUnknown, or otherwise names a non-instantiable scalar type.
	ErrInvalidType = errors.New("invalid scalar type")

	// ErrInvalidKey is returned for keys that cannot be ordered, such as
	// NaN float keys inserted into a sensor graph.
	ErrInvalidKey = errors.New("invalid sensor key")

	// ErrUnsupportedConnectionKind is returned by Connect for any
	// ConnectionKind other than Defining.
	ErrUnsupportedConnectionKind = errors.New("unsupported connection kind")

	// ErrReentrantBorrow is returned when activation or deactivation would
	// re-enter a neuron or sensor graph node already on the current
	// propagation stack.
	ErrReentrantBorrow = errors.New("reentrant borrow during propagation")

	// ErrCorruptedTestSet is returned by PredictionScore when a test
	// object neuron has no defining sensor edges at all.
	ErrCorruptedTestSet = errors.New("corrupted test set: object neuron defines no sensors")

	// ErrSelfLink is returned when a neuron attempts to connect to itself.
	ErrSelfLink = errors.New("cannot connect a neuron to itself")

	// ErrNeuronNotFound is returned by store lookups addressing a neuron
	// id that was never added.
	ErrNeuronNotFound = errors.New("neuron not found")
)
