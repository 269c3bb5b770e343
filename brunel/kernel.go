// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brunel

// NodeID is an opaque handle identifying one entity inside the
// simulation kernel: a neuron, a Poisson source, or a spike collector.
// IDs are unique and stable for the lifetime of a run.
type NodeID int32

// EventKind is the kind of event a connection carries.
type EventKind int32

const (
	// Spike connections deliver action potentials from source to target
	// with a weight and delay.
	Spike EventKind = iota
)

// NeuronConfig is the typed parameter set for the integrate-and-fire
// neuron model with alpha-function current synapses.  It enumerates
// exactly the fields the model recognizes.
type NeuronConfig struct {

	// membrane time constant (ms)
	TauMem float32 `default:"20"`

	// rise time of the alpha-function synaptic current (ms)
	TauSyn float32 `default:"0.5"`

	// absolute refractory period after a spike (ms)
	TauRef float32 `default:"2"`

	// resting and post-spike reset potential (mV)
	U0 float32 `default:"0"`

	// spike threshold (mV)
	Theta float32 `default:"20"`

	// membrane capacitance -- the model is calibrated for unit capacitance
	C float32 `default:"1"`
}

func (nc *NeuronConfig) Defaults() {
	nc.TauMem = 20
	nc.TauSyn = 0.5
	nc.TauRef = 2
	nc.U0 = 0
	nc.Theta = 20
	nc.C = 1
}

// CollectorConfig is the typed parameter set for a spike collector.
type CollectorConfig struct {

	// label used to identify the collector in reports and file names
	Label string
}

// SpikeEvent is one recorded firing event: which neuron fired, and when.
type SpikeEvent struct {

	// id of the neuron that fired
	Neuron NodeID

	// spike time in ms of simulated time
	Time float32
}

// Kernel is the contract with the neuronal simulation kernel.  The core
// in this package drives construction and stepping exclusively through
// this interface; numerical integration, event scheduling, and random
// number generation for the background drive live behind it.
//
// Ordering: SetLimits must be called before any node exists, and every
// Connect delay must lie within the limits it established.  Errors are
// classified with the sentinel errors in this package (errors.Is).
type Kernel interface {

	// SetLimits sets the integration resolution (dt) and the bounds that
	// must bracket every synaptic delay, all in ms.  It resets the kernel
	// clock.  Calling it while nodes exist is an ordering error.
	SetLimits(resolution, minDelay, maxDelay float32) error

	// CreateNeurons allocates n neurons with the given model parameters
	// (nil = model defaults) and returns their ids in creation order.
	CreateNeurons(cfg *NeuronConfig, n int) ([]NodeID, error)

	// SetNeuronConfig replaces the model parameters of one neuron.
	SetNeuronConfig(id NodeID, cfg *NeuronConfig) error

	// ReserveConnections pre-allocates storage on the given source node
	// for n outgoing connections.  Pure capacity hint: undersizing is a
	// performance regression, never an error.
	ReserveConnections(id NodeID, n int)

	// Connect creates one connection from source to target carrying the
	// given event kind, with weight and delay (ms).
	Connect(source, target NodeID, kind EventKind, weight, delay float32) error

	// CreatePoissonSource creates a source emitting independent Poisson
	// spike trains at the given rate (spikes/s) to each of its targets.
	CreatePoissonSource(rate float32) (NodeID, error)

	// CreateSpikeCollector creates a recording endpoint that accumulates
	// a timestamped event for every spike of every neuron wired to it.
	CreateSpikeCollector(cfg *CollectorConfig) (NodeID, error)

	// SetRandSeeds seeds the kernel-internal random streams (one per
	// kernel thread) used for the Poisson background drive.
	SetRandSeeds(seeds []int64)

	// Advance runs the kernel for the given duration of simulated ms,
	// in discrete steps of the configured resolution.
	Advance(duration float32) error

	// CollectedEventCount returns the number of events the given
	// collector has recorded so far.
	CollectedEventCount(collector NodeID) (int, error)

	// CollectedEvents returns the events the given collector recorded.
	// Only valid to read after the run has completed.
	CollectedEvents(collector NodeID) ([]SpikeEvent, error)
}
