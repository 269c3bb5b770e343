// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"

	"github.com/ModelDBRepository/42020/brunel"
)

type nodeKind int32

const (
	neuronNode nodeKind = iota
	poissonNode
	collectorNode
)

// nodeRef locates a node's storage: its kind and the index into the
// per-kind slice.
type nodeRef struct {
	kind nodeKind
	idx  int32
}

// Connection is one outgoing connection, stored on its source node.
// The delay is kept in whole steps.
type Connection struct {

	// target node: a neuron or a collector
	Target brunel.NodeID

	// synaptic weight -- the peak of the delivered alpha current
	Weight float32

	// transmission delay in steps of the resolution
	DelaySteps int32
}

// Kernel is the single-threaded reference implementation of the
// brunel.Kernel contract.  Nodes are identified by their creation
// order; connections are stored per source node; spike delivery goes
// through per-neuron ring buffers sized by the maximum delay.
type Kernel struct {

	// global clock: resolution, delay bounds, elapsed time
	Clock Clock

	// random stream for the Poisson background drive
	Rand *randx.SysRand

	// seeds as given to SetRandSeeds; the first seeds Rand, the rest
	// are kept for per-thread partitioning
	Seeds []int64

	// node id -> kind and per-kind index
	nodes []nodeRef

	// outgoing connections per node id
	cons [][]Connection

	neurons    []Neuron
	poissons   []PoissonSource
	collectors []Collector

	// ring buffer length: max delay steps + 1
	ringLen int

	limitsSet bool

	// one-shot guard for the reservation-exceeded warning
	capWarned bool
}

// New returns a kernel with an unseeded random stream; call SetLimits
// before creating any node.
func New() *Kernel {
	return &Kernel{Rand: randx.NewSysRand(1)}
}

// SetLimits implements brunel.Kernel.  It must precede any node
// creation; the clock is reset here, once per run.
func (k *Kernel) SetLimits(resolution, minDelay, maxDelay float32) error {
	if len(k.nodes) > 0 {
		return fmt.Errorf("%w: SetLimits after %d nodes were created", brunel.ErrOrdering, len(k.nodes))
	}
	if resolution <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %g", brunel.ErrConfig, resolution)
	}
	if minDelay < resolution || maxDelay < minDelay {
		return fmt.Errorf("%w: delay bounds [%g, %g] must satisfy resolution <= min <= max", brunel.ErrConfig, minDelay, maxDelay)
	}
	k.Clock.Dt = resolution
	k.Clock.MinDelay = minDelay
	k.Clock.MaxDelay = maxDelay
	k.Clock.Reset()
	k.ringLen = k.Clock.DelaySteps(maxDelay) + 1
	k.limitsSet = true
	return nil
}

func (k *Kernel) newNode(kind nodeKind, idx int32) brunel.NodeID {
	id := brunel.NodeID(len(k.nodes))
	k.nodes = append(k.nodes, nodeRef{kind: kind, idx: idx})
	k.cons = append(k.cons, nil)
	return id
}

// CreateNeurons implements brunel.Kernel.  nil cfg uses model defaults.
func (k *Kernel) CreateNeurons(cfg *brunel.NeuronConfig, n int) ([]brunel.NodeID, error) {
	if !k.limitsSet {
		return nil, fmt.Errorf("%w: CreateNeurons before SetLimits", brunel.ErrOrdering)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: neuron count must be positive, got %d", brunel.ErrConfig, n)
	}
	if cfg == nil {
		cfg = &brunel.NeuronConfig{}
		cfg.Defaults()
	}
	if err := k.checkNeuronConfig(cfg); err != nil {
		return nil, err
	}
	ids := make([]brunel.NodeID, n)
	for i := 0; i < n; i++ {
		ni := int32(len(k.neurons))
		k.neurons = append(k.neurons, Neuron{})
		k.neurons[ni].Init(cfg, k.Clock.Dt, k.ringLen)
		ids[i] = k.newNode(neuronNode, ni)
	}
	return ids, nil
}

func (k *Kernel) checkNeuronConfig(cfg *brunel.NeuronConfig) error {
	if cfg.TauMem <= 0 || cfg.TauSyn <= 0 || cfg.TauRef < 0 || cfg.C <= 0 {
		return fmt.Errorf("%w: neuron time constants and capacitance must be positive", brunel.ErrConfig)
	}
	if cfg.TauMem == cfg.TauSyn {
		// the two-exponential propagators degenerate when the time
		// constants coincide
		return fmt.Errorf("%w: TauMem and TauSyn must differ", brunel.ErrConfig)
	}
	return nil
}

// SetNeuronConfig implements brunel.Kernel, replacing one neuron's
// model parameters and recomputing its propagators.
func (k *Kernel) SetNeuronConfig(id brunel.NodeID, cfg *brunel.NeuronConfig) error {
	nr, err := k.neuron(id)
	if err != nil {
		return err
	}
	if err = k.checkNeuronConfig(cfg); err != nil {
		return err
	}
	nr.Cfg = *cfg
	nr.UpdateProps(k.Clock.Dt)
	return nil
}

func (k *Kernel) neuron(id brunel.NodeID) (*Neuron, error) {
	if int(id) >= len(k.nodes) || id < 0 || k.nodes[id].kind != neuronNode {
		return nil, fmt.Errorf("%w: node %d is not a neuron", brunel.ErrConfig, id)
	}
	return &k.neurons[k.nodes[id].idx], nil
}

// ReserveConnections implements brunel.Kernel: a pure capacity hint.
func (k *Kernel) ReserveConnections(id brunel.NodeID, n int) {
	if int(id) >= len(k.nodes) || id < 0 || n <= 0 {
		return
	}
	if cap(k.cons[id]) < n {
		cs := make([]Connection, len(k.cons[id]), n)
		copy(cs, k.cons[id])
		k.cons[id] = cs
	}
}

// Connect implements brunel.Kernel.  The source must be a neuron or
// Poisson source, the target a neuron or collector, and the delay must
// lie within the configured bounds.
func (k *Kernel) Connect(source, target brunel.NodeID, kind brunel.EventKind, weight, delay float32) error {
	if !k.limitsSet {
		return fmt.Errorf("%w: Connect before SetLimits", brunel.ErrOrdering)
	}
	if kind != brunel.Spike {
		return fmt.Errorf("%w: unsupported event kind %d", brunel.ErrConfig, kind)
	}
	if int(source) >= len(k.nodes) || source < 0 || int(target) >= len(k.nodes) || target < 0 {
		return fmt.Errorf("%w: Connect with unknown node: %d -> %d", brunel.ErrOrdering, source, target)
	}
	if k.nodes[source].kind == collectorNode {
		return fmt.Errorf("%w: a collector cannot be a source", brunel.ErrConfig)
	}
	if k.nodes[target].kind == poissonNode {
		return fmt.Errorf("%w: a poisson source cannot be a target", brunel.ErrConfig)
	}
	if !k.Clock.DelayInBounds(delay) {
		return fmt.Errorf("%w: delay %g outside bounds [%g, %g]", brunel.ErrConfig, delay, k.Clock.MinDelay, k.Clock.MaxDelay)
	}
	cs := k.cons[source]
	if len(cs) == cap(cs) && cap(cs) > 0 && !k.capWarned {
		// reservation undersized: storage grows, performance-only issue
		errors.Log(fmt.Errorf("%w: node %d grew past its reservation of %d", brunel.ErrCapacity, source, cap(cs)))
		k.capWarned = true
	}
	k.cons[source] = append(cs, Connection{
		Target:     target,
		Weight:     weight,
		DelaySteps: int32(k.Clock.DelaySteps(delay)),
	})
	return nil
}

// CreatePoissonSource implements brunel.Kernel.
func (k *Kernel) CreatePoissonSource(rate float32) (brunel.NodeID, error) {
	if !k.limitsSet {
		return -1, fmt.Errorf("%w: CreatePoissonSource before SetLimits", brunel.ErrOrdering)
	}
	if rate < 0 {
		return -1, fmt.Errorf("%w: poisson rate must be non-negative, got %g", brunel.ErrConfig, rate)
	}
	pi := int32(len(k.poissons))
	k.poissons = append(k.poissons, PoissonSource{Rate: rate})
	return k.newNode(poissonNode, pi), nil
}

// CreateSpikeCollector implements brunel.Kernel.
func (k *Kernel) CreateSpikeCollector(cfg *brunel.CollectorConfig) (brunel.NodeID, error) {
	if !k.limitsSet {
		return -1, fmt.Errorf("%w: CreateSpikeCollector before SetLimits", brunel.ErrOrdering)
	}
	ci := int32(len(k.collectors))
	co := Collector{}
	if cfg != nil {
		co.Label = cfg.Label
	}
	k.collectors = append(k.collectors, co)
	return k.newNode(collectorNode, ci), nil
}

// SetRandSeeds implements brunel.Kernel.  The kernel is single
// threaded: the first seed initializes the one random stream, and the
// full slice is retained so a threaded kernel can partition them.
func (k *Kernel) SetRandSeeds(seeds []int64) {
	k.Seeds = seeds
	if len(seeds) > 0 {
		k.Rand.Seed(seeds[0])
	}
}

// Advance implements brunel.Kernel: runs the network for duration ms in
// discrete steps of the resolution.  Stepping is synchronous; there is
// no cancellation mid-step.
func (k *Kernel) Advance(duration float32) error {
	if !k.limitsSet {
		return fmt.Errorf("%w: Advance before SetLimits", brunel.ErrOrdering)
	}
	if duration < 0 {
		return fmt.Errorf("%w: duration must be non-negative, got %g", brunel.ErrConfig, duration)
	}
	for pi := range k.poissons {
		ps := &k.poissons[pi]
		ps.Lambda = float64(ps.Rate) * float64(k.Clock.Dt) / 1000
	}
	steps := int(math32.Round(duration / k.Clock.Dt))
	for si := 0; si < steps; si++ {
		k.step()
	}
	return nil
}

// step advances the kernel by one resolution step: Poisson drive is
// drawn and scheduled, then every neuron integrates its arrived input
// and emitted spikes are delivered into the future ring buffer slots of
// their targets and recorded by wired collectors.
func (k *Kernel) step() {
	step := k.Clock.Step
	slot := step % k.ringLen

	for id, nd := range k.nodes {
		if nd.kind != poissonNode {
			continue
		}
		ps := &k.poissons[nd.idx]
		if ps.Lambda == 0 {
			continue
		}
		for _, cn := range k.cons[id] {
			nsp := randx.PoissonGen(ps.Lambda, k.Rand)
			if nsp <= 0 {
				continue
			}
			tg := &k.neurons[k.nodes[cn.Target].idx]
			tg.In[(step+int(cn.DelaySteps))%k.ringLen] += float32(nsp) * cn.Weight
		}
	}

	k.Clock.StepInc()
	spikeTime := k.Clock.Time

	for id, nd := range k.nodes {
		if nd.kind != neuronNode {
			continue
		}
		nr := &k.neurons[nd.idx]
		if !nr.Step(slot) {
			continue
		}
		for _, cn := range k.cons[id] {
			switch k.nodes[cn.Target].kind {
			case neuronNode:
				tg := &k.neurons[k.nodes[cn.Target].idx]
				tg.In[(step+int(cn.DelaySteps))%k.ringLen] += cn.Weight
			case collectorNode:
				k.collectors[k.nodes[cn.Target].idx].Record(brunel.NodeID(id), spikeTime)
			}
		}
	}
}

// CollectedEventCount implements brunel.Kernel.
func (k *Kernel) CollectedEventCount(collector brunel.NodeID) (int, error) {
	co, err := k.collector(collector)
	if err != nil {
		return 0, err
	}
	return len(co.Events), nil
}

// CollectedEvents implements brunel.Kernel.
func (k *Kernel) CollectedEvents(collector brunel.NodeID) ([]brunel.SpikeEvent, error) {
	co, err := k.collector(collector)
	if err != nil {
		return nil, err
	}
	return co.Events, nil
}

func (k *Kernel) collector(id brunel.NodeID) (*Collector, error) {
	if int(id) >= len(k.nodes) || id < 0 || k.nodes[id].kind != collectorNode {
		return nil, fmt.Errorf("%w: node %d is not a collector", brunel.ErrConfig, id)
	}
	return &k.collectors[k.nodes[id].idx], nil
}
